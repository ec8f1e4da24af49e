package views

import (
	"strings"

	"folio/internal/keymap"
	"folio/internal/palette"
	"folio/internal/tui/common"
)

// RenderMainView stacks the page (or the palette overlay covering it), the
// key hints for the current mode and the status bar.
func RenderMainView(m common.ModelReader) string {
	s := m.Styles()
	mode := m.Mode()

	var body string
	switch mode {
	case palette.Help:
		body = RenderHelp(m.Registry().ByCategory(), s)
	case palette.Search:
		body = m.SearchView()
	default:
		body = m.Body()
	}

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(RenderHints(hintCommands(m.Registry(), mode), s, m.Width()))
	sb.WriteString("\n")
	sb.WriteString(m.StatusView())
	return sb.String()
}

// hintCommands picks what the hint line shows: the palette entry points
// when idle, everything reachable otherwise.
func hintCommands(r *keymap.Registry, mode palette.Mode) []keymap.Command {
	active := r.ActiveIn(mode)
	if mode != palette.Idle {
		return active
	}
	var out []keymap.Command
	for _, c := range active {
		if c.Category == keymap.CategoryPalette {
			out = append(out, c)
		}
	}
	return out
}
