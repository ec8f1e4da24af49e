package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/keymap"
	"folio/internal/theme"
)

// RenderHelp lists every command grouped by category.
func RenderHelp(groups []keymap.Group, s theme.Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Keybindings"))
	sb.WriteString("\n")

	for gi, g := range groups {
		if gi > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Heading.Render(g.Category))
		sb.WriteString("\n")

		width := 0
		for _, c := range g.Commands {
			width = max(width, lipgloss.Width(c.Chord.String()))
		}
		for _, c := range g.Commands {
			k := c.Chord.String()
			sb.WriteString("  ")
			sb.WriteString(s.HelpKey.Render(k + strings.Repeat(" ", width-lipgloss.Width(k))))
			sb.WriteString("  ")
			sb.WriteString(s.Help.Render(c.Description))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(s.Subtle.Render("? or esc to close"))
	return s.Box.Render(sb.String())
}

// RenderHints is the one-line key reminder for the commands of a mode.
func RenderHints(cmds []keymap.Command, s theme.Styles, width int) string {
	bindings := make([]key.Binding, len(cmds))
	for i, c := range cmds {
		bindings[i] = c.Binding()
	}

	h := help.New()
	h.Width = width
	h.ShortSeparator = "  "
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.Help
	h.Styles.ShortSeparator = s.Subtle
	h.Styles.Ellipsis = s.Subtle
	return h.ShortHelpView(bindings)
}
