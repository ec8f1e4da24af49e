package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"folio/internal/theme"
)

// RenderMarkdown styles a markdown body line by line for the terminal:
// headings, list bullets, quotes and fenced code. Prose is wrapped at width.
func RenderMarkdown(src string, s theme.Styles, width int) string {
	var (
		out    []string
		inCode bool
	)
	for _, line := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, s.Subtle.Render("  "+line))
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			out = append(out, s.Heading.Render(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))))
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			out = append(out, wrap("• "+trimmed[2:], s, width))
		case strings.HasPrefix(trimmed, ">"):
			out = append(out, s.Subtle.Render("│ "+strings.TrimSpace(trimmed[1:])))
		case trimmed == "":
			out = append(out, "")
		default:
			out = append(out, wrap(trimmed, s, width))
		}
	}
	return strings.Join(out, "\n")
}

func wrap(text string, s theme.Styles, width int) string {
	if width > 0 {
		text = ansi.Wordwrap(text, width, "")
	}
	return s.Text.Render(text)
}
