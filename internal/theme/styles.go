package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio/internal/palette"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Subtle   lipgloss.Style
	Accent   lipgloss.Style
	Link     lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Tag      lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	Error    lipgloss.Style

	palette Palette
}

// NewStyles derives the UI styles from t's palette.
func NewStyles(t Theme) Styles {
	p := t.Palette
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginBottom(1),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Blue),
		Text: lipgloss.NewStyle().
			Foreground(p.Text),
		Subtle: lipgloss.NewStyle().
			Foreground(p.Subtext),
		Accent: lipgloss.NewStyle().
			Foreground(p.Accent),
		Link: lipgloss.NewStyle().
			Foreground(p.Blue).
			Underline(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Overlay).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(p.Green).
			Bold(true),
		Tag: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Peach).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface),
		Help: lipgloss.NewStyle().
			Foreground(p.Subtext),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(p.Red),
		palette: p,
	}
}

// ModeBadge renders the palette mode as a coloured badge.
func (s Styles) ModeBadge(m palette.Mode) string {
	bg := s.palette.Overlay
	switch m {
	case palette.Leader:
		bg = s.palette.Accent
	case palette.Help:
		bg = s.palette.Blue
	case palette.Search:
		bg = s.palette.Yellow
	case palette.Goto:
		bg = s.palette.Green
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.palette.Base).
		Background(bg).
		Padding(0, 1).
		Render(strings.ToUpper(m.String()))
}

// TechBadge renders a technology label with its brand colour.
func (s Styles) TechBadge(name string) string {
	color := lipgloss.Color(s.palette.Accent)
	if c, ok := techColors[name]; ok {
		color = lipgloss.Color(c)
	}
	icon := lipgloss.NewStyle().Bold(true).Foreground(color).Render(TechIcon(name))
	return icon + " " + s.Text.Render(name)
}
