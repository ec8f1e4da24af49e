// Package theme defines folio's colour themes (the four Catppuccin flavours),
// the lipgloss styles derived from them and the persisted theme selection.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme names.
const (
	Latte     = "latte"
	Frappe    = "frappe"
	Macchiato = "macchiato"
	Mocha     = "mocha"

	Default = Frappe
)

// Palette is the subset of a flavour's colours the UI uses.
type Palette struct {
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color
	Subtext lipgloss.Color
	Text    lipgloss.Color
	Accent  lipgloss.Color
	Blue    lipgloss.Color
	Green   lipgloss.Color
	Yellow  lipgloss.Color
	Peach   lipgloss.Color
	Red     lipgloss.Color
}

// Theme is a named palette.
type Theme struct {
	Name    string
	Label   string
	Icon    string
	Dark    bool
	Palette Palette
}

var themes = []Theme{
	{
		Name: Latte, Label: "Latte", Icon: "☀️",
		Palette: Palette{
			Base: "#eff1f5", Surface: "#ccd0da", Overlay: "#9ca0b0", Subtext: "#6c6f85", Text: "#4c4f69",
			Accent: "#8839ef", Blue: "#1e66f5", Green: "#40a02b", Yellow: "#df8e1d", Peach: "#fe640b", Red: "#d20f39",
		},
	},
	{
		Name: Frappe, Label: "Frappé", Icon: "🌤️", Dark: true,
		Palette: Palette{
			Base: "#303446", Surface: "#414559", Overlay: "#737994", Subtext: "#a5adce", Text: "#c6d0f5",
			Accent: "#ca9ee6", Blue: "#8caaee", Green: "#a6d189", Yellow: "#e5c890", Peach: "#ef9f76", Red: "#e78284",
		},
	},
	{
		Name: Macchiato, Label: "Macchiato", Icon: "🌙", Dark: true,
		Palette: Palette{
			Base: "#24273a", Surface: "#363a4f", Overlay: "#6e738d", Subtext: "#a5adcb", Text: "#cad3f5",
			Accent: "#c6a0f6", Blue: "#8aadf4", Green: "#a6da95", Yellow: "#eed49f", Peach: "#f5a97f", Red: "#ed8796",
		},
	},
	{
		Name: Mocha, Label: "Mocha", Icon: "🌑", Dark: true,
		Palette: Palette{
			Base: "#1e1e2e", Surface: "#313244", Overlay: "#6c7086", Subtext: "#a6adc8", Text: "#cdd6f4",
			Accent: "#cba6f7", Blue: "#89b4fa", Green: "#a6e3a1", Yellow: "#f9e2af", Peach: "#fab387", Red: "#f38ba8",
		},
	},
}

// All returns the themes in cycling order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Names returns the theme names in cycling order.
func Names() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// Lookup finds a theme by name.
func Lookup(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Next returns the theme after name, wrapping around. Unknown names start
// from the first theme.
func Next(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func mustLookup(name string) Theme {
	t, ok := Lookup(name)
	if !ok {
		panic("theme: unknown theme " + name)
	}
	return t
}
