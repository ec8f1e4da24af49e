package common

import (
	"folio/internal/keymap"
	"folio/internal/palette"
	"folio/internal/theme"
)

// Screen is the top-level page shown under the palette.
type Screen int

const (
	Portfolio Screen = iota
	BlogList
	BlogPost
)

func (s Screen) String() string {
	switch s {
	case BlogList:
		return "blog"
	case BlogPost:
		return "post"
	default:
		return "portfolio"
	}
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Screen() Screen
	Mode() palette.Mode
	Styles() theme.Styles
	Theme() theme.Theme
	Width() int
	CurrentSection() string
	// Body is the rendered page for the current screen.
	Body() string
	Registry() *keymap.Registry
	SearchView() string
	StatusView() string
}
