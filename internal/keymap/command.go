package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"folio/internal/palette"
)

// Command categories used in help listings.
const (
	CategoryNavigation = "Navigation"
	CategoryScroll     = "Scroll"
	CategoryPalette    = "Palette"
	CategoryGoto       = "Goto"
	CategoryLeader     = "Leader"
)

// Command binds a chord to an action. Commands are values: once handed to a
// Registry they are not modified.
type Command struct {
	Chord       Chord
	Description string
	Category    string
	// Modes lists the palette modes in which the command is eligible.
	Modes   []palette.Mode
	Execute func()
}

// ActiveIn reports whether the command is eligible in mode m.
func (c Command) ActiveIn(m palette.Mode) bool {
	for _, mode := range c.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// Binding exposes the command as a bubbles key binding for help rendering.
func (c Command) Binding() key.Binding {
	return key.NewBinding(
		key.WithKeys(c.Chord.TeaString()),
		key.WithHelp(c.Chord.String(), c.Description),
	)
}

// Set is an ordered group of commands.
type Set []Command

var browseModes = []palette.Mode{palette.Idle, palette.Help}

func modes(m ...palette.Mode) []palette.Mode { return m }
