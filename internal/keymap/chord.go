// Package keymap maps key chords to commands, gated by the palette mode.
package keymap

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Named keys. Printable characters use the character itself.
const (
	ArrowDown = "ArrowDown"
	ArrowUp   = "ArrowUp"
	Tab       = "Tab"
	Escape    = "Escape"
	Enter     = "Enter"
	Backspace = "Backspace"
	Space     = " "
)

// terminal key names as bubbletea reports them, mapped to chord keys.
var namedKeys = map[string]string{
	"down":      ArrowDown,
	"up":        ArrowUp,
	"tab":       Tab,
	"esc":       Escape,
	"escape":    Escape,
	"enter":     Enter,
	"backspace": Backspace,
	"space":     Space,
	" ":         Space,
}

var teaNames = map[string]string{
	ArrowDown: "down",
	ArrowUp:   "up",
	Tab:       "tab",
	Escape:    "esc",
	Enter:     "enter",
	Backspace: "backspace",
	Space:     " ",
}

// Chord is a key plus modifier flags. Two chords match only when the key and
// every modifier flag are equal.
//
// For printable characters the shift state is already part of the character
// ("G", "$"), so Shift is only set for named keys such as shift+Tab.
type Chord struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Key returns a chord without modifiers.
func Key(k string) Chord { return Chord{Key: k} }

// Ctrl returns a ctrl-modified chord.
func Ctrl(k string) Chord { return Chord{Key: k, Ctrl: true} }

// Shift returns a shift-modified chord.
func Shift(k string) Chord { return Chord{Key: k, Shift: true} }

// Matches reports whether c and other are the same chord.
func (c Chord) Matches(other Chord) bool { return c == other }

// String renders the chord for display, e.g. "ctrl+d" or "shift+Tab".
func (c Chord) String() string {
	var b strings.Builder
	for _, m := range c.modifiers() {
		b.WriteString(m)
		b.WriteByte('+')
	}
	if c.Key == Space {
		b.WriteString("space")
	} else {
		b.WriteString(c.Key)
	}
	return b.String()
}

// TeaString renders the chord the way bubbletea names key presses, for use
// with bubbles/key bindings.
func (c Chord) TeaString() string {
	name := c.Key
	if t, ok := teaNames[c.Key]; ok {
		name = t
	}
	var b strings.Builder
	for _, m := range c.modifiers() {
		b.WriteString(m)
		b.WriteByte('+')
	}
	b.WriteString(name)
	return b.String()
}

func (c Chord) modifiers() []string {
	var mods []string
	if c.Ctrl {
		mods = append(mods, "ctrl")
	}
	if c.Alt {
		mods = append(mods, "alt")
	}
	if c.Meta {
		mods = append(mods, "meta")
	}
	if c.Shift {
		mods = append(mods, "shift")
	}
	return mods
}

// ParseChord parses "j", "ctrl+b", "shift+tab", "down" or "space".
func ParseChord(s string) (Chord, error) {
	if s == "" {
		return Chord{}, fmt.Errorf("empty chord")
	}

	var c Chord
	rest := s
	for {
		prefix, tail, ok := strings.Cut(rest, "+")
		// A trailing "+" is the plus key itself.
		if !ok || tail == "" {
			break
		}
		switch strings.ToLower(prefix) {
		case "ctrl":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		case "meta", "cmd", "super":
			c.Meta = true
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", prefix, s)
		}
		rest = tail
	}

	c.Key = rest
	if named, ok := namedKeys[strings.ToLower(rest)]; ok {
		c.Key = named
	}
	return c, nil
}

// MustParseChord is ParseChord for static tables; it panics on error.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ChordFromKey converts a bubbletea key event to a chord.
func ChordFromKey(msg tea.KeyMsg) Chord {
	if msg.Type == tea.KeySpace {
		return Chord{Key: Space, Alt: msg.Alt}
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return Chord{Key: string(msg.Runes), Alt: msg.Alt}
	}
	c, err := ParseChord(msg.String())
	if err != nil {
		return Chord{Key: msg.String()}
	}
	return c
}
