package keymap

import (
	"folio/internal/nav"
	"folio/internal/palette"
)

// Registry is an ordered, immutable command table. When several commands
// share a chord, the first registered one eligible in the current mode wins.
type Registry struct {
	commands []Command
}

// NewRegistry concatenates sets in order.
func NewRegistry(sets ...Set) *Registry {
	r := &Registry{}
	for _, set := range sets {
		r.commands = append(r.commands, set...)
	}
	return r
}

// Default builds the navigation and scroll tables.
func Default(n *nav.Navigator, store *palette.Store) *Registry {
	return NewRegistry(NavigationCommands(n, store), ScrollCommands(n, store))
}

// Lookup returns the first command matching chord that is eligible in mode.
func (r *Registry) Lookup(chord Chord, mode palette.Mode) (Command, bool) {
	for _, cmd := range r.commands {
		if cmd.Chord.Matches(chord) && cmd.ActiveIn(mode) {
			return cmd, true
		}
	}
	return Command{}, false
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.commands) }

// Commands returns a copy of the table in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// ActiveIn returns the commands eligible in mode, in registration order.
func (r *Registry) ActiveIn(mode palette.Mode) []Command {
	var out []Command
	for _, cmd := range r.commands {
		if cmd.ActiveIn(mode) {
			out = append(out, cmd)
		}
	}
	return out
}

// Group is one category of a help listing.
type Group struct {
	Category string
	Commands []Command
}

// ByCategory groups the table by category, keeping first-seen order for
// both categories and commands.
func (r *Registry) ByCategory() []Group {
	var groups []Group
	index := map[string]int{}
	for _, cmd := range r.commands {
		i, ok := index[cmd.Category]
		if !ok {
			i = len(groups)
			index[cmd.Category] = i
			groups = append(groups, Group{Category: cmd.Category})
		}
		groups[i].Commands = append(groups[i].Commands, cmd)
	}
	return groups
}
