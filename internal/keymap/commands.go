package keymap

import (
	"strconv"

	"folio/internal/nav"
	"folio/internal/palette"
)

// resetThen returns an action that drops the palette back to idle before
// running fn.
func resetThen(store *palette.Store, fn func()) func() {
	return func() {
		store.Reset()
		fn()
	}
}

// NavigationCommands is the section navigation table.
func NavigationCommands(n *nav.Navigator, store *palette.Store) Set {
	cmd := func(k, desc string, fn func()) Command {
		return Command{
			Chord:       Key(k),
			Description: desc,
			Category:    CategoryNavigation,
			Modes:       browseModes,
			Execute:     resetThen(store, fn),
		}
	}
	return Set{
		cmd("j", "Next page", n.Next),
		cmd("k", "Previous page", n.Prev),
		cmd("w", "Next page (alternative)", n.Next),
		cmd("b", "Previous page (alternative)", n.Prev),
		cmd("G", "Go to bottom", n.Bottom),
		cmd("0", "Go to first section", n.Top),
		cmd("^", "Go to first section", n.Top),
		cmd("$", "Go to last section", n.Bottom),
		cmd(ArrowDown, "Next page", n.Next),
		cmd(ArrowUp, "Previous page", n.Prev),
	}
}

// ScrollCommands is the relative scrolling table.
func ScrollCommands(n *nav.Navigator, store *palette.Store) Set {
	cmd := func(c Chord, desc string, fn func()) Command {
		return Command{
			Chord:       c,
			Description: desc,
			Category:    CategoryScroll,
			Modes:       browseModes,
			Execute:     resetThen(store, fn),
		}
	}
	return Set{
		cmd(Ctrl("d"), "Half page down", n.HalfDown),
		cmd(Ctrl("u"), "Half page up", n.HalfUp),
		cmd(Ctrl("f"), "Full page down", n.FullDown),
		cmd(Ctrl("b"), "Full page up", n.FullUp),
		cmd(Key(Tab), "Next section", n.Next),
		cmd(Shift(Tab), "Previous section", n.Prev),
	}
}

// PaletteHooks are the application actions reachable from leader mode. Nil
// hooks leave their command out of the table.
type PaletteHooks struct {
	CycleTheme func()
	OpenBlog   func()
	Quit       func()
}

// PaletteCommands is the mode switching table: it opens the palette modes
// from idle, resolves goto targets and runs leader actions.
func PaletteCommands(n *nav.Navigator, store *palette.Store, hooks PaletteHooks) Set {
	set := Set{
		{Chord: Key(Space), Description: "Leader", Category: CategoryPalette,
			Modes: modes(palette.Idle), Execute: store.EnterLeader},
		{Chord: Key("?"), Description: "Show keybindings", Category: CategoryPalette,
			Modes: modes(palette.Idle, palette.Leader), Execute: store.EnterHelp},
		{Chord: Key("?"), Description: "Hide keybindings", Category: CategoryPalette,
			Modes: modes(palette.Help), Execute: store.Reset},
		{Chord: Key("/"), Description: "Search posts", Category: CategoryPalette,
			Modes: modes(palette.Idle, palette.Leader), Execute: store.EnterSearch},
		{Chord: Key("g"), Description: "Go to...", Category: CategoryPalette,
			Modes: modes(palette.Idle), Execute: store.EnterGoto},
		{Chord: Key(Escape), Description: "Close palette", Category: CategoryPalette,
			Modes: modes(palette.Leader, palette.Help, palette.Search, palette.Goto), Execute: store.Reset},

		{Chord: Key("g"), Description: "Go to top", Category: CategoryGoto,
			Modes: modes(palette.Goto), Execute: resetThen(store, n.Top)},
		{Chord: Key("G"), Description: "Go to bottom", Category: CategoryGoto,
			Modes: modes(palette.Goto), Execute: resetThen(store, n.Bottom)},
	}

	pages := n.Pages()
	for i := 0; i < pages.Len() && i < 9; i++ {
		target := i
		set = append(set, Command{
			Chord:       Key(strconv.Itoa(i + 1)),
			Description: "Go to " + pages[i],
			Category:    CategoryGoto,
			Modes:       modes(palette.Goto),
			Execute:     resetThen(store, func() { n.GoTo(target) }),
		})
	}

	leader := func(k, desc string, fn func()) {
		if fn == nil {
			return
		}
		set = append(set, Command{
			Chord:       Key(k),
			Description: desc,
			Category:    CategoryLeader,
			Modes:       modes(palette.Leader),
			Execute:     resetThen(store, fn),
		})
	}
	leader("t", "Cycle theme", hooks.CycleTheme)
	leader("b", "Open blog", hooks.OpenBlog)
	leader("q", "Quit", hooks.Quit)

	return set
}
