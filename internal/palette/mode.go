// Package palette holds the command palette's interaction mode and the
// auto-revert timers attached to the transient modes.
package palette

import "time"

// Mode is the palette's current interaction state. It gates which key
// chords are eligible.
type Mode int

const (
	// Idle is the initial mode; plain navigation keys are live.
	Idle Mode = iota
	// Leader waits for a follow-up key after the leader key.
	Leader
	// Help shows the keybinding overlay.
	Help
	// Search captures text input and never times out.
	Search
	// Goto waits for a section target.
	Goto
)

// Auto-revert delays for the transient modes.
const (
	LeaderTimeout = 3000 * time.Millisecond
	HelpTimeout   = 5000 * time.Millisecond
	GotoTimeout   = 2000 * time.Millisecond
)

var modeNames = [...]string{
	Idle:   "idle",
	Leader: "leader",
	Help:   "help",
	Search: "search",
	Goto:   "goto",
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{Idle, Leader, Help, Search, Goto}
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m < Idle || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode is the inverse of String.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return Idle, false
}

// Timeout is how long the mode stays active without input. Zero means the
// mode never reverts on its own.
func (m Mode) Timeout() time.Duration {
	switch m {
	case Leader:
		return LeaderTimeout
	case Help:
		return HelpTimeout
	case Goto:
		return GotoTimeout
	default:
		return 0
	}
}
