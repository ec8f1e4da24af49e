package palette

import (
	"time"
)

// Scheduler delivers fire after the given delay. Implementations must call
// fire on the same logical thread that mutates the Store (the UI event loop).
type Scheduler interface {
	Schedule(after time.Duration, fire func())
}

// Timer describes the single live auto-revert timer.
type Timer struct {
	Mode       Mode
	Generation uint64
	After      time.Duration
}

// ChangeFunc is called after the mode changes.
type ChangeFunc func(from, to Mode)

type subscriber struct {
	id int
	fn ChangeFunc
}

// Store holds the current mode. Every transition bumps a generation counter;
// a scheduled timer only acts if the generation it was armed with is still
// current, so a superseded timer can never reset a newer mode.
//
// Store is not safe for concurrent use. It is owned by the UI loop.
type Store struct {
	mode      Mode
	gen       uint64
	timer     *Timer
	scheduler Scheduler

	subs   []subscriber
	nextID int
}

// NewStore creates an idle store. A nil scheduler disables auto-revert.
func NewStore(scheduler Scheduler) *Store {
	return &Store{
		mode:      Idle,
		scheduler: scheduler,
	}
}

// Mode returns the active mode.
func (s *Store) Mode() Mode { return s.mode }

// Generation returns the current transition generation.
func (s *Store) Generation() uint64 { return s.gen }

// Pending returns the live timer, if any.
func (s *Store) Pending() (Timer, bool) {
	if s.timer == nil {
		return Timer{}, false
	}
	return *s.timer, true
}

func (s *Store) IsIdle() bool   { return s.mode == Idle }
func (s *Store) IsLeader() bool { return s.mode == Leader }
func (s *Store) IsHelp() bool   { return s.mode == Help }
func (s *Store) IsSearch() bool { return s.mode == Search }
func (s *Store) IsGoto() bool   { return s.mode == Goto }

// EnterLeader switches to leader mode for LeaderTimeout.
func (s *Store) EnterLeader() { s.enter(Leader) }

// EnterHelp switches to help mode for HelpTimeout.
func (s *Store) EnterHelp() { s.enter(Help) }

// EnterSearch switches to search mode. Search has no timeout.
func (s *Store) EnterSearch() { s.enter(Search) }

// EnterGoto switches to goto mode for GotoTimeout.
func (s *Store) EnterGoto() { s.enter(Goto) }

// Enter switches to m. Entering Idle is the same as Reset.
func (s *Store) Enter(m Mode) {
	switch m {
	case Idle:
		s.Reset()
	case Leader, Help, Search, Goto:
		s.enter(m)
	}
}

// Reset cancels any pending timer and returns to idle. Resetting an idle
// store changes nothing.
func (s *Store) Reset() {
	if s.mode == Idle && s.timer == nil {
		return
	}
	s.enter(Idle)
}

// Expire is the timer callback: it resets the store only if gen is the
// generation of the live timer.
func (s *Store) Expire(gen uint64) bool {
	if s.timer == nil || s.timer.Generation != gen {
		return false
	}
	s.enter(Idle)
	return true
}

func (s *Store) enter(m Mode) {
	// Clear before set: the bump invalidates whatever timer was armed.
	s.gen++
	s.timer = nil

	from := s.mode
	s.mode = m

	if after := m.Timeout(); after > 0 {
		gen := s.gen
		s.timer = &Timer{Mode: m, Generation: gen, After: after}
		if s.scheduler != nil {
			s.scheduler.Schedule(after, func() { s.Expire(gen) })
		}
	}

	if from != m {
		s.notify(from, m)
	}
}

// Subscribe registers fn for mode changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn ChangeFunc) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(from, to Mode) {
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(from, to)
	}
}
