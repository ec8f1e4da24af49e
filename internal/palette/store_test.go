package palette

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *ManualScheduler) {
	sched := NewManualScheduler()
	return NewStore(sched), sched
}

func TestModeNames(t *testing.T) {
	for _, m := range Modes() {
		parsed, ok := ParseMode(m.String())
		require.True(t, ok, m.String())
		assert.Equal(t, m, parsed)
	}
	_, ok := ParseMode("visual")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestModeTimeouts(t *testing.T) {
	assert.Equal(t, 3000*time.Millisecond, Leader.Timeout())
	assert.Equal(t, 5000*time.Millisecond, Help.Timeout())
	assert.Equal(t, 2000*time.Millisecond, Goto.Timeout())
	assert.Zero(t, Search.Timeout())
	assert.Zero(t, Idle.Timeout())
}

func TestStoreStartsIdle(t *testing.T) {
	s, _ := newTestStore()
	assert.Equal(t, Idle, s.Mode())
	assert.True(t, s.IsIdle())
	_, ok := s.Pending()
	assert.False(t, ok)
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name    string
		enter   func(*Store)
		want    Mode
		timeout time.Duration
	}{
		{"leader", (*Store).EnterLeader, Leader, LeaderTimeout},
		{"help", (*Store).EnterHelp, Help, HelpTimeout},
		{"goto", (*Store).EnterGoto, Goto, GotoTimeout},
		{"search", (*Store).EnterSearch, Search, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore()
			tt.enter(s)
			assert.Equal(t, tt.want, s.Mode())

			timer, ok := s.Pending()
			if tt.timeout == 0 {
				assert.False(t, ok, "search arms no timer")
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, timer.Mode)
			assert.Equal(t, tt.timeout, timer.After)
			assert.Equal(t, s.Generation(), timer.Generation)
		})
	}
}

func TestLeaderRevertsAfterTimeout(t *testing.T) {
	s, sched := newTestStore()
	s.EnterLeader()

	sched.Advance(2999 * time.Millisecond)
	assert.Equal(t, Leader, s.Mode())

	sched.Advance(time.Millisecond)
	assert.Equal(t, Idle, s.Mode())
	_, ok := s.Pending()
	assert.False(t, ok)
}

func TestLeaderThenHelpOnlyHelpTimerLive(t *testing.T) {
	s, sched := newTestStore()
	var changes [][2]Mode
	s.Subscribe(func(from, to Mode) { changes = append(changes, [2]Mode{from, to}) })

	s.EnterLeader()
	s.EnterHelp()

	timer, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, Help, timer.Mode)
	assert.Equal(t, HelpTimeout, timer.After)

	// The leader deadline passes without effect.
	sched.Advance(LeaderTimeout)
	assert.Equal(t, Help, s.Mode())
	assert.Len(t, changes, 2)

	sched.Advance(HelpTimeout - LeaderTimeout)
	assert.Equal(t, Idle, s.Mode())
	assert.Equal(t, [][2]Mode{{Idle, Leader}, {Leader, Help}, {Help, Idle}}, changes)
}

func TestSearchCancelsPendingTimer(t *testing.T) {
	s, sched := newTestStore()
	s.EnterGoto()
	s.EnterSearch()

	sched.Advance(time.Hour)
	assert.Equal(t, Search, s.Mode())
}

func TestReenteringRearmsTimer(t *testing.T) {
	s, sched := newTestStore()
	s.EnterGoto()
	sched.Advance(1500 * time.Millisecond)
	s.EnterGoto()

	sched.Advance(1000 * time.Millisecond)
	assert.Equal(t, Goto, s.Mode(), "first goto timer was superseded")

	sched.Advance(1000 * time.Millisecond)
	assert.Equal(t, Idle, s.Mode())
}

func TestResetIsIdempotent(t *testing.T) {
	s, _ := newTestStore()
	calls := 0
	s.Subscribe(func(from, to Mode) { calls++ })

	s.EnterHelp()
	s.Reset()
	gen := s.Generation()
	mode := s.Mode()

	s.Reset()
	assert.Equal(t, mode, s.Mode())
	assert.Equal(t, gen, s.Generation())
	assert.Equal(t, 2, calls)
	_, ok := s.Pending()
	assert.False(t, ok)
}

func TestStaleExpireIsNoop(t *testing.T) {
	s, _ := newTestStore()
	s.EnterLeader()
	stale := s.Generation()
	s.EnterGoto()

	assert.False(t, s.Expire(stale))
	assert.Equal(t, Goto, s.Mode())
	assert.True(t, s.Expire(s.Generation()))
	assert.Equal(t, Idle, s.Mode())
}

func TestAtMostOneLiveTimer(t *testing.T) {
	s, sched := newTestStore()
	ops := []func(){s.EnterLeader, s.EnterHelp, s.EnterSearch, s.EnterGoto, s.Reset}
	rng := rand.New(rand.NewSource(7))

	var lastArmed Mode = Idle
	armed := false
	for i := 0; i < 500; i++ {
		op := rng.Intn(len(ops))
		ops[op]()
		switch s.Mode() {
		case Leader, Help, Goto:
			lastArmed, armed = s.Mode(), true
		default:
			armed = false
		}

		timer, ok := s.Pending()
		assert.Equal(t, armed, ok)
		if ok {
			assert.Equal(t, lastArmed, timer.Mode)
			assert.Equal(t, s.Generation(), timer.Generation)
		}

		if rng.Intn(4) == 0 {
			sched.Advance(time.Duration(rng.Intn(6000)) * time.Millisecond)
			if ok && sched.Now() > 0 {
				// Either still live or reverted by its own timer.
				assert.Contains(t, []Mode{lastArmed, Idle}, s.Mode())
			}
		}
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	s, _ := newTestStore()
	var seen []Mode
	unsubscribe := s.Subscribe(func(from, to Mode) { seen = append(seen, to) })

	s.EnterSearch()
	s.EnterSearch() // same mode, no notification
	unsubscribe()
	s.Reset()

	assert.Equal(t, []Mode{Search}, seen)
}

func TestEnterByValue(t *testing.T) {
	s, _ := newTestStore()
	s.Enter(Goto)
	assert.True(t, s.IsGoto())
	s.Enter(Idle)
	assert.True(t, s.IsIdle())
	s.Enter(Mode(99))
	assert.True(t, s.IsIdle())
}

func TestNilSchedulerNeverReverts(t *testing.T) {
	s := NewStore(nil)
	s.EnterLeader()
	assert.True(t, s.IsLeader())
	timer, ok := s.Pending()
	require.True(t, ok)
	assert.True(t, s.Expire(timer.Generation))
	assert.True(t, s.IsIdle())
}
