package palette

import (
	"sort"
	"time"
)

type scheduled struct {
	at   time.Duration
	seq  int
	fire func()
}

// ManualScheduler is a Scheduler driven by an explicit clock. Nothing fires
// until Advance moves the clock past a deadline. It is used by tests and by
// headless callers that step time themselves.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []scheduled
}

// NewManualScheduler creates a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(after time.Duration, fire func()) {
	m.seq++
	m.pending = append(m.pending, scheduled{at: m.now + after, seq: m.seq, fire: fire})
}

// Now returns the elapsed virtual time.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// Queued returns how many callbacks have not fired yet, stale ones included.
func (m *ManualScheduler) Queued() int { return len(m.pending) }

// Advance moves the clock forward by d and fires every callback whose
// deadline has been reached, in deadline order.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.now += d
	for {
		due := m.due()
		if due == nil {
			return
		}
		due.fire()
	}
}

func (m *ManualScheduler) due() *scheduled {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at < m.pending[j].at
	})
	if len(m.pending) == 0 || m.pending[0].at > m.now {
		return nil
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	return &next
}
