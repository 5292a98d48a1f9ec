// Package timer accounts for the busy/idle time of a single span across
// repeated enter/exit cycles.
package timer

import "time"

// Timer accumulates the total elapsed time during which a span is "active".
// A Timer starts idle: busy time only accrues between a call to Unpause and
// the following call to Pause.
//
// Not safe for concurrent use; callers (the ingestion layer) serialize access
// per span id.
type Timer struct {
	last  time.Time
	busy  time.Duration
	idle  time.Duration
	paused bool
}

// New returns a fresh, paused Timer with last set to now.
func New() *Timer {
	return &Timer{last: time.Now(), paused: true}
}

// Unpause marks the timer as busy from this instant forward. Calling Unpause
// on an already-unpaused timer is a no-op: the facade guarantees paired
// enter/exit per nesting level, but re-entrance of the same span across
// suspension points can still deliver a duplicate enter.
func (t *Timer) Unpause() {
	if !t.paused {
		return
	}
	now := time.Now()
	t.idle += now.Sub(t.last)
	t.last = now
	t.paused = false
}

// Pause marks the timer as idle from this instant forward. Calling Pause on
// an already-paused timer is a no-op for the same reason as Unpause.
func (t *Timer) Pause() {
	now := time.Now()
	if !t.paused {
		t.busy += now.Sub(t.last)
	}
	t.last = now
	t.paused = true
}

// Duration consumes the timer and returns the accumulated busy time. If the
// timer is still unpaused at the moment of the call, the open interval is
// folded in first so a span closed mid-enter doesn't lose its final slice.
func (t *Timer) Duration() time.Duration {
	if !t.paused {
		t.Pause()
	}
	return t.busy
}
