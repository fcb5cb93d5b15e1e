// Package timer provides elapsed-time driven one-shot and repeating timers
// advanced explicitly by frame deltas.
package timer

import "time"

// Mode selects what a timer does once its period elapses.
type Mode int

const (
	Once      Mode = iota // Fires a single time, then stays finished
	Repeating             // Fires every period, carrying over leftover time
)

// Timer accumulates elapsed time toward a period.
// The zero value is a finished one-shot timer with no period.
type Timer struct {
	period  time.Duration
	elapsed time.Duration
	mode    Mode
	times   int  // Firings during the most recent Tick
	done    bool // Once timers only
}

// New returns a timer with the given period. Non-positive periods are raised
// to one nanosecond so a repeating timer cannot fire unboundedly.
func New(period time.Duration, mode Mode) Timer {
	return Timer{period: clampPeriod(period), mode: mode}
}

func clampPeriod(p time.Duration) time.Duration {
	if p <= 0 {
		return 1
	}
	return p
}

// Tick advances the timer by d. Negative deltas count as zero.
func (t *Timer) Tick(d time.Duration) {
	t.times = 0
	if d < 0 {
		d = 0
	}

	switch t.mode {
	case Repeating:
		t.elapsed += d
		if t.elapsed >= t.period {
			t.times = int(t.elapsed / t.period)
			t.elapsed %= t.period
		}
	default:
		if t.done {
			return
		}
		t.elapsed += d
		if t.elapsed >= t.period {
			t.elapsed = t.period
			t.done = true
			t.times = 1
		}
	}
}

// JustFinished reports whether the last Tick completed at least one period.
func (t *Timer) JustFinished() bool { return t.times > 0 }

// Times returns how many periods completed during the last Tick.
func (t *Timer) Times() int { return t.times }

// Finished reports whether a one-shot timer has run out. Repeating timers
// report the same as JustFinished.
func (t *Timer) Finished() bool {
	if t.mode == Repeating {
		return t.times > 0
	}
	return t.done
}

// Period returns the current period.
func (t *Timer) Period() time.Duration { return t.period }

// Elapsed returns progress toward the next firing.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Mode returns the timer mode.
func (t *Timer) Mode() Mode { return t.mode }

// SetPeriod re-arms the timer in place with a new period. Progress toward
// the next firing is discarded.
func (t *Timer) SetPeriod(p time.Duration) {
	t.period = clampPeriod(p)
	t.Reset()
}

// Reset clears progress and the finished state, keeping period and mode.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.times = 0
	t.done = false
}
