package object

import (
	"time"

	"github.com/tomz197/stroids/internal/timer"
)

// AsteroidSpawner paces asteroid creation. The spawn period starts at an
// initial value and shrinks by a fixed factor every time the rate-increase
// timer fires, never going below a floor.
type AsteroidSpawner struct {
	spawn  timer.Timer
	rate   timer.Timer
	factor float64
	floor  time.Duration
}

// NewAsteroidSpawner creates a spawner with both timers at zero progress.
func NewAsteroidSpawner(initial, rateEvery time.Duration, factor float64, floor time.Duration) *AsteroidSpawner {
	return &AsteroidSpawner{
		spawn:  timer.New(initial, timer.Repeating),
		rate:   timer.New(rateEvery, timer.Repeating),
		factor: factor,
		floor:  floor,
	}
}

// Update advances both timers by d. due is how many spawn periods completed;
// increased reports whether the period shrank during this call. Re-arming the
// spawn timer discards its firings, so a tick that raises the rate spawns
// nothing.
func (s *AsteroidSpawner) Update(d time.Duration) (due int, increased bool) {
	s.spawn.Tick(d)
	s.rate.Tick(d)

	if n := s.rate.Times(); n > 0 {
		period := s.spawn.Period()
		for i := 0; i < n; i++ {
			period = s.shrink(period)
		}
		s.spawn.SetPeriod(period)
		return 0, true
	}
	return s.spawn.Times(), false
}

// shrink scales p by the factor, truncated to whole nanoseconds and clamped
// to the floor. Truncation means long chains drift below an exact power of
// the factor (the ninth step from 1s yields 107374182ns).
func (s *AsteroidSpawner) shrink(p time.Duration) time.Duration {
	next := time.Duration(float64(p) * s.factor)
	if next < s.floor {
		return s.floor
	}
	return next
}

// Period returns the current spawn period.
func (s *AsteroidSpawner) Period() time.Duration { return s.spawn.Period() }

// SpawnElapsed returns progress toward the next spawn.
func (s *AsteroidSpawner) SpawnElapsed() time.Duration { return s.spawn.Elapsed() }

// RateElapsed returns progress toward the next rate increase.
func (s *AsteroidSpawner) RateElapsed() time.Duration { return s.rate.Elapsed() }
