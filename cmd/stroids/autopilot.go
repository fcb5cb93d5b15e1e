package main

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/stroids/internal/loop"
	"github.com/tomz197/stroids/internal/physics"
)

// autopilot plays without a terminal: it aims at the nearest asteroid,
// fires now and then and restarts after game over.
type autopilot struct {
	game *loop.Game
	rng  *rand.Rand
}

func newAutopilot(game *loop.Game, rng *rand.Rand) *autopilot {
	return &autopilot{game: game, rng: rng}
}

// Poll implements loop.FrameSource.
func (a *autopilot) Poll() (loop.Frame, bool) {
	if a.game.State() != loop.StateInGame {
		return loop.Frame{Confirm: true}, false
	}

	snap := a.game.Snapshot()
	f := loop.Frame{}
	if target, ok := nearest(snap); ok {
		// Shots travel along cursor minus the ship's window position.
		ship := snap.Field.Normalize(snap.Player.Pos)
		f.Cursor = ship.Add(target.Sub(snap.Player.Pos))
		f.CursorInWindow = snap.Field.Contains(f.Cursor)
	}
	if a.rng.IntN(8) == 0 {
		f.Fires = 1
	}
	return f, false
}

// nearest returns the asteroid closest to the ship.
func nearest(s loop.Snapshot) (physics.Vec, bool) {
	if s.Player == nil || len(s.Asteroids) == 0 {
		return physics.Vec{}, false
	}
	best := s.Asteroids[0].Pos
	for _, a := range s.Asteroids[1:] {
		if physics.Distance(s.Player.Pos, a.Pos) < physics.Distance(s.Player.Pos, best) {
			best = a.Pos
		}
	}
	return best, true
}

// roundReport implements loop.Presenter by logging round results.
type roundReport struct {
	logger *log.Logger
	last   loop.State
	rounds int
	best   int
}

// Present implements loop.Presenter.
func (r *roundReport) Present(s loop.Snapshot) error {
	if s.State != r.last && s.State == loop.StateGameOver {
		r.rounds++
		r.best = max(r.best, s.FinalScore)
		r.logger.Info("round over", "round", r.rounds, "score", s.FinalScore)
	}
	r.last = s.State
	return nil
}

func (r *roundReport) finish(game *loop.Game) {
	snap := game.Snapshot()
	r.logger.Info("session finished", "rounds", r.rounds, "best", r.best,
		"state", snap.State, "score", snap.Score, "lives", snap.Lives)
}
