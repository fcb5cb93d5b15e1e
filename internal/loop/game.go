// Package loop runs the game-round simulation: the match state machine, the
// per-tick systems and the fixed-rate driver.
package loop

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/event"
	"github.com/tomz197/stroids/internal/object"
	"github.com/tomz197/stroids/internal/physics"
)

var (
	// ErrRoundActive is returned when a round is started while one is live.
	ErrRoundActive = errors.New("round already active")
	// ErrNoRound is returned by round-only operations outside InGame.
	ErrNoRound = errors.New("no active round")
)

// Game is the match state machine. It owns the current Round while InGame
// and advances it one tick per Update. A Game is not safe for concurrent use.
type Game struct {
	settings config.Settings
	field    physics.Field
	state    State
	round    *Round
	bus      *event.Bus
	rng      *rand.Rand
	logger   *log.Logger

	finalScore int
	notes      []event.Notification
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithRand sets the random source used for asteroid placement.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// New creates a game sitting in the main menu.
func New(s config.Settings, opts ...Option) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g := &Game{
		settings: s,
		field:    physics.Field{Width: s.FieldWidth, Height: s.FieldHeight},
		state:    StateMainMenu,
		bus:      event.NewBus(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.rng == nil {
		seed := s.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return g, nil
}

// State returns the current match phase.
func (g *Game) State() State { return g.state }

// Paused reports whether the live round is paused.
func (g *Game) Paused() bool { return g.round != nil && g.round.Paused }

// Round returns the live round, or nil outside InGame.
func (g *Game) Round() *Round { return g.round }

// FinalScore is the score read from the last round that reached GameOver.
func (g *Game) FinalScore() int { return g.finalScore }

// Field returns the current play field.
func (g *Game) Field() physics.Field { return g.field }

// Settings returns the tunables the game was created with.
func (g *Game) Settings() config.Settings { return g.settings }

// Notifications returns what changed during the last Update. The slice is
// only valid until the next Update.
func (g *Game) Notifications() []event.Notification { return g.notes }

// Update advances the game by one tick.
func (g *Game) Update(f Frame) error {
	g.bus.Notes.Reset()
	if f.Delta < 0 {
		f.Delta = 0
	}

	var err error
	switch g.state {
	case StateMainMenu:
		if f.Confirm {
			err = g.StartRound()
		}
	case StateInGame:
		err = g.updateInGame(f)
	case StateGameOver:
		switch {
		case f.Menu:
			g.setState(StateMainMenu)
		case f.Confirm:
			err = g.StartRound()
		}
	}

	g.notes = g.bus.Notes.Drain()
	return err
}

func (g *Game) updateInGame(f Frame) error {
	if f.Menu {
		g.endRound(StateMainMenu)
		return nil
	}
	r := g.round
	if f.Pause {
		r.Paused = !r.Paused
		g.logger.Debug("pause toggled", "paused", r.Paused)
		g.bus.Notify(event.Notification{Type: event.PauseToggled, Value: boolToInt(r.Paused)})
	}
	if !r.Paused {
		for i := 0; i < f.Fires; i++ {
			g.bus.Fire.Push(event.Fire{})
		}
		if err := g.step(f); err != nil {
			return err
		}
	}
	g.observeGameOver()
	return nil
}

// StartRound enters InGame with a freshly set up round.
func (g *Game) StartRound() error {
	if g.round != nil {
		return ErrRoundActive
	}
	g.bus.ResetRound()
	g.round = newRound(g.settings, g.field)
	g.notifySpawned(g.round.World.Player())
	for _, icon := range g.round.World.LifeIcons() {
		g.notifySpawned(icon)
	}
	g.logger.Info("round started", "lives", g.settings.Lives, "field", fmt.Sprintf("%.0fx%.0f", g.field.Width, g.field.Height))
	g.setState(StateInGame)
	return nil
}

// EndRound leaves InGame for the main menu, dropping the round.
func (g *Game) EndRound() error {
	if g.round == nil {
		return ErrNoRound
	}
	g.endRound(StateMainMenu)
	return nil
}

// endRound drops every round-scoped entity at once. Only a GameOver
// transition keeps the score.
func (g *Game) endRound(next State) {
	r := g.round
	if next == StateGameOver {
		g.finalScore = r.Score
	}
	g.logger.Info("round ended", "score", r.Score, "entities", r.World.Len(), "next", next)
	g.round = nil
	g.bus.ResetRound()
	g.setState(next)
}

// observeGameOver consumes game-over events. Any number may be pending;
// the first one observed while InGame ends the round.
func (g *Game) observeGameOver() {
	events := g.bus.GameOver.Drain()
	if len(events) == 0 || g.state != StateInGame {
		return
	}
	if len(events) > 1 {
		g.logger.Error("duplicate game-over events", "count", len(events))
	}
	g.endRound(StateGameOver)
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.logger.Info("state changed", "from", g.state, "to", s)
	g.state = s
	g.bus.Notify(event.Notification{Type: event.StateChanged, Value: int(s)})
}

func (g *Game) notifySpawned(obj object.Object) {
	if obj == nil {
		return
	}
	g.bus.Notify(event.Notification{Type: event.Spawned, Entity: obj.EntityID(), Kind: obj.Kind()})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
