package loop

import (
	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/object"
	"github.com/tomz197/stroids/internal/physics"
)

// Snapshot is a read-only copy of what a renderer needs for one frame.
// Positions are in simulation space.
type Snapshot struct {
	State      State
	Paused     bool
	Field      physics.Field
	Score      int
	FinalScore int
	Lives      int

	Player      *ShipView // nil outside InGame
	Asteroids   []AsteroidView
	Projectiles []physics.Vec
	LifeSlots   []LifeSlot
}

// ShipView describes the player's ship.
type ShipView struct {
	Pos        physics.Vec
	Angle      float64
	Alpha      float64
	Invincible bool
}

// AsteroidView describes one asteroid.
type AsteroidView struct {
	Pos      physics.Vec
	Rotation float64
	Variant  int
	Size     physics.Size
}

// LifeSlot is one HUD life marker. Lost slots have no icon left.
type LifeSlot struct {
	Counter int
	Lost    bool
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:      g.state,
		Field:      g.field,
		FinalScore: g.finalScore,
	}
	r := g.round
	if r == nil {
		return s
	}

	s.Paused = r.Paused
	s.Score = r.Score
	s.Lives = r.Lives()

	if p := r.Player(); p != nil {
		s.Player = &ShipView{
			Pos:        p.Pos,
			Angle:      p.Angle,
			Alpha:      p.Alpha(config.InvincibleAlpha),
			Invincible: p.Invincible,
		}
	}

	asteroids := r.World.Asteroids()
	s.Asteroids = make([]AsteroidView, 0, len(asteroids))
	for _, a := range asteroids {
		s.Asteroids = append(s.Asteroids, AsteroidView{Pos: a.Pos, Rotation: a.Rotation, Variant: a.Variant, Size: a.Size})
	}

	projectiles := r.World.Projectiles()
	s.Projectiles = make([]physics.Vec, 0, len(projectiles))
	for _, p := range projectiles {
		s.Projectiles = append(s.Projectiles, p.Pos)
	}

	alive := make(map[int]bool, g.settings.Lives)
	for _, icon := range r.World.LifeIcons() {
		alive[icon.Counter] = true
	}
	s.LifeSlots = make([]LifeSlot, 0, g.settings.Lives)
	for counter := 1; counter <= g.settings.Lives; counter++ {
		s.LifeSlots = append(s.LifeSlots, LifeSlot{Counter: counter, Lost: !alive[counter]})
	}
	return s
}

// Count returns how many round entities of a kind are live, 0 without a round.
func (g *Game) Count(kind object.Kind) int {
	if g.round == nil {
		return 0
	}
	return g.round.World.Count(kind)
}
