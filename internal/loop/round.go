package loop

import (
	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/object"
	"github.com/tomz197/stroids/internal/physics"
	"github.com/tomz197/stroids/internal/world"
)

// Round is everything that lives only while InGame: the entity registry,
// the spawn cadence, the pause flag and the scoreboard. It is built when a
// round starts and dropped as a whole when it ends.
type Round struct {
	World   *world.World
	Spawner *object.AsteroidSpawner
	Paused  bool
	Score   int

	field physics.Field
	grid  *physics.SpatialGrid // Asteroid broad phase, rebuilt every tick
}

// newRound sets up a fresh round: one vulnerable ship at the origin, a life
// icon per slot and both spawn timers at zero progress.
func newRound(s config.Settings, field physics.Field) *Round {
	w := world.New()
	w.Add(object.NewPlayer(w.NewID(), s.Lives, s.RespawnDuration,
		physics.Size{W: s.PlayerHitWidth, H: s.PlayerHitHeight}))
	for counter := 1; counter <= s.Lives; counter++ {
		w.Add(object.NewLifeIcon(w.NewID(), counter))
	}

	return &Round{
		World: w,
		Spawner: object.NewAsteroidSpawner(
			s.InitialSpawnPeriod, s.RateIncreaseEvery, s.SpawnPeriodFactor, s.MinSpawnPeriod),
		field: field,
		grid:  newAsteroidGrid(s, field),
	}
}

// newAsteroidGrid covers everything that can survive the out-of-bounds rule.
// A cell holds the widest possible asteroid-projectile overlap.
func newAsteroidGrid(s config.Settings, field physics.Field) *physics.SpatialGrid {
	m := s.OutOfBoundsRange
	cell := max(s.AsteroidLarge, s.AsteroidSmall) + s.ProjectileScale
	origin := physics.Vec{X: -field.Width/2 - m, Y: -field.Height/2 - m}
	return physics.NewSpatialGrid(origin, field.Width+2*m, field.Height+2*m, cell)
}

// Player returns the round's ship, or nil.
func (r *Round) Player() *object.Player { return r.World.Player() }

// Field returns the play field the round was laid out for.
func (r *Round) Field() physics.Field { return r.field }

// Lives returns the ship's remaining lives, or 0 without a ship.
func (r *Round) Lives() int {
	if p := r.World.Player(); p != nil {
		return p.Lives
	}
	return 0
}
