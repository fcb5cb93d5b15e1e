package object

import (
	"math/rand/v2"

	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/physics"
)

// Asteroid variants. Odd variants use the large hit-box, even the small one.
const (
	VariantCount = 4
)

// Edge identifies the play-field boundary an asteroid enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
)

// Asteroid is a drifting, spinning rock.
type Asteroid struct {
	base
	Pos        physics.Vec // Position (center)
	Rotation   float64     // Current rotation angle
	Trajectory physics.Vec // Unit direction of travel
	Speed      float64     // Units per tick
	Spin       float64     // Rotation delta per tick
	Variant    int         // Visual variant, 1..VariantCount
	Size       physics.Size
}

// NewAsteroid creates an asteroid at pos moving along trajectory.
func NewAsteroid(id ID, pos, trajectory physics.Vec, speed, spin float64, variant int, size physics.Size) *Asteroid {
	return &Asteroid{
		base:       base{id: id},
		Pos:        pos,
		Trajectory: trajectory.Normalize(),
		Speed:      speed,
		Spin:       spin,
		Variant:    variant,
		Size:       size,
	}
}

// VariantSize maps a visual variant to its hit-box.
func VariantSize(variant int, s config.Settings) physics.Size {
	if variant%2 == 1 {
		return physics.Size{W: s.AsteroidLarge, H: s.AsteroidLarge}
	}
	return physics.Size{W: s.AsteroidSmall, H: s.AsteroidSmall}
}

// NewAsteroidAtEdge creates an asteroid just outside a random edge of the
// field, aimed through a random point inside it.
func NewAsteroidAtEdge(id ID, rng *rand.Rand, field physics.Field, s config.Settings) *Asteroid {
	edge := Edge(rng.IntN(4))
	spawn := edgePoint(edge, rng, field, s.SpawnMargin)

	target := physics.Vec{X: rng.Float64() * field.Width, Y: rng.Float64() * field.Height}
	speed := s.AsteroidSpeedMin + rng.Float64()*(s.AsteroidSpeedMax-s.AsteroidSpeedMin)
	variant := 1 + rng.IntN(VariantCount)
	spin := (rng.Float64()*2 - 1) * s.AsteroidSpinMax

	// Trajectory is taken in window space and applied in simulation space;
	// the mirror in Normalize turns it toward the target.
	trajectory := spawn.Sub(target)

	return NewAsteroid(id, field.Normalize(spawn), trajectory, speed, spin, variant, VariantSize(variant, s))
}

// edgePoint returns a window-space point margin units past the given edge.
// The coordinate along the edge spans the field plus margin on both ends.
func edgePoint(edge Edge, rng *rand.Rand, field physics.Field, margin float64) physics.Vec {
	along := func(size float64) float64 {
		return -margin + rng.Float64()*(size+2*margin)
	}
	switch edge {
	case EdgeTop:
		return physics.Vec{X: along(field.Width), Y: -margin}
	case EdgeBottom:
		return physics.Vec{X: along(field.Width), Y: field.Height + margin}
	case EdgeLeft:
		return physics.Vec{X: -margin, Y: along(field.Height)}
	default:
		return physics.Vec{X: field.Width + margin, Y: along(field.Height)}
	}
}

// Kind implements Object.
func (a *Asteroid) Kind() Kind { return KindAsteroid }

// Position implements HitBox.
func (a *Asteroid) Position() physics.Vec { return a.Pos }

// HitBox implements HitBox.
func (a *Asteroid) HitBox() physics.Size { return a.Size }

// Score is what destroying this asteroid with a projectile is worth.
func (a *Asteroid) Score() int { return int(a.Speed) }

// Update moves and rotates the asteroid.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	a.Pos = a.Pos.Add(a.Trajectory.Scale(a.Speed))
	a.Rotation += a.Spin
	return ctx.Field.OutOfBounds(a.Pos, ctx.Margin)
}
