// Package object defines the round-scoped entities of the simulation and
// their per-tick motion.
package object

import (
	"github.com/tomz197/stroids/internal/physics"
)

// ID is an opaque entity identifier. Zero is never issued.
type ID uint64

// Kind tells the four entity variants apart.
type Kind int

const (
	KindPlayer Kind = iota + 1
	KindAsteroid
	KindProjectile
	KindLifeIcon
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAsteroid:
		return "asteroid"
	case KindProjectile:
		return "projectile"
	case KindLifeIcon:
		return "life-icon"
	default:
		return "unknown"
	}
}

// Cause records why an entity was destroyed.
type Cause int

const (
	CauseNone        Cause = iota // Still alive
	CauseOutOfBounds              // Drifted past the field margin
	CauseCollision                // Removed by collision resolution
	CauseLifeLost                 // Life icon whose slot was lost
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseOutOfBounds:
		return "out-of-bounds"
	case CauseCollision:
		return "collision"
	case CauseLifeLost:
		return "life-lost"
	default:
		return "unknown"
	}
}

// UpdateContext provides what an object needs to advance one tick.
type UpdateContext struct {
	Field  physics.Field
	Margin float64 // Out-of-bounds distance past the field edges
}

// Object is any entity held by the registry.
type Object interface {
	EntityID() ID
	Kind() Kind
	Destructible
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed records the cause and reports whether this call did the
	// marking. Marking an already destroyed object is a no-op returning false.
	MarkDestroyed(cause Cause) bool
	// IsDestroyed returns true once the object has been marked.
	IsDestroyed() bool
	// Cause returns why the object was destroyed, or CauseNone.
	Cause() Cause
}

// Mover is implemented by objects advanced by the motion integrator.
type Mover interface {
	Object
	// Update moves the object one tick. Returns true if it left the field.
	Update(ctx UpdateContext) (outOfBounds bool)
}

// HitBox is implemented by objects that take part in overlap tests.
type HitBox interface {
	Position() physics.Vec
	HitBox() physics.Size
}

// base carries identity and destruction state shared by every kind.
type base struct {
	id    ID
	cause Cause
}

// EntityID returns the object's identifier.
func (b *base) EntityID() ID { return b.id }

// MarkDestroyed implements Destructible.
func (b *base) MarkDestroyed(cause Cause) bool {
	if b.cause != CauseNone || cause == CauseNone {
		return false
	}
	b.cause = cause
	return true
}

// IsDestroyed implements Destructible.
func (b *base) IsDestroyed() bool { return b.cause != CauseNone }

// Cause implements Destructible.
func (b *base) Cause() Cause { return b.cause }
