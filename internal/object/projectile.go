package object

import (
	"github.com/tomz197/stroids/internal/physics"
)

// Projectile is a laser bolt fired by the player.
type Projectile struct {
	base
	Pos      physics.Vec // Position
	Velocity physics.Vec // Units per tick
	Scale    float64     // Render scale; doubles as the hit-box edge length
}

// NewProjectile creates a projectile at pos traveling along dir at speed.
func NewProjectile(id ID, pos, dir physics.Vec, speed, scale float64) *Projectile {
	return &Projectile{
		base:     base{id: id},
		Pos:      pos,
		Velocity: dir.Normalize().Scale(speed),
		Scale:    scale,
	}
}

// Kind implements Object.
func (p *Projectile) Kind() Kind { return KindProjectile }

// Position implements HitBox.
func (p *Projectile) Position() physics.Vec { return p.Pos }

// HitBox implements HitBox.
func (p *Projectile) HitBox() physics.Size { return physics.Size{W: p.Scale, H: p.Scale} }

// Update applies velocity.
func (p *Projectile) Update(ctx UpdateContext) bool {
	p.Pos = p.Pos.Add(p.Velocity)
	return ctx.Field.OutOfBounds(p.Pos, ctx.Margin)
}

// LifeIcon is the HUD stand-in for one life slot. Counter is 1-based.
type LifeIcon struct {
	base
	Counter int
}

// NewLifeIcon creates the icon for the given slot.
func NewLifeIcon(id ID, counter int) *LifeIcon {
	return &LifeIcon{base: base{id: id}, Counter: counter}
}

// Kind implements Object.
func (l *LifeIcon) Kind() Kind { return KindLifeIcon }

// Lost reports whether the slot is beyond the remaining lives.
func (l *LifeIcon) Lost(lives int) bool { return l.Counter > lives }
