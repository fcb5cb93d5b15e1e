package object

import (
	"math"
	"time"

	"github.com/tomz197/stroids/internal/physics"
	"github.com/tomz197/stroids/internal/timer"
)

// Player is the ship. It sits at its spawn point, turns to face the cursor
// and survives a fixed number of hits.
type Player struct {
	base
	Pos        physics.Vec // Position (center of ship)
	Angle      float64     // Facing in radians, including the sprite offset
	Lives      int         // Remaining lives, never negative
	Invincible bool        // Set after a hit until the respawn timer runs out
	Respawn    timer.Timer // One-shot; counts while Invincible

	hitSize         physics.Size
	respawnDuration time.Duration
}

// NewPlayer creates a vulnerable ship at the origin.
func NewPlayer(id ID, lives int, respawn time.Duration, hitSize physics.Size) *Player {
	return &Player{
		base:            base{id: id},
		Lives:           lives,
		Respawn:         timer.New(respawn, timer.Once),
		hitSize:         hitSize,
		respawnDuration: respawn,
	}
}

// Kind implements Object.
func (p *Player) Kind() Kind { return KindPlayer }

// Position implements HitBox.
func (p *Player) Position() physics.Vec { return p.Pos }

// HitBox implements HitBox.
func (p *Player) HitBox() physics.Size { return p.hitSize }

// Alpha is the opacity a renderer should use; the ship is dimmed while
// invincible.
func (p *Player) Alpha(dimmed float64) float64 {
	if p.Invincible {
		return dimmed
	}
	return 1.0
}

// AimAt turns the ship toward a window-space cursor. The sprite's forward
// axis is a quarter turn off zero.
func (p *Player) AimAt(cursor physics.Vec, field physics.Field) {
	p.Angle = physics.Angle(cursor, field.Normalize(p.Pos)) + math.Pi/2
}

// TakeHit applies one hit notification. Invincible ships absorb it.
// lost is true when a life was deducted; gameOver is true only on the hit
// that takes lives from one to zero.
func (p *Player) TakeHit() (lost, gameOver bool) {
	if p.Invincible || p.Lives <= 0 {
		return false, false
	}
	p.Lives--
	if p.Lives == 0 {
		return true, true
	}
	p.Invincible = true
	p.Respawn = timer.New(p.respawnDuration, timer.Once)
	return true, false
}

// TickRespawn advances the respawn timer while invincible. Returns true on
// the tick invincibility ends; the timer is then re-armed for the next hit.
func (p *Player) TickRespawn(d time.Duration) bool {
	if !p.Invincible {
		return false
	}
	p.Respawn.Tick(d)
	if !p.Respawn.JustFinished() {
		return false
	}
	p.Invincible = false
	p.Respawn = timer.New(p.respawnDuration, timer.Once)
	return true
}
