package loop

import (
	"github.com/tomz197/stroids/internal/event"
	"github.com/tomz197/stroids/internal/object"
	"github.com/tomz197/stroids/internal/physics"
)

// collide resolves overlaps for this tick. Destruction is deferred until
// both passes ran, so every overlapping pair takes effect even when one of
// its entities was already hit earlier in the tick.
func (g *Game) collide() {
	g.collidePlayer()
	g.collideProjectiles()
	g.compact()
}

// collidePlayer destroys every asteroid touching the ship and raises one hit
// per asteroid. Invincibility does not protect the asteroids.
func (g *Game) collidePlayer() {
	w := g.round.World
	p := w.Player()
	if p == nil {
		return
	}
	for _, a := range w.Asteroids() {
		if !overlaps(p, a) {
			continue
		}
		w.Destroy(a.EntityID(), object.CauseCollision)
		g.bus.PlayerHit.Push(event.PlayerHit{Asteroid: a.EntityID()})
	}
}

// collideProjectiles scores every projectile-asteroid overlap. Candidate
// asteroids come from the spatial grid.
func (g *Game) collideProjectiles() {
	r := g.round
	w := r.World
	asteroids := w.Asteroids()
	projectiles := w.Projectiles()
	if len(asteroids) == 0 || len(projectiles) == 0 {
		return
	}

	r.grid.Clear()
	for i, a := range asteroids {
		r.grid.Insert(a.Pos, i)
	}

	before := r.Score
	for _, p := range projectiles {
		r.grid.QueryAround(p.Pos, func(i int) bool {
			a := asteroids[i]
			if !overlaps(p, a) {
				return false
			}
			r.Score += a.Score()
			w.Destroy(p.EntityID(), object.CauseCollision)
			w.Destroy(a.EntityID(), object.CauseCollision)
			return false
		})
	}
	if r.Score != before {
		g.bus.Notify(event.Notification{Type: event.ScoreChanged, Value: r.Score})
	}
}

func overlaps(a, b object.HitBox) bool {
	return physics.Overlap(a.Position(), a.HitBox(), b.Position(), b.HitBox())
}
