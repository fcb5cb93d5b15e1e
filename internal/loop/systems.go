package loop

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomz197/stroids/internal/event"
	"github.com/tomz197/stroids/internal/object"
)

// step runs every simulation system once, in order. Movement finishes
// before collision, and all effects land before the next step.
func (g *Game) step(f Frame) error {
	g.aim(f)
	g.shoot(f)
	g.spawnAsteroids(f.Delta)
	if err := g.move(); err != nil {
		return err
	}
	g.collide()
	g.survive(f.Delta)
	g.flushSpawned()
	return nil
}

// aim turns the ship toward the cursor.
func (g *Game) aim(f Frame) {
	p := g.round.Player()
	if p == nil || !f.CursorInWindow {
		return
	}
	p.AimAt(f.Cursor, g.round.field)
}

// shoot drains every queued fire request. Each one becomes a projectile,
// unless the cursor is outside the window, the ship is respawning or the
// cursor sits on the ship and gives no direction, in which case the request
// is dropped.
func (g *Game) shoot(f Frame) {
	fires := g.bus.Fire.Drain()
	r := g.round
	p := r.Player()
	if len(fires) == 0 || p == nil || p.Invincible || !f.CursorInWindow {
		return
	}
	dir := f.Cursor.Sub(r.field.Normalize(p.Pos))
	if dir.Len() == 0 {
		return
	}
	for range fires {
		r.World.Spawn(object.NewProjectile(r.World.NewID(), p.Pos, dir,
			g.settings.LaserSpeed, g.settings.ProjectileScale))
	}
}

// spawnAsteroids advances the spawn cadence and queues one asteroid per
// spawn-timer firing.
func (g *Game) spawnAsteroids(d time.Duration) {
	r := g.round
	due, increased := r.Spawner.Update(d)
	if increased {
		g.logger.Debug("spawn rate increased", "period", r.Spawner.Period())
	}
	for i := 0; i < due; i++ {
		r.World.Spawn(object.NewAsteroidAtEdge(r.World.NewID(), g.rng, r.field, g.settings))
	}
}

// move integrates asteroids and projectiles concurrently, then removes what
// left the field.
func (g *Game) move() error {
	w := g.round.World
	ctx := object.UpdateContext{Field: g.round.field, Margin: g.settings.OutOfBoundsRange}

	asteroids := w.Asteroids()
	projectiles := w.Projectiles()
	asteroidsOut := make([]bool, len(asteroids))
	projectilesOut := make([]bool, len(projectiles))

	var eg errgroup.Group
	eg.Go(func() error {
		integrate(asteroids, ctx, asteroidsOut)
		return nil
	})
	eg.Go(func() error {
		integrate(projectiles, ctx, projectilesOut)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, out := range asteroidsOut {
		if out {
			w.Destroy(asteroids[i].EntityID(), object.CauseOutOfBounds)
		}
	}
	for i, out := range projectilesOut {
		if out {
			w.Destroy(projectiles[i].EntityID(), object.CauseOutOfBounds)
		}
	}
	g.compact()
	return nil
}

// integrate advances every mover one tick and records which ones left the
// field in out.
func integrate[T object.Mover](movers []T, ctx object.UpdateContext, out []bool) {
	for i, m := range movers {
		out[i] = m.Update(ctx)
	}
}

// survive applies this tick's hits to the ship: the respawn timer runs
// first, then every hit is consumed and the life icons follow the count.
func (g *Game) survive(d time.Duration) {
	r := g.round
	hits := g.bus.PlayerHit.Drain()
	p := r.Player()
	if p == nil {
		return
	}

	if p.TickRespawn(d) {
		g.logger.Debug("ship vulnerable again")
	}
	for range hits {
		lost, over := p.TakeHit()
		if !lost {
			continue
		}
		g.logger.Debug("life lost", "lives", p.Lives)
		g.bus.Notify(event.Notification{Type: event.LivesChanged, Entity: p.EntityID(), Kind: object.KindPlayer, Value: p.Lives})
		if over {
			g.logger.Info("last life lost", "score", r.Score)
			g.bus.GameOver.Push(event.GameOver{Score: r.Score})
		}
	}
	g.syncLifeIcons()
	g.compact()
}

// syncLifeIcons destroys every icon whose slot is beyond the remaining
// lives. Icons already marked are skipped, so repeated calls are harmless.
func (g *Game) syncLifeIcons() int {
	r := g.round
	lives := r.Lives()
	n := 0
	for _, icon := range r.World.LifeIcons() {
		if !icon.Lost(lives) {
			continue
		}
		if r.World.Destroy(icon.EntityID(), object.CauseLifeLost) {
			n++
			g.bus.Notify(event.Notification{Type: event.LifeLost, Entity: icon.EntityID(), Kind: object.KindLifeIcon, Value: icon.Counter})
		}
	}
	return n
}

// flushSpawned adds this tick's new asteroids and projectiles. They first
// move on the next tick.
func (g *Game) flushSpawned() {
	for _, obj := range g.round.World.FlushSpawned() {
		g.notifySpawned(obj)
	}
}

// compact removes destroyed entities and reports each removal.
func (g *Game) compact() {
	for _, rm := range g.round.World.Compact() {
		g.bus.Notify(event.Notification{Type: event.Despawned, Entity: rm.ID, Kind: rm.Kind, Cause: rm.Cause})
	}
}
