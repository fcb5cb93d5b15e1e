package loop

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/event"
	"github.com/tomz197/stroids/internal/object"
	"github.com/tomz197/stroids/internal/physics"
	"github.com/tomz197/stroids/internal/timer"
)

const tick = 10 * time.Millisecond

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(config.Default(), WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func startedGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t)
	if err := g.Update(Frame{Delta: tick, Confirm: true}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if g.State() != StateInGame {
		t.Fatalf("expected in-game, got %v", g.State())
	}
	return g
}

func addAsteroid(g *Game, pos physics.Vec, speed float64) *object.Asteroid {
	w := g.Round().World
	a := object.NewAsteroid(w.NewID(), pos, physics.Vec{X: 1}, speed, 0, 1, physics.Size{W: 48, H: 48})
	w.Add(a)
	return a
}

func countNotes(notes []event.Notification, typ event.NotificationType) int {
	n := 0
	for _, note := range notes {
		if note.Type == typ {
			n++
		}
	}
	return n
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := config.Default()
	s.Lives = 0
	_, err := New(s)
	if !config.IsInvalid(err) {
		t.Errorf("expected invalid settings error, got %v", err)
	}
}

func TestRoundSetup(t *testing.T) {
	g := startedGame(t)
	r := g.Round()

	p := r.Player()
	if p == nil {
		t.Fatal("round should have a ship")
	}
	if p.Pos != (physics.Vec{}) || p.Lives != 3 || p.Invincible {
		t.Errorf("unexpected ship %+v", p)
	}
	if r.Score != 0 || r.Paused {
		t.Error("round should start unpaused at score 0")
	}
	icons := r.World.LifeIcons()
	if len(icons) != 3 {
		t.Fatalf("expected 3 life icons, got %d", len(icons))
	}
	for i, icon := range icons {
		if icon.Counter != i+1 {
			t.Errorf("icon %d has counter %d", i, icon.Counter)
		}
	}
	if r.Spawner.Period() != time.Second {
		t.Errorf("spawn period: got %v", r.Spawner.Period())
	}
	if got := countNotes(g.Notifications(), event.Spawned); got != 4 {
		t.Errorf("expected 4 spawn notifications, got %d", got)
	}
}

// Scenario A: one asteroid overlapping a vulnerable ship.
func TestAsteroidHitsPlayer(t *testing.T) {
	g := startedGame(t)
	a := addAsteroid(g, physics.Vec{}, 1)

	if err := g.Update(Frame{Delta: tick}); err != nil {
		t.Fatal(err)
	}

	r := g.Round()
	if _, ok := r.World.Lookup(a.EntityID()); ok {
		t.Error("asteroid should be destroyed")
	}
	if g.bus.PlayerHit.Len() != 0 {
		t.Error("hit notification should be consumed")
	}
	p := r.Player()
	if p.Lives != 2 || !p.Invincible {
		t.Errorf("expected lives=2 invincible, got lives=%d invincible=%v", p.Lives, p.Invincible)
	}
	icons := r.World.LifeIcons()
	if len(icons) != 2 || icons[0].Counter != 1 || icons[1].Counter != 2 {
		t.Errorf("icon 3 should be gone, have %d icons", len(icons))
	}

	notes := g.Notifications()
	if countNotes(notes, event.LivesChanged) != 1 || countNotes(notes, event.LifeLost) != 1 {
		t.Errorf("expected one lives change and one life lost, got %+v", notes)
	}
	for _, n := range notes {
		if n.Type == event.LifeLost && n.Value != 3 {
			t.Errorf("lost slot: got %d, want 3", n.Value)
		}
		if n.Type == event.Despawned && n.Kind == object.KindAsteroid && n.Cause != object.CauseCollision {
			t.Errorf("asteroid cause: got %v", n.Cause)
		}
	}
}

func TestInvincibleShipStillDestroysAsteroids(t *testing.T) {
	g := startedGame(t)
	addAsteroid(g, physics.Vec{}, 1)
	g.Update(Frame{Delta: tick})

	addAsteroid(g, physics.Vec{}, 1)
	addAsteroid(g, physics.Vec{X: 5}, 1)
	g.Update(Frame{Delta: tick})

	r := g.Round()
	if r.Player().Lives != 2 {
		t.Errorf("invincible ship lost a life: %d", r.Player().Lives)
	}
	if r.World.Count(object.KindAsteroid) != 0 {
		t.Error("asteroids touching an invincible ship are still destroyed")
	}
}

// Scenario B: one projectile on one asteroid.
func TestProjectileScores(t *testing.T) {
	g := startedGame(t)
	w := g.Round().World
	a := addAsteroid(g, physics.Vec{X: 200, Y: 200}, 4.7)
	p := object.NewProjectile(w.NewID(), physics.Vec{X: 200, Y: 200}, physics.Vec{X: 1}, 0, 0.3)
	w.Add(p)

	g.Update(Frame{Delta: tick})

	if g.Round().Score != 4 {
		t.Errorf("score: got %d, want 4", g.Round().Score)
	}
	for _, id := range []object.ID{a.EntityID(), p.EntityID()} {
		if _, ok := w.Lookup(id); ok {
			t.Errorf("entity %d should be destroyed", id)
		}
	}
	if countNotes(g.Notifications(), event.ScoreChanged) != 1 {
		t.Error("expected one score notification")
	}
}

func TestProjectileScoresEveryOverlap(t *testing.T) {
	g := startedGame(t)
	w := g.Round().World
	addAsteroid(g, physics.Vec{X: 200, Y: 200}, 3)
	addAsteroid(g, physics.Vec{X: 210, Y: 200}, 2.5)
	w.Add(object.NewProjectile(w.NewID(), physics.Vec{X: 215, Y: 200}, physics.Vec{X: 1}, 0, 0.3))

	g.Update(Frame{Delta: tick})

	if g.Round().Score != 5 {
		t.Errorf("score: got %d, want 5", g.Round().Score)
	}
	if w.Len() != 4 {
		t.Errorf("only the ship and its icons should remain, have %d entities", w.Len())
	}
}

func TestOutOfBoundsBeatsCollision(t *testing.T) {
	g := startedGame(t)
	w := g.Round().World
	// Both overlap and end up past the field edge this tick.
	addAsteroid(g, physics.Vec{X: 445}, 8)
	w.Add(object.NewProjectile(w.NewID(), physics.Vec{X: 445}, physics.Vec{X: 1}, 8, 0.3))

	g.Update(Frame{Delta: tick})

	if g.Round().Score != 0 {
		t.Error("entities that left the field must not score")
	}
	for _, n := range g.Notifications() {
		if n.Type == event.Despawned && n.Cause != object.CauseOutOfBounds {
			t.Errorf("%v despawned by %v", n.Kind, n.Cause)
		}
	}
}

// Scenario C at the game level.
func TestRateIncrease(t *testing.T) {
	g := startedGame(t)
	for i := 0; i < 15; i++ {
		g.Update(Frame{Delta: time.Second})
	}

	r := g.Round()
	if r.Spawner.Period() != 800*time.Millisecond {
		t.Errorf("period: got %v, want 800ms", r.Spawner.Period())
	}
	// The rate increase at 15s swallows that tick's spawn.
	if r.World.Count(object.KindAsteroid) != 14 {
		t.Errorf("expected 14 asteroids, got %d", r.World.Count(object.KindAsteroid))
	}
}

// Scenario D at the game level.
func TestRespawnEndsInvincibility(t *testing.T) {
	g := startedGame(t)
	p := g.Round().Player()
	p.Invincible = true
	p.Respawn = timer.New(5*time.Second, timer.Once)
	p.Respawn.Tick(4990 * time.Millisecond)

	g.Update(Frame{Delta: 20 * time.Millisecond})

	if p.Invincible {
		t.Error("invincibility should end")
	}
	if p.Respawn.Elapsed() != 0 || p.Respawn.Period() != 5*time.Second || p.Respawn.Finished() {
		t.Errorf("respawn timer should be fresh, got elapsed=%v period=%v", p.Respawn.Elapsed(), p.Respawn.Period())
	}
}

// Scenario E: the game-over event waits for the state machine.
func TestGameOverObservedOnce(t *testing.T) {
	g := startedGame(t)
	r := g.Round()
	r.Player().Lives = 1
	r.Score = 7
	addAsteroid(g, physics.Vec{}, 1)
	addAsteroid(g, physics.Vec{Y: 5}, 1)

	if err := g.step(Frame{Delta: tick}); err != nil {
		t.Fatal(err)
	}
	if g.bus.GameOver.Len() != 1 {
		t.Fatalf("expected one game-over event, got %d", g.bus.GameOver.Len())
	}

	for i := 0; i < 5; i++ {
		addAsteroid(g, physics.Vec{}, 1)
		g.step(Frame{Delta: tick})
	}
	if r.Player().Lives != 0 {
		t.Errorf("lives: got %d", r.Player().Lives)
	}
	if g.bus.GameOver.Len() != 1 || g.State() != StateInGame {
		t.Fatal("game over must be raised once and not yet observed")
	}

	g.observeGameOver()
	if g.State() != StateGameOver {
		t.Fatalf("expected game over, got %v", g.State())
	}
	if g.FinalScore() != 7 || g.Round() != nil {
		t.Errorf("final score %d, round %v", g.FinalScore(), g.Round())
	}
}

func TestGameOverThroughUpdate(t *testing.T) {
	g := startedGame(t)
	g.Round().Player().Lives = 1
	addAsteroid(g, physics.Vec{}, 1)

	g.Update(Frame{Delta: tick})

	if g.State() != StateGameOver {
		t.Fatalf("expected game over, got %v", g.State())
	}
	for _, k := range []object.Kind{object.KindPlayer, object.KindAsteroid, object.KindProjectile, object.KindLifeIcon} {
		if g.Count(k) != 0 {
			t.Errorf("%v left after game over", k)
		}
	}
	if g.Snapshot().Player != nil {
		t.Error("snapshot should have no ship after game over")
	}

	g.Update(Frame{Delta: tick, Confirm: true})
	if g.State() != StateInGame || g.Round().Score != 0 || g.Round().Lives() != 3 {
		t.Error("confirm should start a fresh round")
	}
}

func TestLifeIconSyncIdempotent(t *testing.T) {
	g := startedGame(t)
	g.Round().Player().Lives = 1

	if n := g.syncLifeIcons(); n != 2 {
		t.Errorf("first sync destroyed %d icons, want 2", n)
	}
	if n := g.syncLifeIcons(); n != 0 {
		t.Errorf("second sync destroyed %d icons, want 0", n)
	}
}

func TestRoundTripClearsEverything(t *testing.T) {
	g := newTestGame(t)
	if err := g.StartRound(); err != nil {
		t.Fatal(err)
	}
	if err := g.StartRound(); !errors.Is(err, ErrRoundActive) {
		t.Errorf("expected ErrRoundActive, got %v", err)
	}
	addAsteroid(g, physics.Vec{X: 300}, 1)

	if err := g.EndRound(); err != nil {
		t.Fatal(err)
	}
	if g.State() != StateMainMenu || g.Round() != nil {
		t.Error("expected main menu without a round")
	}
	for _, k := range []object.Kind{object.KindPlayer, object.KindAsteroid, object.KindProjectile, object.KindLifeIcon} {
		if g.Count(k) != 0 {
			t.Errorf("%v survived teardown", k)
		}
	}
	if err := g.EndRound(); !errors.Is(err, ErrNoRound) {
		t.Errorf("expected ErrNoRound, got %v", err)
	}
}

func TestMenuInput(t *testing.T) {
	g := startedGame(t)
	g.Round().Score = 12

	g.Update(Frame{Delta: tick, Menu: true})
	if g.State() != StateMainMenu || g.Round() != nil {
		t.Fatalf("menu should leave the round, state %v", g.State())
	}
	if g.FinalScore() != 0 {
		t.Error("quitting to the menu keeps no final score")
	}

	g.Update(Frame{Delta: tick})
	if g.State() != StateMainMenu {
		t.Error("menu waits for confirm")
	}
}

func TestPauseGatesSimulation(t *testing.T) {
	g := startedGame(t)
	a := addAsteroid(g, physics.Vec{X: 100}, 3)

	g.Update(Frame{Delta: tick, Pause: true})
	if !g.Paused() {
		t.Fatal("expected paused")
	}
	pos := a.Pos
	elapsed := g.Round().Spawner.SpawnElapsed()

	for i := 0; i < 10; i++ {
		g.Update(Frame{Delta: time.Second, Fires: 1, CursorInWindow: true, Cursor: physics.Vec{X: 500, Y: 500}})
	}
	if a.Pos != pos {
		t.Error("asteroid moved while paused")
	}
	if g.Round().Spawner.SpawnElapsed() != elapsed || g.Round().World.Count(object.KindAsteroid) != 1 {
		t.Error("spawning ran while paused")
	}
	if g.Round().World.Count(object.KindProjectile) != 0 {
		t.Error("shots fired while paused")
	}

	g.Update(Frame{Delta: tick, Pause: true})
	if g.Paused() {
		t.Fatal("expected resumed")
	}
	if a.Pos.X != 103 {
		t.Errorf("asteroid should move on the resuming tick, x=%v", a.Pos.X)
	}
}

func TestFireDrainsAll(t *testing.T) {
	g := startedGame(t)
	g.Update(Frame{Delta: tick, Fires: 3, CursorInWindow: true, Cursor: physics.Vec{X: 600, Y: 400}})

	projectiles := g.Round().World.Projectiles()
	if len(projectiles) != 3 {
		t.Fatalf("expected 3 projectiles, got %d", len(projectiles))
	}
	for _, p := range projectiles {
		if p.Pos != (physics.Vec{}) {
			t.Errorf("projectile should start at the ship, got %v", p.Pos)
		}
		if math.Abs(p.Velocity.X-10) > 1e-9 || math.Abs(p.Velocity.Y) > 1e-9 {
			t.Errorf("velocity: got %v, want (10,0)", p.Velocity)
		}
	}
	if g.bus.Fire.Len() != 0 {
		t.Error("fire queue should be drained")
	}
}

func TestFireDropped(t *testing.T) {
	tests := []struct {
		name       string
		invincible bool
		inWindow   bool
	}{
		{"cursor outside window", false, false},
		{"ship respawning", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := startedGame(t)
			g.Round().Player().Invincible = tt.invincible
			g.Update(Frame{Delta: tick, Fires: 2, CursorInWindow: tt.inWindow, Cursor: physics.Vec{X: 100, Y: 100}})

			if n := g.Round().World.Count(object.KindProjectile); n != 0 {
				t.Errorf("expected no projectiles, got %d", n)
			}
			if g.bus.Fire.Len() != 0 {
				t.Error("dropped fires must not linger")
			}
		})
	}
}

func TestFireAtShipDropped(t *testing.T) {
	g := startedGame(t)
	// (400,400) is the ship's window position on the 800x800 field.
	g.Update(Frame{Delta: tick, Fires: 1, CursorInWindow: true, Cursor: physics.Vec{X: 400, Y: 400}})

	r := g.Round()
	if n := r.World.Count(object.KindProjectile); n != 0 {
		t.Fatalf("a shot without direction should be dropped, got %d projectiles", n)
	}

	// An asteroid striking the ship must not score.
	addAsteroid(g, physics.Vec{}, 6.5)
	g.Update(Frame{Delta: tick})
	if r.Score != 0 {
		t.Errorf("ship collision scored %d", r.Score)
	}
	if r.Lives() != g.Settings().Lives-1 {
		t.Errorf("expected a life lost, lives=%d", r.Lives())
	}
}

func TestAimFollowsCursor(t *testing.T) {
	g := startedGame(t)
	g.Update(Frame{Delta: tick, CursorInWindow: true, Cursor: physics.Vec{X: 400, Y: 600}})

	// Straight above the ship: atan2(-200, 0) plus a quarter turn.
	if got := g.Round().Player().Angle; math.Abs(got) > 1e-9 {
		t.Errorf("angle: got %v, want 0", got)
	}
}

func TestNotificationsAreTickScoped(t *testing.T) {
	g := startedGame(t)
	if len(g.Notifications()) == 0 {
		t.Fatal("start should notify")
	}
	g.Update(Frame{Delta: tick})
	if len(g.Notifications()) != 0 {
		t.Errorf("idle tick should notify nothing, got %+v", g.Notifications())
	}
}

func TestNegativeDeltaClamped(t *testing.T) {
	g := startedGame(t)
	g.Update(Frame{Delta: tick})
	g.Update(Frame{Delta: -time.Hour})
	if g.Round().Spawner.SpawnElapsed() != tick {
		t.Errorf("negative delta should count as zero, elapsed %v", g.Round().Spawner.SpawnElapsed())
	}
}

// A long random session checks the round invariants: lives never go up,
// game over happens once per round and every asteroid or projectile leaves
// with exactly one cause.
func TestSoakInvariants(t *testing.T) {
	g := newTestGame(t)
	rng := rand.New(rand.NewPCG(7, 11))

	despawned := map[object.ID]object.Cause{}
	lives := -1
	rounds, gameOvers := 0, 0

	for i := 0; i < 20000; i++ {
		f := Frame{
			Delta:          16 * time.Millisecond,
			Confirm:        g.State() != StateInGame,
			CursorInWindow: true,
			Cursor:         physics.Vec{X: rng.Float64() * 800, Y: rng.Float64() * 800},
		}
		if rng.IntN(4) == 0 {
			f.Fires = 1 + rng.IntN(3)
		}
		before := g.State()
		if err := g.Update(f); err != nil {
			t.Fatal(err)
		}

		for _, n := range g.Notifications() {
			if n.Type != event.Despawned || (n.Kind != object.KindAsteroid && n.Kind != object.KindProjectile) {
				continue
			}
			if prev, seen := despawned[n.Entity]; seen {
				t.Fatalf("entity %d despawned twice (%v, %v)", n.Entity, prev, n.Cause)
			}
			if n.Cause != object.CauseOutOfBounds && n.Cause != object.CauseCollision {
				t.Fatalf("entity %d despawned by %v", n.Entity, n.Cause)
			}
			despawned[n.Entity] = n.Cause
		}

		switch {
		case before != StateInGame && g.State() == StateInGame:
			rounds++
			lives = g.Round().Lives()
			clear(despawned)
		case before == StateInGame && g.State() == StateGameOver:
			gameOvers++
			lives = -1
		case g.State() == StateInGame:
			if l := g.Round().Lives(); l > lives {
				t.Fatalf("lives went up from %d to %d", lives, l)
			} else {
				lives = l
			}
		}
	}

	if rounds == 0 {
		t.Fatal("no round was played")
	}
	if gameOvers > rounds || gameOvers < rounds-1 {
		t.Errorf("%d rounds but %d game overs", rounds, gameOvers)
	}
}
