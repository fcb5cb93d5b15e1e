// Package world is the round-scoped entity registry. A World is created
// when a round starts and dropped wholesale when it ends.
package world

import (
	"github.com/tomz197/stroids/internal/object"
)

// Removal records an entity that left the registry and why.
type Removal struct {
	ID    object.ID
	Kind  object.Kind
	Cause object.Cause
}

// World owns every live entity of a round, keyed by opaque ID.
// Per-kind slices keep creation order so iteration is deterministic.
type World struct {
	nextID object.ID
	byID   map[object.ID]object.Object

	player      *object.Player
	asteroids   []*object.Asteroid
	projectiles []*object.Projectile
	lifeIcons   []*object.LifeIcon

	toSpawn []object.Object // Objects to add after the current tick
	pending int             // Marked but not yet compacted
}

// New creates an empty world.
func New() *World {
	return &World{
		nextID: 1,
		byID:   make(map[object.ID]object.Object),
	}
}

// NewID issues the next entity identifier.
func (w *World) NewID() object.ID {
	id := w.nextID
	w.nextID++
	return id
}

// Add inserts an object immediately. A second Player replaces nothing and
// is rejected with false; at most one Player exists per round.
func (w *World) Add(obj object.Object) bool {
	if _, exists := w.byID[obj.EntityID()]; exists {
		return false
	}
	switch o := obj.(type) {
	case *object.Player:
		if w.player != nil {
			return false
		}
		w.player = o
	case *object.Asteroid:
		w.asteroids = append(w.asteroids, o)
	case *object.Projectile:
		w.projectiles = append(w.projectiles, o)
	case *object.LifeIcon:
		w.lifeIcons = append(w.lifeIcons, o)
	default:
		return false
	}
	w.byID[obj.EntityID()] = obj
	return true
}

// Spawn queues an object to be added by FlushSpawned.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects and returns them in spawn order.
func (w *World) FlushSpawned() []object.Object {
	if len(w.toSpawn) == 0 {
		return nil
	}
	added := make([]object.Object, 0, len(w.toSpawn))
	for _, obj := range w.toSpawn {
		if w.Add(obj) {
			added = append(added, obj)
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
	return added
}

// Destroy marks the entity for removal at the next Compact. Unknown or
// already destroyed entities are a no-op returning false.
func (w *World) Destroy(id object.ID, cause object.Cause) bool {
	obj, ok := w.byID[id]
	if !ok {
		return false
	}
	if !obj.MarkDestroyed(cause) {
		return false
	}
	w.pending++
	return true
}

// Compact removes every marked entity and returns what was removed, in
// kind order then creation order.
func (w *World) Compact() []Removal {
	if w.pending == 0 {
		return nil
	}
	removed := make([]Removal, 0, w.pending)
	record := func(obj object.Object) {
		removed = append(removed, Removal{ID: obj.EntityID(), Kind: obj.Kind(), Cause: obj.Cause()})
		delete(w.byID, obj.EntityID())
	}

	if w.player != nil && w.player.IsDestroyed() {
		record(w.player)
		w.player = nil
	}
	w.asteroids = compact(w.asteroids, record)
	w.projectiles = compact(w.projectiles, record)
	w.lifeIcons = compact(w.lifeIcons, record)

	w.pending = 0
	return removed
}

// compact filters destroyed entries in place, reusing the backing array.
func compact[T object.Object](items []T, record func(object.Object)) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsDestroyed() {
			record(it)
			continue
		}
		kept = append(kept, it)
	}
	clear(items[len(kept):])
	return kept
}

// Lookup returns the entity with the given ID, including ones marked but
// not yet compacted.
func (w *World) Lookup(id object.ID) (object.Object, bool) {
	obj, ok := w.byID[id]
	return obj, ok
}

// Player returns the round's ship, or nil when none exists.
func (w *World) Player() *object.Player { return w.player }

// Asteroids returns the asteroids in creation order. The slice is owned by
// the world and is only valid until the next Add or Compact.
func (w *World) Asteroids() []*object.Asteroid { return w.asteroids }

// Projectiles returns the projectiles in creation order; see Asteroids.
func (w *World) Projectiles() []*object.Projectile { return w.projectiles }

// LifeIcons returns the life icons in creation order; see Asteroids.
func (w *World) LifeIcons() []*object.LifeIcon { return w.lifeIcons }

// Count returns how many entities of a kind are held, marked or not.
func (w *World) Count(kind object.Kind) int {
	switch kind {
	case object.KindPlayer:
		if w.player != nil {
			return 1
		}
		return 0
	case object.KindAsteroid:
		return len(w.asteroids)
	case object.KindProjectile:
		return len(w.projectiles)
	case object.KindLifeIcon:
		return len(w.lifeIcons)
	default:
		return 0
	}
}

// Len returns the total number of entities held.
func (w *World) Len() int { return len(w.byID) }
