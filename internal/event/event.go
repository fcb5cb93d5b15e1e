// Package event carries the simulation's messages between systems and out
// to the presentation side.
package event

import (
	"github.com/tomz197/stroids/internal/object"
)

// Fire is a queued request to shoot one projectile.
type Fire struct{}

// PlayerHit is raised once per asteroid that struck the player.
type PlayerHit struct {
	Asteroid object.ID
}

// GameOver is raised when the last life is lost.
type GameOver struct {
	Score int
}

// NotificationType identifies what an outbound Notification reports.
type NotificationType int

const (
	Spawned      NotificationType = iota // Entity added
	Despawned                            // Entity removed; Cause says why
	ScoreChanged                         // Value is the new score
	LivesChanged                         // Value is the new life count
	LifeLost                             // Value is the lost slot counter
	StateChanged                         // Value is the new match state
	PauseToggled                         // Value is 1 when paused, 0 when resumed
)

func (t NotificationType) String() string {
	switch t {
	case Spawned:
		return "spawned"
	case Despawned:
		return "despawned"
	case ScoreChanged:
		return "score-changed"
	case LivesChanged:
		return "lives-changed"
	case LifeLost:
		return "life-lost"
	case StateChanged:
		return "state-changed"
	case PauseToggled:
		return "pause-toggled"
	default:
		return "unknown"
	}
}

// Notification tells collaborators about a change made during a tick.
type Notification struct {
	Type   NotificationType
	Entity object.ID
	Kind   object.Kind
	Cause  object.Cause
	Value  int
}

// Bus holds the per-tick queues. Each queue has exactly one consumer:
// Fire is drained by shooting, PlayerHit by survivability, GameOver by the
// match state machine and Notes by the presentation side.
type Bus struct {
	Fire      Queue[Fire]
	PlayerHit Queue[PlayerHit]
	GameOver  Queue[GameOver]
	Notes     Queue[Notification]
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Notify appends an outbound notification.
func (b *Bus) Notify(n Notification) {
	b.Notes.Push(n)
}

// ResetRound drops in-flight simulation messages when a round ends.
// Outbound notifications are kept for the presentation side.
func (b *Bus) ResetRound() {
	b.Fire.Reset()
	b.PlayerHit.Reset()
	b.GameOver.Reset()
}
