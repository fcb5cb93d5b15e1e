package loop

import (
	"time"

	"github.com/tomz197/stroids/internal/physics"
)

// State is the match phase.
type State int

const (
	StateMainMenu State = iota // Title screen, no round
	StateInGame                // Round running or paused
	StateGameOver              // Round ended, final score shown
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main-menu"
	case StateInGame:
		return "in-game"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Frame is what the input collaborator hands the game for one tick.
// Fires, Pause, Confirm and Menu are edge-triggered: they describe presses
// that happened since the previous frame.
type Frame struct {
	Delta          time.Duration // Wall-clock time since the previous tick
	Cursor         physics.Vec   // Window space, y up; valid when CursorInWindow
	CursorInWindow bool
	Fires          int  // Left-button presses
	Pause          bool // Pause toggle (Escape)
	Confirm        bool // Any click; starts or restarts a round
	Menu           bool // Return to the main menu
}
