package draw

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/stroids/internal/loop"
)

// drawUI draws the text overlay for the current match state.
func (r *Renderer) drawUI(s loop.Snapshot, termWidth int) {
	centerX := r.view.OffsetCol + r.view.Cols/2
	centerY := r.view.OffsetRow + r.view.Rows/2

	switch s.State {
	case loop.StateMainMenu:
		r.drawStartScreen(centerX, centerY)
	case loop.StateInGame:
		r.drawPlayingHUD(s, termWidth)
		if s.Paused {
			r.centered(centerX, centerY, "P A U S E D", r.text)
			r.centered(centerX, centerY+2, "Esc to resume", r.dim)
		}
	case loop.StateGameOver:
		r.drawDeadScreen(s, centerX, centerY)
	}
}

// drawStartScreen draws the title screen.
func (r *Renderer) drawStartScreen(centerX, centerY int) {
	r.centered(centerX, centerY-2, "S T R O I D S", r.text)
	r.centered(centerX, centerY+1, "Click or press Enter to play", r.text)
	r.centered(centerX, centerY+4, "Mouse to aim, click or Space to shoot, Esc to pause, M for menu, Q to quit", r.dim)
}

// drawPlayingHUD draws the score and one marker per life slot.
func (r *Renderer) drawPlayingHUD(s loop.Snapshot, termWidth int) {
	r.writeText(1, 0, fmt.Sprintf("Score: %d", s.Score), r.text)

	col := termWidth - 2*len(s.LifeSlots) - 1
	for _, slot := range s.LifeSlots {
		if slot.Lost {
			r.screen.SetContent(col, 0, '×', nil, r.dim)
		} else {
			r.screen.SetContent(col, 0, '♥', nil, r.styles[LayerProjectile])
		}
		col += 2
	}
}

// drawDeadScreen draws the game over screen.
func (r *Renderer) drawDeadScreen(s loop.Snapshot, centerX, centerY int) {
	r.centered(centerX, centerY-2, "GAME OVER", r.text)
	r.centered(centerX, centerY, fmt.Sprintf("Score: %d", s.FinalScore), r.text)
	r.centered(centerX, centerY+2, "Click to play again, M for menu", r.dim)
}

func (r *Renderer) centered(centerX, row int, text string, style tcell.Style) {
	r.writeText(centerX-len([]rune(text))/2, row, text, style)
}

// writeText writes a single line of text starting at (col, row).
func (r *Renderer) writeText(col, row int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
}
