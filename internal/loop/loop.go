package loop

import (
	"context"
	"time"

	"github.com/tomz197/stroids/internal/config"
)

// FrameSource supplies the input gathered since the previous poll.
// quit asks the driver to stop.
type FrameSource interface {
	Poll() (f Frame, quit bool)
}

// Presenter shows a snapshot, e.g. by drawing it to a terminal.
type Presenter interface {
	Present(s Snapshot) error
}

// Run drives g at tickRate ticks per second with the Input → Update → Draw
// cycle until the source quits or ctx is done. Delta is measured from the
// wall clock. Returns nil on quit and ctx.Err() on cancellation.
func Run(ctx context.Context, g *Game, src FrameSource, out Presenter, tickRate int) error {
	if tickRate <= 0 {
		tickRate = config.TickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	if err := out.Present(g.Snapshot()); err != nil {
		return err
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			// Input
			f, quit := src.Poll()
			if quit {
				return nil
			}
			f.Delta = now.Sub(last)
			last = now

			// Update
			if err := g.Update(f); err != nil {
				return err
			}

			// Draw
			if err := out.Present(g.Snapshot()); err != nil {
				return err
			}
		}
	}
}
