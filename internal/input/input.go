// Package input turns terminal events into per-tick game frames.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/stroids/internal/loop"
	"github.com/tomz197/stroids/internal/physics"
)

// EventSource blocks until the next terminal event. A nil event means the
// source is finished. tcell.Screen satisfies it.
type EventSource interface {
	PollEvent() tcell.Event
}

// Locator maps a terminal cell to a window-space point in the play field.
// ok is false when the cell lies outside the field.
type Locator interface {
	WindowPoint(col, row int) (p physics.Vec, ok bool)
}

// Stream delivers terminal events via a channel and keeps the state needed
// for edge detection between frames.
type Stream struct {
	ch      chan tcell.Event
	locator Locator

	buttons  tcell.ButtonMask // Mouse buttons held at the last event
	cursor   physics.Vec
	inWindow bool
	closed   bool
}

func newStream(locator Locator) *Stream {
	return &Stream{
		ch:      make(chan tcell.Event, 128),
		locator: locator,
	}
}

// StartStream spawns a goroutine that polls src and forwards its events.
func StartStream(src EventSource, locator Locator) *Stream {
	s := newStream(locator)
	go func() {
		for {
			ev := src.PollEvent()
			if ev == nil {
				close(s.ch)
				return
			}
			s.ch <- ev
		}
	}()
	return s
}

// Poll drains all pending events without blocking and folds them into one
// frame. Delta is left for the driver to fill. quit is true once the user
// asked to leave or the source closed.
func (s *Stream) Poll() (loop.Frame, bool) {
	var f loop.Frame
	quit := s.closed

	for !quit {
		select {
		case ev, ok := <-s.ch:
			if !ok {
				s.closed = true
				quit = true
				break
			}
			quit = s.apply(ev, &f)
		default:
			f.Cursor, f.CursorInWindow = s.cursor, s.inWindow
			return f, false
		}
	}
	f.Cursor, f.CursorInWindow = s.cursor, s.inWindow
	return f, true
}

// apply folds one event into f and reports whether it asks to quit.
func (s *Stream) apply(ev tcell.Event, f *loop.Frame) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyEscape:
			f.Pause = !f.Pause
		case tcell.KeyEnter:
			f.Confirm = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'm', 'M':
				f.Menu = true
			case 'p', 'P':
				f.Pause = !f.Pause
			case ' ':
				f.Fires++
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		s.cursor, s.inWindow = s.locator.WindowPoint(col, row)

		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0 {
			f.Fires++
			f.Confirm = true
		}
		s.buttons = buttons
	}
	return false
}
