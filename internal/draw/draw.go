// Package draw renders game snapshots to a terminal through tcell.
package draw

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/stroids/internal/loop"
	"github.com/tomz197/stroids/internal/physics"
)

// hudRows is the number of terminal rows reserved above the play field.
const hudRows = 1

// asteroidJag gives asteroid outlines an irregular shape; variants start at
// different offsets.
var asteroidJag = [...]float64{1, 0.8, 0.95, 0.75, 1, 0.85, 0.9, 0.8}

// Renderer draws snapshots to a tcell screen. It implements loop.Presenter
// and input.Locator; both must be called from the same goroutine.
type Renderer struct {
	screen tcell.Screen
	canvas *Canvas
	view   Viewport
	styles map[Layer]tcell.Style
	text   tcell.Style
	dim    tcell.Style
	points []physics.Vec // Reusable polygon buffer
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		canvas: NewCanvas(0, 0),
		styles: map[Layer]tcell.Style{
			LayerAsteroid:   tcell.StyleDefault.Foreground(tcell.ColorSilver),
			LayerProjectile: tcell.StyleDefault.Foreground(tcell.ColorRed),
			LayerShipDimmed: tcell.StyleDefault.Foreground(tcell.ColorGreen).Dim(true),
			LayerShip:       tcell.StyleDefault.Foreground(tcell.ColorLime),
		},
		text: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		dim:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// Present implements loop.Presenter.
func (r *Renderer) Present(s loop.Snapshot) error {
	cols, rows := r.screen.Size()
	r.view = NewViewport(s.Field, cols, rows-hudRows, 0, hudRows)
	r.canvas.Resize(r.view.Cols, r.view.Rows)
	r.canvas.Clear()
	r.screen.Clear()

	if s.State == loop.StateInGame {
		r.drawWorld(s)
		r.canvas.Render(r.screen, r.view.OffsetCol, r.view.OffsetRow, r.styles)
	}
	r.drawUI(s, cols)

	r.screen.Show()
	return nil
}

// WindowPoint implements input.Locator using the last presented layout.
func (r *Renderer) WindowPoint(col, row int) (physics.Vec, bool) {
	return r.view.WindowPoint(col, row)
}

func (r *Renderer) drawWorld(s loop.Snapshot) {
	for _, a := range s.Asteroids {
		r.drawAsteroid(a)
	}
	for _, p := range s.Projectiles {
		px := r.view.Pixel(p)
		r.canvas.Set(int(math.Round(px.X)), int(math.Round(px.Y)), LayerProjectile)
	}
	if s.Player != nil {
		r.drawShip(*s.Player)
	}
}

func (r *Renderer) drawAsteroid(a loop.AsteroidView) {
	pts := r.borrowPoints(len(asteroidJag))
	radius := math.Max(a.Size.W, a.Size.H) / 2
	for k := range pts {
		angle := a.Rotation + float64(k)*math.Pi/4
		rk := radius * asteroidJag[(a.Variant+k)%len(asteroidJag)]
		pts[k] = r.view.Pixel(a.Pos.Add(physics.Vec{X: rk * math.Cos(angle), Y: rk * math.Sin(angle)}))
	}
	r.canvas.Polygon(pts, LayerAsteroid, false)
}

// drawShip draws a triangle whose nose points along the facing angle. At
// angle zero the nose points up.
func (r *Renderer) drawShip(p loop.ShipView) {
	const halfLen, halfWidth = 24.0, 16.0
	fwd := physics.Vec{X: -math.Sin(p.Angle), Y: math.Cos(p.Angle)}
	right := physics.Vec{X: fwd.Y, Y: -fwd.X}

	pts := r.borrowPoints(3)
	pts[0] = r.view.Pixel(p.Pos.Add(fwd.Scale(halfLen)))
	pts[1] = r.view.Pixel(p.Pos.Sub(fwd.Scale(halfLen)).Add(right.Scale(halfWidth)))
	pts[2] = r.view.Pixel(p.Pos.Sub(fwd.Scale(halfLen)).Sub(right.Scale(halfWidth)))

	layer := LayerShip
	if p.Alpha < 1 {
		layer = LayerShipDimmed
	}
	r.canvas.Polygon(pts, layer, true)
}

func (r *Renderer) borrowPoints(n int) []physics.Vec {
	if cap(r.points) < n {
		r.points = make([]physics.Vec, n)
	}
	return r.points[:n]
}
