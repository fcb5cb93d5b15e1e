package draw

import (
	"math"

	"github.com/tomz197/stroids/internal/physics"
)

// Viewport fits the play field into a block of terminal cells, keeping the
// aspect ratio and centering the result. A pixel is one column wide and half
// a row tall, so pixels are close to square.
type Viewport struct {
	Field     physics.Field
	Scale     float64 // Pixels per field unit
	Cols      int     // Canvas width in cells
	Rows      int     // Canvas height in cells
	OffsetCol int     // First canvas column on screen
	OffsetRow int     // First canvas row on screen
}

// NewViewport fits field into cols x rows cells whose top-left is at
// (originCol, originRow).
func NewViewport(field physics.Field, cols, rows, originCol, originRow int) Viewport {
	v := Viewport{Field: field}
	if !field.Valid() || cols <= 0 || rows <= 0 {
		return v
	}
	v.Scale = math.Min(float64(cols)/field.Width, float64(rows*2)/field.Height)
	v.Cols = min(cols, int(math.Ceil(field.Width*v.Scale)))
	v.Rows = min(rows, int(math.Ceil(field.Height*v.Scale/2)))
	v.OffsetCol = originCol + (cols-v.Cols)/2
	v.OffsetRow = originRow + (rows-v.Rows)/2
	return v
}

// Pixel maps a simulation-space point to canvas pixels (y down).
func (v Viewport) Pixel(sim physics.Vec) physics.Vec {
	return physics.Vec{
		X: (sim.X + v.Field.Width/2) * v.Scale,
		Y: (v.Field.Height/2 - sim.Y) * v.Scale,
	}
}

// Cell returns the screen cell holding a simulation-space point.
func (v Viewport) Cell(sim physics.Vec) (col, row int) {
	p := v.Pixel(sim)
	return v.OffsetCol + int(math.Floor(p.X)), v.OffsetRow + int(math.Floor(p.Y/2))
}

// WindowPoint maps the center of a screen cell to window space (origin at
// the bottom-left corner of the field, y up). ok is false outside the field.
func (v Viewport) WindowPoint(col, row int) (physics.Vec, bool) {
	if v.Scale == 0 {
		return physics.Vec{}, false
	}
	c, r := col-v.OffsetCol, row-v.OffsetRow
	if c < 0 || c >= v.Cols || r < 0 || r >= v.Rows {
		return physics.Vec{}, false
	}
	x := (float64(c) + 0.5) / v.Scale
	yDown := (float64(2*r) + 1) / v.Scale
	p := physics.Vec{X: x, Y: v.Field.Height - yDown}
	return p, v.Field.Contains(p)
}
