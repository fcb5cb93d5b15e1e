// Package physics provides vector math, window normalization and
// axis-aligned overlap tests.
package physics

import "math"

// Vec is a 2D point or direction.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v*k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector stays zero
// rather than turning into NaNs.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Size is the full width and height of an axis-aligned box.
type Size struct {
	W, H float64
}

// Half returns the half-extents of the box.
func (s Size) Half() Vec { return Vec{s.W / 2, s.H / 2} }

// Overlap reports whether two boxes centered at a and b intersect.
// Touching edges do not count as overlap.
func Overlap(a Vec, as Size, b Vec, bs Size) bool {
	ah, bh := as.Half(), bs.Half()
	return a.X-ah.X < b.X+bh.X &&
		a.X+ah.X > b.X-bh.X &&
		a.Y-ah.Y < b.Y+bh.Y &&
		a.Y+ah.Y > b.Y-bh.Y
}

// Angle returns the angle in radians of the vector pointing from "from" to "to".
func Angle(from, to Vec) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X)
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// Field is the visible play area in window units.
type Field struct {
	Width  float64
	Height float64
}

// Valid reports whether the field has a positive area.
func (f Field) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// Normalize converts between window space and centered simulation space.
// The mapping is its own inverse: p = Normalize(Normalize(p)).
func (f Field) Normalize(p Vec) Vec {
	return Vec{f.Width/2 - p.X, f.Height/2 - p.Y}
}

// Contains reports whether a window-space point lies inside the field.
func (f Field) Contains(p Vec) bool {
	return p.X >= 0 && p.X <= f.Width && p.Y >= 0 && p.Y <= f.Height
}

// OutOfBounds reports whether a simulation-space position lies more than
// margin units outside any edge of the field.
func (f Field) OutOfBounds(p Vec, margin float64) bool {
	w := f.Normalize(p)
	return w.X > f.Width+margin ||
		w.Y > f.Height+margin ||
		w.X < -margin ||
		w.Y < -margin
}
