package draw

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/stroids/internal/physics"
)

// Layer tags a pixel with what was drawn there. Higher layers win when two
// pixels share a terminal cell.
type Layer uint8

const (
	LayerEmpty Layer = iota
	LayerAsteroid
	LayerProjectile
	LayerShipDimmed
	LayerShip
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Coordinates are in pixels: one column wide, half a row tall.
type Canvas struct {
	width  int     // Terminal columns
	height int     // Terminal rows
	subH   int     // height * 2
	pixels []Layer // Flat slice: [y * width + x]

	intersectionBuf []float64 // Reusable buffer for scanline intersections
}

// NewCanvas creates a canvas covering cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the buffer when the cell dimensions change.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.width && rows == c.height && c.pixels != nil {
		return
	}
	c.width = cols
	c.height = rows
	c.subH = rows * 2
	c.pixels = make([]Layer, c.subH*cols)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.subH }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// At returns the layer of a pixel, LayerEmpty when out of range.
func (c *Canvas) At(x, y int) Layer {
	if x < 0 || x >= c.width || y < 0 || y >= c.subH {
		return LayerEmpty
	}
	return c.pixels[y*c.width+x]
}

// Set paints a pixel. Pixels off the canvas are ignored; a lower layer
// never covers a higher one.
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || x >= c.width || y < 0 || y >= c.subH {
		return
	}
	if i := y*c.width + x; l > c.pixels[i] {
		c.pixels[i] = l
	}
}

// Line draws a line between two pixel-space points using Bresenham's
// algorithm.
func (c *Canvas) Line(p1, p2 physics.Vec, l Layer) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.Set(x1, y1, l)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed outline through pixel-space points. If filled is
// true, the interior is filled using a scanline algorithm.
func (c *Canvas) Polygon(points []physics.Vec, l Layer, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, l)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.Line(points[i], points[(i+1)%n], l)
	}
}

func (c *Canvas) fillPolygon(points []physics.Vec, l Layer) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subH-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5 // Sample at pixel center

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.Set(x, y, l)
			}
		}
	}
}

// Render writes the canvas to the screen with its top-left cell at
// (offCol, offRow). Each cell takes the style of its higher layer.
func (c *Canvas) Render(s tcell.Screen, offCol, offRow int, styles map[Layer]tcell.Style) {
	for row := 0; row < c.height; row++ {
		topOffset := row * 2 * c.width
		bottomOffset := topOffset + c.width

		for col := 0; col < c.width; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top != LayerEmpty && bottom != LayerEmpty:
				ch = BlockFull
			case top != LayerEmpty:
				ch = BlockUpperHalf
			case bottom != LayerEmpty:
				ch = BlockLowerHalf
			default:
				continue // Skip empty cells
			}
			s.SetContent(col+offCol, row+offRow, ch, nil, styles[max(top, bottom)])
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
