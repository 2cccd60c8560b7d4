// Package render rasterizes dashboard frames for offline export. Metric
// series are drawn on a braille canvas (2x4 dots per character cell), then
// captured to 1-bit paletted images for animated GIF output or emitted as
// SVG posters.
package render

import (
	"math"
	"strings"
)

// Braille patterns pack a 2x4 dot grid into one rune:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at Unicode 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a Width x Height grid of braille cells. Drawing happens in
// sub-pixel coordinates spanning (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	return c
}

// Set lights the dot at sub-pixel (x, y). Out-of-range coordinates are
// ignored so callers can draw without clipping first.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears the dot at sub-pixel (x, y).
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleBase {
		c.Grid[row][col] = brailleBase
	}
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// DrawLine draws a line between two sub-pixel points with Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// PlotSeries draws values as a connected polyline scaled to the full canvas.
// NaN values break the line so gaps in the log stay visible instead of being
// bridged.
func (c *Canvas) PlotSeries(values []float64) {
	pw, ph := c.Width*2, c.Height*4
	if pw < 1 || ph < 1 || len(values) == 0 {
		return
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return
	}

	span := hi - lo
	denom := len(values) - 1
	if denom < 1 {
		denom = 1
	}

	px, py := 0, 0
	pen := false
	for i, v := range values {
		if math.IsNaN(v) {
			pen = false
			continue
		}
		x := i * (pw - 1) / denom
		y := (ph - 1) / 2
		if span > 0 {
			y = ph - 1 - int((v-lo)/span*float64(ph-1))
		}
		if pen {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, pen = x, y, true
	}
}

// Border frames the drawable area.
func (c *Canvas) Border() {
	pw, ph := c.Width*2-1, c.Height*4-1
	if pw < 1 || ph < 1 {
		return
	}
	c.DrawLine(0, 0, pw, 0)
	c.DrawLine(pw, 0, pw, ph)
	c.DrawLine(pw, ph, 0, ph)
	c.DrawLine(0, ph, 0, 0)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
