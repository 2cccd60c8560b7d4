package render

import (
	"fmt"
	"math"
	"strings"
)

// CanvasSVG renders the canvas as an SVG poster, one circle per lit braille
// dot on a dark background.
func CanvasSVG(c *Canvas, scale float64) string {
	if c == nil || scale <= 0 {
		return ""
	}
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff88">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col]) - brailleBase
			if pattern <= 0 {
				continue
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesSVG renders one metric over the block axis as an SVG path. NaN on
// either axis splits the path so gaps stay gaps. Returns the empty string
// when fewer than two drawable points exist.
func SeriesSVG(blocks, values []float64, width, height int, stroke string) string {
	n := len(blocks)
	if len(values) < n {
		n = len(values)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	drawable := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(blocks[i]) || math.IsNaN(values[i]) {
			continue
		}
		drawable++
		minX = math.Min(minX, blocks[i])
		maxX = math.Max(maxX, blocks[i])
		minY = math.Min(minY, values[i])
		maxY = math.Max(maxY, values[i])
	}
	if drawable < 2 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, stroke))

	first := true
	pen := "M"
	for i := 0; i < n; i++ {
		if math.IsNaN(blocks[i]) || math.IsNaN(values[i]) {
			pen = "M"
			continue
		}
		x := (blocks[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if !first {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", pen, x, y))
		first = false
		pen = "L"
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
