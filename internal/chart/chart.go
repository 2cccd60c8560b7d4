// Package chart builds the terminal chart panels of the dashboard from the
// core's window results. Panels are plain multi-line strings; layout and
// framing belong to the player.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"alphaviz/internal/dataset"
)

// Line renders one metric's sliding window with the current value in the
// caption. An empty window renders a placeholder instead of an error.
func Line(win dataset.WindowResult, field, title string, width, height int) string {
	series := dropNaN(win.Series(field))
	if len(series) == 0 {
		return noData(title, width, height)
	}
	caption := title
	if win.Marker.Valid {
		caption = fmt.Sprintf("%s  now %s", title, FormatValue(win.Marker.Value))
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}

// Pair renders two metrics on one panel with a shared scale. Rows where
// either side is unavailable are skipped so both series stay aligned.
func Pair(win dataset.WindowResult, fieldA, fieldB, title string, width, height int) string {
	a := win.Series(fieldA)
	b := win.Series(fieldB)
	pa := make([]float64, 0, len(a))
	pb := make([]float64, 0, len(b))
	for i := range a {
		if !math.IsNaN(a[i]) && !math.IsNaN(b[i]) {
			pa = append(pa, a[i])
			pb = append(pb, b[i])
		}
	}
	if len(pa) == 0 {
		return noData(title, width, height)
	}
	return asciigraph.PlotMany([][]float64{pa, pb},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption(title))
}

// Flow renders the AlphaPoints in/out pair on one panel.
func Flow(win dataset.WindowResult, width, height int) string {
	return Pair(win, dataset.FieldAlphaIn, dataset.FieldAlphaOut, "AlphaPoints in/out", width, height)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses a series into a single line of block runes.
func Sparkline(values []float64, width int) string {
	vs := dropNaN(values)
	if len(vs) == 0 || width <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	if len(vs) > width {
		stride := (len(vs) + width - 1) / width
		thinned := make([]float64, 0, width)
		for i := 0; i < len(vs); i += stride {
			thinned = append(thinned, vs[i])
		}
		vs = thinned
	}

	lo, hi := vs[0], vs[0]
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var sb strings.Builder
	for _, v := range vs {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		} else {
			idx = len(sparkRunes) / 2
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// FormatValue prints a metric with precision scaled to its magnitude.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.0f", v)
	case math.Abs(v) >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func noData(title string, width, height int) string {
	pad := strings.Repeat(" ", max(0, (width-9)/2))
	lines := make([]string, 0, height+1)
	for i := 0; i < height/2; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, pad+"(no data)")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = append(lines, title)
	return strings.Join(lines, "\n")
}
