package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gaugeLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	gaugeMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))
	gaugeHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// Gauge renders the warehouse capacity bar. The fill color steps at 33 and
// 66 percent and a tick marks the capacity limit.
func Gauge(value, limit float64, width int) string {
	if width < 10 {
		width = 10
	}
	if math.IsNaN(value) {
		return fmt.Sprintf("warehouse [%s]  no data", strings.Repeat("░", width))
	}

	pct := math.Min(100, math.Max(0, value))
	filled := int(math.Round(pct / 100 * float64(width)))
	bar := []rune(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
	tick := int(limit / 100 * float64(width))
	if tick >= 0 && tick < width {
		bar[tick] = '│'
	}
	return fmt.Sprintf("warehouse [%s] %5.1f%%", gaugeStyle(pct).Render(string(bar)), pct)
}

func gaugeStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 33:
		return gaugeLow
	case pct < 66:
		return gaugeMid
	default:
		return gaugeHigh
	}
}
