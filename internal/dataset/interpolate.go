package dataset

import (
	"math"

	"go.uber.org/zap"
)

// Interpolate synthesizes a row at target from a bracketing pair. Every
// numeric field except block and day is blended linearly; NaN operands
// propagate NaN. The block field is set to target exactly, never blended, and
// day is recomputed from the synthesized block so it stays a whole day index.
// Labels are carried from before unchanged.
func Interpolate(before, after Row, target, blocksPerDay float64) Row {
	factor := 0.0
	if after.Block != before.Block {
		factor = (target - before.Block) / (after.Block - before.Block)
	}

	out := Row{
		Block:  target,
		Values: make(map[string]float64, len(before.Values)),
		Labels: before.Labels,
	}
	for name, v0 := range before.Values {
		if name == FieldDay {
			continue
		}
		if factor == 0 {
			out.Values[name] = v0
			continue
		}
		v1, ok := after.Values[name]
		if !ok {
			v1 = math.NaN()
		}
		out.Values[name] = v0 + factor*(v1-v0)
	}
	if blocksPerDay > 0 {
		out.Values[FieldDay] = math.Floor(target / blocksPerDay)
	}
	return out
}

// At returns the synthesized row at target, interpolating between the
// bracketing pair. ok is false only for the empty dataset. When no usable
// bracket exists the lookup degrades to the nearest row; the degradation is
// logged so callers (and tests) can observe it.
func (d *Dataset) At(target float64) (Row, bool) {
	if len(d.rows) == 0 {
		return Row{}, false
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return d.degrade(target, "target position not finite")
	}
	before, after, ok := d.Bracket(target)
	if !ok {
		return d.degrade(target, "no bracketing pair")
	}
	return Interpolate(d.rows[before], d.rows[after], target, d.bpd), true
}

func (d *Dataset) degrade(target float64, reason string) (Row, bool) {
	d.logger.Warn("interpolation degraded to nearest-row lookup",
		zap.Float64("target", target),
		zap.String("reason", reason))
	return d.Nearest(target)
}
