package dataset

import "math"

// Marker is the current-position value for the charted field, resolved by
// nearest-row lookup. Valid is false when the dataset is empty or the field
// has no value near the target.
type Marker struct {
	Block float64
	Value float64
	Valid bool
}

// WindowResult is one chart's worth of data around a target position:
// an ordered, possibly downsampled run of rows plus the exact window bounds
// and the current-position marker. Recomputed every call, never cached.
type WindowResult struct {
	Rows   []Row
	Lower  float64
	Upper  float64
	Marker Marker
}

// Empty reports whether the window holds no rows.
func (w WindowResult) Empty() bool { return len(w.Rows) == 0 }

// Series extracts the charted field across the window, NaN where a row has
// no value for it.
func (w WindowResult) Series(field string) []float64 {
	out := make([]float64, len(w.Rows))
	for i, r := range w.Rows {
		v, ok := r.Value(field)
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// Window extracts the rows within width around target for charting one field,
// downsampled to at most maxPoints. The window spans
// [max(0, target-width/2), min(maxBlock, target+width/2)]. An empty dataset
// or an empty range yields an empty window, not an error.
func (d *Dataset) Window(field string, target, width float64, maxPoints int) WindowResult {
	res := WindowResult{
		Lower: math.Max(0, target-width/2),
		Upper: math.Min(d.maxBlock, target+width/2),
	}
	n := len(d.rows)
	if n == 0 {
		return res
	}

	if near, ok := d.Nearest(target); ok {
		if v, vok := near.Value(field); vok && !math.IsNaN(v) {
			res.Marker = Marker{Block: near.Block, Value: v, Valid: true}
		}
	}
	if math.IsNaN(res.Lower) || math.IsNaN(res.Upper) || res.Lower > res.Upper {
		return res
	}

	// Approximate index slice from the interval estimate, then walk the
	// boundaries until they actually cover [lower, upper]; the estimate only
	// decides where the walk starts, not what the window contains.
	start := int(res.Lower/d.interval) - 1
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := int(res.Upper/d.interval) + 2
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	for start > 0 && d.rows[start-1].Block >= res.Lower {
		start--
	}
	for end < n && d.rows[end].Block <= res.Upper {
		end++
	}

	filtered := make([]Row, 0, end-start)
	for _, r := range d.rows[start:end] {
		if r.Block >= res.Lower && r.Block <= res.Upper {
			filtered = append(filtered, r)
		}
	}
	res.Rows = downsample(filtered, maxPoints)
	return res
}

// downsample thins rows to at most maxPoints by fixed-stride selection,
// preserving order and always keeping the first row. The stride rounds up so
// the cap is a hard guarantee; under-limit input passes through unchanged.
func downsample(rows []Row, maxPoints int) []Row {
	if maxPoints <= 0 || len(rows) <= maxPoints {
		return rows
	}
	k := (len(rows) + maxPoints - 1) / maxPoints
	out := make([]Row, 0, maxPoints)
	for i := 0; i < len(rows); i += k {
		out = append(out, rows[i])
	}
	return out
}
