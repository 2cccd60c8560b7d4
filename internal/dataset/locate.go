package dataset

import (
	"math"
	"sort"
)

// bracketSearchLimit bounds the local walk around the approximate index
// before Bracket gives up and binary-searches the whole key range.
const bracketSearchLimit = 5

// Nearest returns the row whose block is closest to target. ok is false only
// for the empty dataset. Ties resolve to the lower-indexed row.
//
// The approximate index seeded by the interval estimate is accepted only when
// it lands within two intervals of the target; otherwise the lookup falls
// back to an exhaustive scan, which is the correctness guarantee.
func (d *Dataset) Nearest(target float64) (Row, bool) {
	n := len(d.rows)
	if n == 0 {
		return Row{}, false
	}

	approx := clampIndex(int(math.Round(target/d.interval)), n)
	if math.Abs(d.rows[approx].Block-target) <= 2*d.interval {
		lo := clampIndex(approx-2, n)
		hi := clampIndex(approx+2, n)
		best := lo
		for i := lo + 1; i <= hi; i++ {
			if math.Abs(d.rows[i].Block-target) < math.Abs(d.rows[best].Block-target) {
				best = i
			}
		}
		return d.rows[best], true
	}

	best := 0
	for i := 1; i < n; i++ {
		if math.Abs(d.rows[i].Block-target) < math.Abs(d.rows[best].Block-target) {
			best = i
		}
	}
	return d.rows[best], true
}

// Bracket returns the ordinals of the adjacent rows bounding target, with
// rows[before].Block <= target <= rows[after].Block whenever target lies
// inside the key range. Targets outside the range clamp to the edge row on
// both sides; a single-row dataset brackets to that row. ok is false only for
// the empty dataset, and after < before never holds.
func (d *Dataset) Bracket(target float64) (before, after int, ok bool) {
	n := len(d.rows)
	if n == 0 {
		return 0, 0, false
	}
	// NaN is not orderable; clamp it to the first row like any other
	// unusable target rather than letting the searches run off the end.
	if n == 1 || math.IsNaN(target) || target <= d.rows[0].Block {
		return 0, 0, true
	}
	if target >= d.rows[n-1].Block {
		return n - 1, n - 1, true
	}

	approx := clampIndex(int(target/d.interval), n)
	lo := clampIndex(approx-bracketSearchLimit, n)
	hi := clampIndex(approx+bracketSearchLimit, n)
	for i := lo; i <= hi && i < n-1; i++ {
		if d.rows[i].Block <= target && target <= d.rows[i+1].Block {
			return i, i + 1, true
		}
	}

	// Keys are sorted, so the binary search is exact where the local walk
	// around the estimate was not.
	idx := sort.Search(n, func(i int) bool { return d.rows[i].Block >= target })
	return idx - 1, idx, true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
