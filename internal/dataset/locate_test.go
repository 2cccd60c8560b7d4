package dataset

import (
	"math"
	"testing"
)

// nearestExhaustive is the reference lookup the fast path must agree with.
func nearestExhaustive(ds *Dataset, target float64) Row {
	best := 0
	for i := 1; i < ds.Len(); i++ {
		if math.Abs(ds.Row(i).Block-target) < math.Abs(ds.Row(best).Block-target) {
			best = i
		}
	}
	return ds.Row(best)
}

func TestNearestScenario(t *testing.T) {
	ds := buildQuiet(tableOf([]float64{0, 1000, 2000, 3000}, []float64{1, 2, 3, 4}))

	row, ok := ds.Nearest(2600)
	if !ok {
		t.Fatal("expected a row")
	}
	if row.Block != 3000 {
		t.Errorf("Nearest(2600) block = %v, want 3000", row.Block)
	}
}

func TestNearestTieTakesLowerIndex(t *testing.T) {
	ds := buildQuiet(tableOf([]float64{0, 1000, 2000, 3000}, []float64{1, 2, 3, 4}))

	row, _ := ds.Nearest(1500)
	if row.Block != 1000 {
		t.Errorf("Nearest(1500) block = %v, want 1000 (lower index wins the tie)", row.Block)
	}
}

func TestNearestAgreesWithExhaustiveScan(t *testing.T) {
	regular := []float64{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000}
	offset := []float64{500, 1500, 2500, 3500, 4500}
	irregular := []float64{0, 10, 20, 30, 40, 50000, 100000, 100010, 100020}

	tests := []struct {
		name   string
		blocks []float64
	}{
		{"regular", regular},
		{"offset", offset},
		{"irregular", irregular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := buildQuiet(tableOf(tt.blocks, make([]float64, len(tt.blocks))))
			lo, hi := ds.MinBlock()-2500, ds.MaxBlock()+2500
			for target := lo; target <= hi; target += 97 {
				got, ok := ds.Nearest(target)
				if !ok {
					t.Fatalf("Nearest(%v) not ok", target)
				}
				want := nearestExhaustive(ds, target)
				if got.Block != want.Block {
					t.Fatalf("Nearest(%v) = %v, exhaustive scan = %v", target, got.Block, want.Block)
				}
			}
		})
	}
}

func TestNearestSingleRow(t *testing.T) {
	ds := buildQuiet(tableOf([]float64{500}, []float64{42}))

	for _, target := range []float64{-100, 0, 500, 2500, 99999} {
		row, ok := ds.Nearest(target)
		if !ok || row.Block != 500 {
			t.Errorf("Nearest(%v) = %v, %v, want block 500", target, row.Block, ok)
		}
	}
}

func TestBracketInside(t *testing.T) {
	ds := buildQuiet(tableOf([]float64{0, 1000, 2000, 3000}, []float64{1, 2, 3, 4}))

	before, after, ok := ds.Bracket(1500)
	if !ok {
		t.Fatal("expected a bracket")
	}
	if before != 1 || after != 2 {
		t.Errorf("Bracket(1500) = (%d, %d), want (1, 2)", before, after)
	}
}

func TestBracketEdges(t *testing.T) {
	ds := buildQuiet(tableOf([]float64{0, 1000, 2000, 3000}, []float64{1, 2, 3, 4}))

	tests := []struct {
		name          string
		target        float64
		before, after int
	}{
		{"below range", -500, 0, 0},
		{"first block", 0, 0, 0},
		{"last block", 3000, 3, 3},
		{"above range", 9000, 3, 3},
		{"exact interior block", 2000, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after, ok := ds.Bracket(tt.target)
			if !ok {
				t.Fatal("expected a bracket")
			}
			if before != tt.before || after != tt.after {
				t.Errorf("Bracket(%v) = (%d, %d), want (%d, %d)",
					tt.target, before, after, tt.before, tt.after)
			}
		})
	}
}

func TestBracketProperty(t *testing.T) {
	blocks := []float64{0, 10, 20, 30, 40, 50000, 100000, 100010, 100020, 100030}
	ds := buildQuiet(tableOf(blocks, make([]float64, len(blocks))))

	for target := ds.MinBlock(); target <= ds.MaxBlock(); target += 313 {
		before, after, ok := ds.Bracket(target)
		if !ok {
			t.Fatalf("Bracket(%v) not ok", target)
		}
		if after < before {
			t.Fatalf("Bracket(%v) = (%d, %d), after < before", target, before, after)
		}
		if ds.Row(before).Block > target || target > ds.Row(after).Block {
			t.Fatalf("Bracket(%v) = blocks (%v, %v), target outside",
				target, ds.Row(before).Block, ds.Row(after).Block)
		}
	}
}

func TestBracketFallsBackToBinarySearch(t *testing.T) {
	// The interval estimate here (10) lands the approximate index far from
	// the true bracket for targets inside the big gap, so the bounded local
	// walk misses and the binary search has to answer.
	blocks := []float64{0, 10, 20, 30, 40, 50000, 100000, 100010, 100020, 100030, 100040}
	ds := buildQuiet(tableOf(blocks, make([]float64, len(blocks))))

	before, after, ok := ds.Bracket(45000)
	if !ok {
		t.Fatal("expected a bracket")
	}
	if ds.Row(before).Block != 40 || ds.Row(after).Block != 50000 {
		t.Errorf("Bracket(45000) = blocks (%v, %v), want (40, 50000)",
			ds.Row(before).Block, ds.Row(after).Block)
	}
}

func TestBracketSingleRow(t *testing.T) {
	ds := buildQuiet(tableOf([]float64{500}, []float64{42}))

	before, after, ok := ds.Bracket(9999)
	if !ok || before != 0 || after != 0 {
		t.Errorf("Bracket on single row = (%d, %d, %v), want (0, 0, true)", before, after, ok)
	}
}

func TestBracketEmptyAndNaN(t *testing.T) {
	empty := buildQuiet(Table{})
	if _, _, ok := empty.Bracket(100); ok {
		t.Error("Bracket on empty dataset should not be ok")
	}

	ds := buildQuiet(tableOf([]float64{0, 1000, 2000}, []float64{1, 2, 3}))
	before, after, ok := ds.Bracket(math.NaN())
	if !ok || before != 0 || after != 0 {
		t.Errorf("Bracket(NaN) = (%d, %d, %v), want clamp to (0, 0, true)", before, after, ok)
	}
}
