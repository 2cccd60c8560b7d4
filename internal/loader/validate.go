package loader

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"alphaviz/internal/dataset"
)

// ColumnReport summarizes one required column of the log.
type ColumnReport struct {
	Name     string
	Present  bool
	Nulls    int
	Min      float64
	Max      float64
	Mean     float64
	Median   float64
	StdDev   float64
	Skew     float64
	Kurtosis float64
	Drift    float64
	Constant bool
}

// GapCount is one distinct consecutive-block gap and how often it occurs.
type GapCount struct {
	Gap   float64
	Count int
}

// Report is the data-quality summary of a simulation log.
type Report struct {
	Path       string
	SizeBytes  int64
	Records    int
	Columns    []ColumnReport
	Missing    []string
	Duplicates int
	Gaps       []GapCount
	Irregular  bool
	Warnings   []string
}

// Validate checks a simulation log and summarizes its quality: required
// columns, null counts, per-column distribution shape and drift, duplicate
// block keys, and the spacing of the block sequence. Problems become report
// warnings, not errors; only unreadable input fails.
func Validate(path string, log *zap.Logger) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	table, err := Load(path, log)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Path:      path,
		SizeBytes: info.Size(),
		Records:   len(table.Records),
		Missing:   missingColumns(table.Columns),
	}
	for _, name := range rep.Missing {
		rep.warnf("required column %s is missing", name)
	}
	if rep.Records == 0 {
		rep.warnf("log has no data records")
	}

	blocks := columnValues(table, dataset.FieldBlock)
	rep.Duplicates = duplicateCount(blocks)
	if rep.Duplicates > 0 {
		rep.warnf("%d duplicate block values", rep.Duplicates)
	}
	rep.Gaps = gapCounts(blocks)
	rep.Irregular = len(rep.Gaps) > 1
	if rep.Irregular {
		rep.warnf("block spacing is irregular (%d distinct gaps)", len(rep.Gaps))
	}

	for _, name := range dataset.RequiredColumns() {
		col := summarizeColumn(table, blocks, name)
		if col.Present && col.Constant && name != dataset.FieldBlock {
			rep.warnf("column %s is constant", name)
		}
		if col.Present && rep.Records > 0 && col.Nulls*2 > rep.Records {
			rep.warnf("column %s is mostly null (%d of %d)", name, col.Nulls, rep.Records)
		}
		rep.Columns = append(rep.Columns, col)
	}

	log.Info("log validated",
		zap.String("path", path),
		zap.Int("records", rep.Records),
		zap.Int("warnings", len(rep.Warnings)))
	return rep, nil
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// summarizeColumn computes the distribution summary for one column. The
// montanaflynn helpers cover the order statistics; gonum covers shape and the
// per-block linear drift.
func summarizeColumn(table dataset.Table, blocks []float64, name string) ColumnReport {
	col := ColumnReport{
		Name:     name,
		Present:  containsColumn(table.Columns, name),
		Min:      math.NaN(),
		Max:      math.NaN(),
		Mean:     math.NaN(),
		Median:   math.NaN(),
		StdDev:   math.NaN(),
		Skew:     math.NaN(),
		Kurtosis: math.NaN(),
		Drift:    math.NaN(),
	}
	if !col.Present {
		return col
	}

	var values, atBlocks []float64
	for i, rec := range table.Records {
		v, ok := parseValue(rec[name])
		if !ok {
			col.Nulls++
			continue
		}
		values = append(values, v)
		if i < len(blocks) && !math.IsNaN(blocks[i]) {
			atBlocks = append(atBlocks, blocks[i])
		} else {
			atBlocks = append(atBlocks, math.NaN())
		}
	}
	if len(values) == 0 {
		return col
	}

	if v, err := stats.Min(values); err == nil {
		col.Min = v
	}
	if v, err := stats.Max(values); err == nil {
		col.Max = v
	}
	if v, err := stats.Mean(values); err == nil {
		col.Mean = v
	}
	if v, err := stats.Median(values); err == nil {
		col.Median = v
	}
	col.StdDev = stat.StdDev(values, nil)
	if len(values) > 2 {
		col.Skew = stat.Skew(values, nil)
	}
	if len(values) > 3 {
		col.Kurtosis = stat.ExKurtosis(values, nil)
	}
	col.Constant = col.Min == col.Max

	xs, ys := pairedFinite(atBlocks, values)
	if len(xs) >= 2 && name != dataset.FieldBlock {
		_, col.Drift = stat.LinearRegression(xs, ys, nil, false)
	}
	return col
}

func pairedFinite(xs, ys []float64) ([]float64, []float64) {
	var px, py []float64
	for i := range xs {
		if i < len(ys) && !math.IsNaN(xs[i]) && !math.IsNaN(ys[i]) {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	return px, py
}

// columnValues parses one column across all records, NaN for unusable cells.
func columnValues(table dataset.Table, name string) []float64 {
	out := make([]float64, len(table.Records))
	for i, rec := range table.Records {
		v, ok := parseValue(rec[name])
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func parseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func duplicateCount(blocks []float64) int {
	seen := make(map[float64]int, len(blocks))
	dups := 0
	for _, b := range blocks {
		if math.IsNaN(b) {
			continue
		}
		seen[b]++
		if seen[b] >= 2 {
			dups++
		}
	}
	return dups
}

// gapCounts tallies the distinct consecutive-block gaps, most frequent first.
func gapCounts(blocks []float64) []GapCount {
	finite := make([]float64, 0, len(blocks))
	for _, b := range blocks {
		if !math.IsNaN(b) {
			finite = append(finite, b)
		}
	}
	sort.Float64s(finite)

	counts := make(map[float64]int)
	for i := 1; i < len(finite); i++ {
		counts[finite[i]-finite[i-1]]++
	}
	out := make([]GapCount, 0, len(counts))
	for gap, n := range counts {
		out = append(out, GapCount{Gap: gap, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Gap < out[j].Gap
	})
	return out
}
