package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

const (
	DefaultBlocksPerDay     = 14400.0
	DefaultIntervalFallback = 1000.0
)

// Options carries the configuration scalars the core does not derive itself.
// The zero value gets the defaults above and a no-op logger.
type Options struct {
	BlocksPerDay     float64
	IntervalFallback float64
	Logger           *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.BlocksPerDay <= 0 {
		o.BlocksPerDay = DefaultBlocksPerDay
	}
	if o.IntervalFallback <= 0 {
		o.IntervalFallback = DefaultIntervalFallback
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Dataset is an immutable, block-sorted view of a simulation log.
type Dataset struct {
	rows     []Row
	columns  []string
	labels   []string
	interval float64
	minBlock float64
	maxBlock float64
	bpd      float64
	logger   *zap.Logger
}

// Build constructs a Dataset from a raw table. Rows are sorted ascending by
// block; day and net flow columns are derived; the block interval estimate is
// attached. Malformed input never fails the build: unparseable numeric cells
// become NaN, records without a usable block are dropped with a warning, and
// duplicate blocks are kept but logged.
func Build(t Table, opts Options) *Dataset {
	opts = opts.withDefaults()
	log := opts.Logger

	columns := t.Columns
	if len(columns) == 0 {
		columns = RequiredColumns()
	}
	numeric, labels := classifyColumns(columns, t.Records)

	rows := make([]Row, 0, len(t.Records))
	dropped := 0
	for _, rec := range t.Records {
		block, ok := parseBlock(rec[FieldBlock])
		if !ok {
			dropped++
			log.Debug("record without usable block dropped", zap.String("raw", rec[FieldBlock]))
			continue
		}
		row := Row{Block: block, Values: make(map[string]float64, len(numeric)+2)}
		for _, name := range numeric {
			row.Values[name] = parseCell(rec[name])
		}
		if len(labels) > 0 {
			row.Labels = make(map[string]string, len(labels))
			for _, name := range labels {
				row.Labels[name] = rec[name]
			}
		}
		rows = append(rows, row)
	}
	if dropped > 0 {
		log.Warn("records without usable block dropped", zap.Int("count", dropped))
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Block < rows[j].Block })

	duplicates := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Block == rows[i-1].Block {
			duplicates++
		}
	}
	if duplicates > 0 {
		log.Warn("duplicate block values in log", zap.Int("count", duplicates))
	}

	for i := range rows {
		rows[i].Values[FieldDay] = math.Floor(rows[i].Block / opts.BlocksPerDay)
		in := valueOr(rows[i].Values, FieldAlphaIn)
		out := valueOr(rows[i].Values, FieldAlphaOut)
		rows[i].Values[FieldNetFlow] = in - out
	}

	d := &Dataset{
		rows:     rows,
		columns:  outputColumns(numeric),
		labels:   labels,
		interval: estimateInterval(rows, opts.IntervalFallback, log),
		bpd:      opts.BlocksPerDay,
		logger:   log,
	}
	if len(rows) > 0 {
		d.minBlock = rows[0].Block
		d.maxBlock = rows[len(rows)-1].Block
	}

	log.Info("dataset built",
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(d.columns)),
		zap.Float64("interval", d.interval),
		zap.Float64("min_block", d.minBlock),
		zap.Float64("max_block", d.maxBlock))
	return d
}

// estimateInterval derives the representative gap between consecutive blocks:
// the mode of the consecutive differences, smallest value on a tie. When every
// gap is unique the smallest gap stands in (no mode exists). Fewer than two
// rows, or a non-positive estimate, fall back to the configured default.
func estimateInterval(rows []Row, fallback float64, log *zap.Logger) float64 {
	if len(rows) < 2 {
		return fallback
	}
	diffs := make([]float64, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		diffs = append(diffs, rows[i].Block-rows[i-1].Block)
	}

	interval := math.NaN()
	if modes, err := stats.Mode(diffs); err == nil && len(modes) > 0 {
		if m, err := stats.Min(modes); err == nil {
			interval = m
		}
	} else if m, err := stats.Min(diffs); err == nil {
		interval = m
	}
	if math.IsNaN(interval) || interval <= 0 {
		log.Warn("block interval estimate unusable, using fallback",
			zap.Float64("estimate", interval),
			zap.Float64("fallback", fallback))
		return fallback
	}
	return interval
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns the row at ordinal i.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// Columns returns the ordered numeric column names, derived columns included.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Interval returns the estimated gap between consecutive blocks. It is a
// lookup heuristic, never assumed exact.
func (d *Dataset) Interval() float64 { return d.interval }

// MinBlock returns the first block, 0 for an empty dataset.
func (d *Dataset) MinBlock() float64 { return d.minBlock }

// MaxBlock returns the last block, 0 for an empty dataset.
func (d *Dataset) MaxBlock() float64 { return d.maxBlock }

// BlocksPerDay returns the day length the dataset was built with.
func (d *Dataset) BlocksPerDay() float64 { return d.bpd }

func outputColumns(numeric []string) []string {
	out := make([]string, 0, len(numeric)+3)
	out = append(out, FieldBlock)
	out = append(out, numeric...)
	if !contains(out, FieldDay) {
		out = append(out, FieldDay)
	}
	if !contains(out, FieldNetFlow) {
		out = append(out, FieldNetFlow)
	}
	return out
}

// classifyColumns splits the source columns into numeric and label columns.
// A column is numeric unless it has non-empty cells and none of them parse;
// that mirrors how a typed loader treats a text column.
func classifyColumns(columns []string, records []Record) (numeric, labels []string) {
	for _, name := range columns {
		if name == FieldBlock {
			continue
		}
		nonEmpty, parsed := 0, 0
		for _, rec := range records {
			cell := strings.TrimSpace(rec[name])
			if cell == "" {
				continue
			}
			nonEmpty++
			if _, err := strconv.ParseFloat(cell, 64); err == nil {
				parsed++
			}
		}
		if nonEmpty > 0 && parsed == 0 {
			labels = append(labels, name)
		} else {
			numeric = append(numeric, name)
		}
	}
	return numeric, labels
}

func parseBlock(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseCell(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func valueOr(values map[string]float64, name string) float64 {
	if v, ok := values[name]; ok {
		return v
	}
	return math.NaN()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
