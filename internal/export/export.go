// Package export writes a dataset resampled onto a fixed block stride, as
// CSV for further analysis or as a pretty-printed JSON envelope.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"alphaviz/internal/dataset"
)

// ExportData is the JSON envelope. Metric values are pointers so missing
// readings encode as null; NaN is not representable in JSON.
type ExportData struct {
	Source  string                `json:"source,omitempty"`
	Step    float64               `json:"step"`
	Count   int                   `json:"count"`
	Columns []string              `json:"columns"`
	Rows    []map[string]*float64 `json:"rows"`
}

// Resample synthesizes rows on a fixed stride across the whole block span;
// the final block is always included so the export covers the full range.
// A non-positive step falls back to the dataset's native interval.
func Resample(ds *dataset.Dataset, step float64) []dataset.Row {
	if ds.Len() == 0 {
		return nil
	}
	if step <= 0 || math.IsNaN(step) {
		step = ds.Interval()
	}

	rows := make([]dataset.Row, 0, 64)
	for i := 0; ; i++ {
		pos := ds.MinBlock() + float64(i)*step
		if pos >= ds.MaxBlock() {
			break
		}
		if row, ok := ds.At(pos); ok {
			rows = append(rows, row)
		}
	}
	if row, ok := ds.At(ds.MaxBlock()); ok {
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes rows in the dataset's column order. Unreadable values
// become empty cells, which the loader reads back as NaN.
func WriteCSV(w io.Writer, ds *dataset.Dataset, rows []dataset.Row) error {
	cw := csv.NewWriter(w)
	cols := ds.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}

	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = ""
			if v, ok := row.Value(col); ok && !math.IsNaN(v) {
				record[i] = strconv.FormatFloat(v, 'f', 6, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows inside a pretty-printed envelope.
func WriteJSON(w io.Writer, source string, step float64, ds *dataset.Dataset, rows []dataset.Row) error {
	data := ExportData{
		Source:  source,
		Step:    step,
		Count:   len(rows),
		Columns: ds.Columns(),
		Rows:    make([]map[string]*float64, 0, len(rows)),
	}
	for _, row := range rows {
		obj := make(map[string]*float64, len(data.Columns))
		for _, col := range data.Columns {
			obj[col] = nil
			if v, ok := row.Value(col); ok && !math.IsNaN(v) {
				obj[col] = &v
			}
		}
		data.Rows = append(data.Rows, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes the CSV to a new file at path.
func ExportCSV(path string, ds *dataset.Dataset, rows []dataset.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, ds, rows)
}

// ExportJSON writes the envelope to a new file at path.
func ExportJSON(path, source string, step float64, ds *dataset.Dataset, rows []dataset.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, source, step, ds, rows)
}
