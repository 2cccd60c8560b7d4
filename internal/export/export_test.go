package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"alphaviz/internal/dataset"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	blocks := []float64{0, 1000, 2000, 3000, 4000}
	recs := make([]dataset.Record, len(blocks))
	for i, b := range blocks {
		recs[i] = dataset.Record{
			dataset.FieldBlock:        strconv.FormatFloat(b, 'f', -1, 64),
			dataset.FieldExchangeRate: strconv.Itoa(i + 1),
		}
	}
	// a hole at block 2000 to exercise null handling
	recs[2][dataset.FieldExchangeRate] = ""
	return dataset.Build(dataset.Table{
		Columns: []string{dataset.FieldBlock, dataset.FieldExchangeRate},
		Records: recs,
	}, dataset.Options{Logger: zap.NewNop()})
}

func TestResampleStride(t *testing.T) {
	ds := testDataset(t)
	rows := Resample(ds, 2000)

	wantBlocks := []float64{0, 2000, 4000}
	if len(rows) != len(wantBlocks) {
		t.Fatalf("resampled %d rows, want %d", len(rows), len(wantBlocks))
	}
	for i, want := range wantBlocks {
		if rows[i].Block != want {
			t.Errorf("rows[%d].Block = %v, want %v", i, rows[i].Block, want)
		}
	}
}

func TestResampleInterpolates(t *testing.T) {
	ds := testDataset(t)
	rows := Resample(ds, 500)

	if len(rows) != 9 {
		t.Fatalf("resampled %d rows, want 9", len(rows))
	}
	if v, ok := rows[1].Value(dataset.FieldExchangeRate); !ok || v != 1.5 {
		t.Errorf("value at block 500 = %v, want 1.5", v)
	}
}

func TestResampleAlwaysIncludesLastBlock(t *testing.T) {
	ds := testDataset(t)
	rows := Resample(ds, 1500)

	last := rows[len(rows)-1]
	if last.Block != 4000 {
		t.Errorf("last resampled block = %v, want 4000", last.Block)
	}
}

func TestResampleFallsBackToNativeInterval(t *testing.T) {
	ds := testDataset(t)
	rows := Resample(ds, 0)

	if len(rows) != 5 {
		t.Errorf("resampled %d rows at the native interval, want 5", len(rows))
	}
}

func TestResampleEmptyDataset(t *testing.T) {
	ds := dataset.Build(dataset.Table{Columns: []string{dataset.FieldBlock}},
		dataset.Options{Logger: zap.NewNop()})
	if rows := Resample(ds, 100); rows != nil {
		t.Errorf("empty dataset resampled %d rows", len(rows))
	}
}

func TestWriteCSV(t *testing.T) {
	ds := testDataset(t)
	rows := Resample(ds, 1000)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds, rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("wrote %d lines, want header + 5 rows", len(records))
	}
	if records[0][0] != dataset.FieldBlock {
		t.Errorf("header starts with %q, want the block column", records[0][0])
	}

	// the hole at block 2000 must come back as an empty cell
	xCol := -1
	for i, name := range records[0] {
		if name == dataset.FieldExchangeRate {
			xCol = i
		}
	}
	if xCol < 0 {
		t.Fatal("exchange rate column missing from header")
	}
	if records[3][xCol] != "" {
		t.Errorf("missing value exported as %q, want empty cell", records[3][xCol])
	}
}

func TestWriteJSON(t *testing.T) {
	ds := testDataset(t)
	rows := Resample(ds, 1000)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, "Sim_Results.csv", 1000, ds, rows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if data.Source != "Sim_Results.csv" || data.Step != 1000 {
		t.Errorf("envelope = %+v, want source and step carried through", data)
	}
	if data.Count != 5 || len(data.Rows) != 5 {
		t.Errorf("envelope count = %d with %d rows, want 5", data.Count, len(data.Rows))
	}

	if v := data.Rows[1][dataset.FieldExchangeRate]; v == nil || *v != 2 {
		t.Error("value at block 1000 should round-trip as 2")
	}
	if v := data.Rows[2][dataset.FieldExchangeRate]; v != nil {
		t.Errorf("missing value exported as %v, want null", *v)
	}
}
