// Package loader reads and checks the simulation log CSV. Loading hands the
// raw table to dataset.Build untyped; validation produces the data-quality
// report behind the validate command.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"alphaviz/internal/dataset"
)

// Load reads the simulation log into the raw table form the dataset core
// consumes. Cells stay unparsed strings; typing happens in dataset.Build.
// Ragged records are tolerated: short rows leave the missing cells empty.
func Load(path string, log *zap.Logger) (dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read log: %w", err)
	}
	if len(records) == 0 {
		log.Warn("log file has no header", zap.String("path", path))
		return dataset.Table{}, nil
	}

	header := records[0]
	table := dataset.Table{Columns: header}
	for _, rec := range records[1:] {
		row := make(dataset.Record, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		table.Records = append(table.Records, row)
	}

	for _, name := range missingColumns(header) {
		log.Warn("required column missing from log", zap.String("column", name))
	}
	log.Info("log loaded",
		zap.String("path", path),
		zap.Int("records", len(table.Records)),
		zap.Int("columns", len(header)))
	return table, nil
}

func missingColumns(header []string) []string {
	var missing []string
	for _, name := range dataset.RequiredColumns() {
		if !containsColumn(header, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func containsColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
