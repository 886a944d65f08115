package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"genz-dashboard/models"
)

// CSVWriter writes each derived table to its own ';'-delimited CSV file in
// a directory. It is safe for concurrent use.
type CSVWriter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

func (c *CSVWriter) Name() string { return "csv" }

// WriteReport writes one <table>.csv per derived table, replacing old files.
func (c *CSVWriter) WriteReport(ctx context.Context, runID string, r *models.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range ReportTables(runID, r) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.writeTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) writeTable(t Table) error {
	path := filepath.Join(c.dir, t.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = csvString(v)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush %q: %w", path, err)
	}
	return nil
}

// Close is a no-op; files are closed after each table.
func (c *CSVWriter) Close() error {
	return nil
}

// csvString renders a cell; missing values become an empty field.
func csvString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
