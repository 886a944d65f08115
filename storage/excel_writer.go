package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"genz-dashboard/models"
)

// ExcelWriter writes the derived tables into one workbook, one sheet per
// table.
type ExcelWriter struct {
	path string
}

// NewExcelWriter prepares a writer for the workbook at path.
func NewExcelWriter(path string) (*ExcelWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &ExcelWriter{path: path}, nil
}

func (e *ExcelWriter) Name() string { return "xlsx" }

// WriteReport builds a fresh workbook and saves it over any previous one.
func (e *ExcelWriter) WriteReport(ctx context.Context, runID string, r *models.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range ReportTables(runID, r) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("xlsx: new sheet %q: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			return err
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", e.path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, t Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header of %q: %w", t.Name, err)
	}
	for i, c := range t.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: column name: %w", err)
		}
		width := float64(len(c.Name)) + 4
		if width < 14 {
			width = 14
		}
		if err := f.SetColWidth(t.Name, col, col, width); err != nil {
			return fmt.Errorf("xlsx: column width of %q: %w", t.Name, err)
		}
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		values := make([]any, len(row))
		copy(values, row)
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return fmt.Errorf("xlsx: write row of %q: %w", t.Name, err)
		}
	}
	return nil
}

// Close is a no-op; the workbook is saved by WriteReport.
func (e *ExcelWriter) Close() error {
	return nil
}
