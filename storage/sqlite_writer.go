package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"genz-dashboard/models"
)

// SQLiteWriter stores the derived tables in a SQLite database file.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (creating if needed) the database at path.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create output dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

func (s *SQLiteWriter) Name() string { return "sqlite" }

// WriteReport replaces every derived table with the rows of r.
func (s *SQLiteWriter) WriteReport(ctx context.Context, runID string, r *models.Report) error {
	return replaceTables(ctx, s.db, sqliteDialect, ReportTables(runID, r))
}

func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}
