package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

// PostgresWriter publishes the derived tables to PostgreSQL for reporting
// tools.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL and waits for it to
// answer, retrying with back-off.
func NewPostgresWriter(ctx context.Context, dsn string, retry utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = retry.Do(ctx, "postgres ping", func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresWriter{db: db}, nil
}

func (pw *PostgresWriter) Name() string { return "postgres" }

// WriteReport replaces every derived table with the rows of r.
func (pw *PostgresWriter) WriteReport(ctx context.Context, runID string, r *models.Report) error {
	return replaceTables(ctx, pw.db, postgresDialect, ReportTables(runID, r))
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
