package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// dialect holds the differences between the SQL sinks.
type dialect struct {
	name        string
	placeholder func(n int) string
	typeOf      func(colType string) string
}

var sqliteDialect = dialect{
	name:        "sqlite",
	placeholder: func(int) string { return "?" },
	typeOf:      func(t string) string { return t },
}

var postgresDialect = dialect{
	name:        "postgres",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	typeOf: func(t string) string {
		switch t {
		case typeReal:
			return "DOUBLE PRECISION"
		case typeInteger:
			return "BIGINT"
		default:
			return "TEXT"
		}
	},
}

const insertBatchSize = 50

// replaceTables drops and recreates every table and inserts its rows inside
// one transaction, so a failed export leaves the previous tables in place.
func replaceTables(ctx context.Context, db *sql.DB, d dialect, tables []Table) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", d.name, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, t.Name)); err != nil {
			return fmt.Errorf("%s: drop %s: %w", d.name, t.Name, err)
		}
		if _, err := tx.ExecContext(ctx, createTableSQL(d, t)); err != nil {
			return fmt.Errorf("%s: create %s: %w", d.name, t.Name, err)
		}
		for i := 0; i < len(t.Rows); i += insertBatchSize {
			end := i + insertBatchSize
			if end > len(t.Rows) {
				end = len(t.Rows)
			}
			query, args := insertBatchSQL(d, t, t.Rows[i:end])
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%s: insert %s: %w", d.name, t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", d.name, err)
	}
	return nil
}

func createTableSQL(d dialect, t Table) string {
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = fmt.Sprintf("%q %s", c.Name, d.typeOf(c.Type))
	}
	return fmt.Sprintf(`CREATE TABLE %q (%s)`, t.Name, strings.Join(defs, ", "))
}

func insertBatchSQL(d dialect, t Table, batch [][]any) (string, []any) {
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = fmt.Sprintf("%q", c.Name)
	}

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*len(t.Columns))
	n := 0
	for _, row := range batch {
		ph := make([]string, len(t.Columns))
		for i := range t.Columns {
			n++
			ph[i] = d.placeholder(n)
			if i < len(row) {
				valueArgs = append(valueArgs, row[i])
			} else {
				valueArgs = append(valueArgs, nil)
			}
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
	}

	query := fmt.Sprintf(`INSERT INTO %q (%s) VALUES %s`,
		t.Name, strings.Join(quoted, ","), strings.Join(valueStrings, ","))
	return query, valueArgs
}
