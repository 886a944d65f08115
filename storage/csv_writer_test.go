package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterWritesOneFilePerTable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	w, err := NewCSVWriter(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteReport(context.Background(), "run-1", sampleReport()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(ReportTables("run-1", sampleReport())))

	income := readCSV(t, filepath.Join(dir, "income_expense_by_province.csv"))
	assert.Equal(t, []string{"run_id", "province", "avg_monthly_income", "avg_monthly_expense"}, income[0])
	assert.Equal(t, []string{"run-1", "Jawa Barat", "3000000", "1000000"}, income[1])
	assert.Equal(t, []string{"run-1", "Bali", "", "500000"}, income[2])
}

func TestCSVWriterHonoursCancelledContext(t *testing.T) {
	w, err := NewCSVWriter(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, w.WriteReport(ctx, "run-1", sampleReport()), context.Canceled)
}
