package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelWriterOneSheetPerTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.xlsx")
	w, err := NewExcelWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteReport(context.Background(), "run-1", sampleReport()))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Len(t, sheets, len(ReportTables("run-1", sampleReport())))
	assert.Equal(t, "quick_stats", sheets[0])

	rows, err := f.GetRows("respondents_by_province")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"run_id", "province", "respondents"}, rows[0])
	assert.Equal(t, []string{"run-1", "Jawa Barat", "2"}, rows[1])
}
