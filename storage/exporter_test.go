package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

type failingWriter struct {
	closed bool
}

func (f *failingWriter) Name() string { return "broken" }

func (f *failingWriter) WriteReport(context.Context, string, *models.Report) error {
	return errors.New("disk full")
}

func (f *failingWriter) Close() error {
	f.closed = true
	return nil
}

func TestExporterContinuesPastFailingSink(t *testing.T) {
	dir := t.TempDir()
	csvWriter, err := NewCSVWriter(dir)
	require.NoError(t, err)
	broken := &failingWriter{}

	e := NewExporter(utils.Discard(), broken, csvWriter)
	runID, err := e.Export(context.Background(), sampleReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: disk full")
	_, parseErr := uuid.Parse(runID)
	assert.NoError(t, parseErr)

	_, statErr := os.Stat(filepath.Join(dir, "quick_stats.csv"))
	assert.NoError(t, statErr)

	assert.NoError(t, e.Close())
	assert.True(t, broken.closed)
}

func TestExporterRunIDsDiffer(t *testing.T) {
	e := NewExporter(utils.Discard())

	first, err := e.Export(context.Background(), sampleReport())
	require.NoError(t, err)
	second, err := e.Export(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
