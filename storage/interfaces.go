package storage

import (
	"context"

	"genz-dashboard/models"
)

// ReportWriter is the interface any export sink must satisfy. Sinks only
// receive derived tables; nothing is read back into the pipeline.
type ReportWriter interface {
	Name() string
	WriteReport(ctx context.Context, runID string, r *models.Report) error
	Close() error
}
