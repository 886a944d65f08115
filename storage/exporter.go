package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

// Exporter fans a report out to every configured sink.
type Exporter struct {
	logger  *utils.Logger
	writers []ReportWriter
}

// NewExporter creates an Exporter over the given sinks.
func NewExporter(logger *utils.Logger, writers ...ReportWriter) *Exporter {
	return &Exporter{logger: logger, writers: writers}
}

// Export writes r to every sink under a fresh run id. A failing sink does not
// stop the others; all failures are returned joined.
func (e *Exporter) Export(ctx context.Context, r *models.Report) (string, error) {
	runID := uuid.New().String()

	var errs []error
	for _, w := range e.writers {
		if err := w.WriteReport(ctx, runID, r); err != nil {
			e.logger.Error("[storage] %s export failed: %v", w.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
			continue
		}
		e.logger.Info("[storage] %s export done (run %s)", w.Name(), runID)
	}
	return runID, errors.Join(errs...)
}

// Close closes every sink.
func (e *Exporter) Close() error {
	var errs []error
	for _, w := range e.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
		}
	}
	return errors.Join(errs...)
}
