package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"genz-dashboard/charts"
	"genz-dashboard/config"
	"genz-dashboard/models"
	"genz-dashboard/services"
	"genz-dashboard/storage"
	"genz-dashboard/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger().WithLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Gen Z Financial Dashboard starting ===")
	logger.Info("Inputs: profile=%s | literacy=%s | regional=%s",
		cfg.ProfileCSV, cfg.LiteracyCSV, cfg.RegionalCSV)

	loader := services.NewLoader(logger)
	sources, err := loader.LoadAll(services.SourcePaths{
		Profile:  cfg.ProfileCSV,
		Literacy: cfg.LiteracyCSV,
		Regional: cfg.RegionalCSV,
	})
	if err != nil {
		logger.Error("Failed to load datasets: %v", err)
		logger.Error("Check that the three CSV files exist and are ';'-delimited")
		os.Exit(1)
	}

	cleaner := services.NewCleaner(logger)
	dataset := cleaner.Clean(sources)

	insightSvc := services.NewInsightService(logger, cfg.ReferenceYear, cfg.MinMatchedItems)
	report := insightSvc.Generate(dataset, models.Filter{
		Province: cfg.FilterProvince,
		Gender:   cfg.FilterGender,
	})
	insightSvc.Print(report)

	ctx := context.Background()
	writers := openWriters(ctx, cfg, logger)
	if len(writers) > 0 {
		exporter := storage.NewExporter(logger, writers...)
		runID, err := exporter.Export(ctx, report)
		if err != nil {
			logger.Warn("Export finished with errors (run %s): %v", runID, err)
		} else {
			logger.Info("Exported run %s to %d sink(s)", runID, len(writers))
		}
		if err := exporter.Close(); err != nil {
			logger.Warn("Closing export sinks: %v", err)
		}
	}

	if cfg.ChartDir != "" {
		renderer, err := charts.NewRenderer(cfg.ChartDir, logger)
		if err != nil {
			logger.Error("Chart renderer unavailable: %v", err)
		} else if files, err := renderer.RenderAll(report); err != nil {
			logger.Error("Chart rendering failed after %d file(s): %v", len(files), err)
		}
	}

	fmt.Printf("  Done. %d respondents analysed.\n\n", report.Stats.Respondents)
}

// openWriters builds every sink enabled in cfg. A sink that cannot be opened
// is logged and skipped.
func openWriters(ctx context.Context, cfg *config.Config, logger *utils.Logger) []storage.ReportWriter {
	var writers []storage.ReportWriter

	if cfg.ExportCSVDir != "" {
		w, err := storage.NewCSVWriter(cfg.ExportCSVDir)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	if cfg.ExportXLSXPath != "" {
		w, err := storage.NewExcelWriter(cfg.ExportXLSXPath)
		if err != nil {
			logger.Error("Failed to create Excel writer: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	if cfg.ExportSQLitePath != "" {
		w, err := storage.NewSQLiteWriter(cfg.ExportSQLitePath)
		if err != nil {
			logger.Error("Failed to open SQLite database: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	if cfg.ExportPostgres {
		retry := utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   500 * time.Millisecond,
			Logger:      logger,
		}
		w, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	return writers
}
