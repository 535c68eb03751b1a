package services

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/interfaces"
	"github.com/rs/zerolog"
	"time"
)

type ExportService struct {
	exporters []interfaces.IExporter
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewExportService(timeout time.Duration, logger zerolog.Logger, exporters ...interfaces.IExporter) *ExportService {
	return &ExportService{
		exporters: exporters,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *ExportService) Len() int {
	return len(s.exporters)
}

// Export hands the run to every sink in turn. A failing sink is logged and
// skipped; the collected failures are returned for the caller to report.
func (s *ExportService) Export(ctx context.Context, run *RunResult) []error {
	if len(s.exporters) == 0 {
		return nil
	}

	payload := run.Export()
	var failures []error

	for _, exporter := range s.exporters {
		exportCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := exporter.Export(exportCtx, payload)
		cancel()

		if err != nil {
			s.logger.Error().Err(err).
				Str("sink", exporter.Name()).
				Str("run_id", run.RunID).
				Msg("export failed")
			failures = append(failures, fmt.Errorf("%s: %w", exporter.Name(), err))
			continue
		}

		s.logger.Info().
			Str("sink", exporter.Name()).
			Str("run_id", run.RunID).
			Msg("export succeeded")
	}

	return failures
}
