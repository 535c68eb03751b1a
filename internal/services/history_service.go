package services

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/interfaces"
	"ftm-analyzer/internal/models"
	"github.com/rs/zerolog"
)

type HistoryService struct {
	runs   interfaces.IRunRepository
	logger zerolog.Logger
}

func NewHistoryService(runs interfaces.IRunRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{
		runs:   runs,
		logger: logger,
	}
}

// Previous returns the newest stored run other than runID. It is nil when
// runID is the first run on record.
func (s *HistoryService) Previous(ctx context.Context, runID string) (*models.AnalysisRun, error) {
	if _, err := s.runs.FindByRunID(ctx, runID); err != nil {
		return nil, fmt.Errorf("run %s is not stored: %w", runID, err)
	}

	recent, err := s.runs.ListRecent(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent runs: %w", err)
	}

	for _, run := range recent {
		if run.RunID != runID {
			return run, nil
		}
	}
	return nil, nil
}

// Report logs the stored run next to the one before it.
func (s *HistoryService) Report(ctx context.Context, run *RunResult) {
	previous, err := s.Previous(ctx, run.RunID)
	if err != nil {
		s.logger.Warn().Err(err).Str("run_id", run.RunID).Msg("could not read run history")
		return
	}

	if previous == nil {
		s.logger.Info().Str("run_id", run.RunID).Msg("first recorded analysis run")
		return
	}

	s.logger.Info().
		Str("run_id", run.RunID).
		Str("status", string(run.Advisory.Status)).
		Int("recommendations", len(run.Advisory.Recommendations)).
		Str("previous_run_id", previous.RunID).
		Time("previous_started_at", previous.StartedAt).
		Str("previous_status", string(previous.Status)).
		Int("previous_recommendations", len(previous.Recommendations)).
		Msg("compared with previous run")
}
