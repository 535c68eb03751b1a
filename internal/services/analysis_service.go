package services

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/advisor"
	"ftm-analyzer/internal/analysis"
	"ftm-analyzer/internal/dataset"
	"ftm-analyzer/internal/models"
	"ftm-analyzer/internal/report"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"io"
	"time"
)

type RunResult struct {
	RunID     string
	InputPath string
	StartedAt time.Time
	Result    analysis.Result
	Advisory  models.Advisory
	Artifacts report.Artifacts
}

// Export flattens the run into the payload handed to the export sinks.
func (r *RunResult) Export() *models.RunExport {
	rows := make([]models.Measurement, 0, r.Result.StaticFlow.Len()+r.Result.MobileFlow.Len())
	rows = append(rows, r.Result.StaticFlow.Rows...)
	rows = append(rows, r.Result.MobileFlow.Rows...)

	return &models.RunExport{
		RunID:        r.RunID,
		InputPath:    r.InputPath,
		StartedAt:    r.StartedAt,
		TotalSamples: r.Result.TotalSamples,
		Measurements: rows,
		Flows:        []models.Aggregate{r.Result.Static, r.Result.Mobile},
		Advisory:     r.Advisory,
	}
}

type AnalysisService struct {
	inputPath string
	profile   models.Profile
	advisor   *advisor.Advisor
	renderer  report.Renderer
	console   io.Writer
	now       func() time.Time
	logger    zerolog.Logger
}

func NewAnalysisService(
	inputPath string,
	profile models.Profile,
	renderer report.Renderer,
	console io.Writer,
	logger zerolog.Logger,
) *AnalysisService {
	return &AnalysisService{
		inputPath: inputPath,
		profile:   profile,
		advisor:   advisor.NewDefault(profile.Thresholds),
		renderer:  renderer,
		console:   console,
		now:       time.Now,
		logger:    logger,
	}
}

// Run loads the input, aggregates it, evaluates the advisory rules, prints
// the summary and renders the artifacts, in that order.
func (s *AnalysisService) Run(ctx context.Context) (*RunResult, error) {
	run := &RunResult{
		RunID:     uuid.NewString(),
		InputPath: s.inputPath,
		StartedAt: s.now(),
	}

	logger := s.logger.With().Str("run_id", run.RunID).Logger()

	table, err := dataset.Load(s.inputPath)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("path", s.inputPath).
		Str("rows", humanize.Comma(int64(table.Len()))).
		Strs("flows", table.Labels()).
		Msg("loaded measurements")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run.Result = analysis.Analyze(table, s.profile)
	logger.Info().
		Int("static_samples", run.Result.Static.Count).
		Int("mobile_samples", run.Result.Mobile.Count).
		Int("phases", len(run.Result.Phases)).
		Msg("aggregated flows")

	run.Advisory = s.advisor.Evaluate(run.Result.View)
	logger.Info().
		Str("status", string(run.Advisory.Status)).
		Int("recommendations", len(run.Advisory.Recommendations)).
		Msg("evaluated advisory rules")

	if err := report.WriteSummary(s.console, run.Result, run.Advisory); err != nil {
		return nil, fmt.Errorf("failed to print summary: %w", err)
	}

	artifacts, err := s.renderer.Render(run.Result, run.Advisory)
	if err != nil {
		return nil, err
	}
	run.Artifacts = artifacts

	logger.Info().
		Dur("elapsed", s.now().Sub(run.StartedAt)).
		Strs("artifacts", artifacts.Paths()).
		Msg("analysis complete")

	return run, nil
}
