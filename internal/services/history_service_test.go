package services

import (
	"bytes"
	"context"
	"errors"
	"ftm-analyzer/internal/models"
	"github.com/rs/zerolog"
	"strings"
	"testing"
	"time"
)

type memoryRunRepository struct {
	runs []*models.AnalysisRun
}

func (r *memoryRunRepository) Name() string { return "memory" }

func (r *memoryRunRepository) Export(ctx context.Context, run *models.RunExport) error {
	return r.Save(ctx, models.NewAnalysisRun(run.RunID, run.InputPath, run.TotalSamples, run.StartedAt, run.Advisory))
}

func (r *memoryRunRepository) Save(ctx context.Context, run *models.AnalysisRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *memoryRunRepository) FindByRunID(ctx context.Context, runID string) (*models.AnalysisRun, error) {
	for _, run := range r.runs {
		if run.RunID == runID {
			return run, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memoryRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRun, error) {
	var recent []*models.AnalysisRun
	for i := len(r.runs) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, r.runs[i])
	}
	return recent, nil
}

func storedRun(id string, started time.Time, advisory models.Advisory) *RunResult {
	return &RunResult{RunID: id, InputPath: "result/ftm_metrics.csv", StartedAt: started, Advisory: advisory}
}

func TestHistoryServicePreviousRun(t *testing.T) {
	repo := &memoryRunRepository{}
	history := NewHistoryService(repo, zerolog.Nop())
	ctx := context.Background()
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	first := storedRun("run-1", started, models.Advisory{
		Status:          models.AdvisoryIssuesFound,
		Recommendations: []models.Recommendation{{Priority: models.PriorityHigh}},
	})
	if err := repo.Export(ctx, first.Export()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	previous, err := history.Previous(ctx, "run-1")
	if err != nil || previous != nil {
		t.Fatalf("expected no previous run for the first one, got %+v (%v)", previous, err)
	}

	second := storedRun("run-2", started.Add(time.Hour), models.Advisory{Status: models.AdvisoryNoIssues})
	if err := repo.Export(ctx, second.Export()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	previous, err = history.Previous(ctx, "run-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if previous == nil || previous.RunID != "run-1" || previous.Status != models.AdvisoryIssuesFound {
		t.Fatalf("expected run-1 as previous run, got %+v", previous)
	}
	if len(previous.Recommendations) != 1 {
		t.Fatalf("expected the stored recommendation, got %d", len(previous.Recommendations))
	}
}

func TestHistoryServiceUnstoredRun(t *testing.T) {
	history := NewHistoryService(&memoryRunRepository{}, zerolog.Nop())

	if _, err := history.Previous(context.Background(), "missing"); err == nil {
		t.Fatalf("expected an error for a run that was never stored")
	}
}

func TestHistoryServiceReportLogsComparison(t *testing.T) {
	repo := &memoryRunRepository{}
	var buf bytes.Buffer
	history := NewHistoryService(repo, zerolog.New(&buf))
	ctx := context.Background()
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-1", "run-2"} {
		run := storedRun(id, started.Add(time.Duration(i)*time.Hour), models.Advisory{Status: models.AdvisoryNoIssues})
		if err := repo.Export(ctx, run.Export()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history.Report(ctx, storedRun("run-2", started, models.Advisory{Status: models.AdvisoryNoIssues}))

	out := buf.String()
	if !strings.Contains(out, `"previous_run_id":"run-1"`) || !strings.Contains(out, "compared with previous run") {
		t.Fatalf("expected a comparison log line, got %s", out)
	}
}
