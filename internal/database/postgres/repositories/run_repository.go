package repositories

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/interfaces"
	"ftm-analyzer/internal/models"
	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

var _ interfaces.IRunRepository = (*RunRepository)(nil)

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Name() string {
	return "postgres"
}

// Export stores the run together with its recommendations in one transaction.
func (r *RunRepository) Export(ctx context.Context, run *models.RunExport) error {
	record := models.NewAnalysisRun(run.RunID, run.InputPath, run.TotalSamples, run.StartedAt, run.Advisory)
	if err := r.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to store analysis run %s: %w", run.RunID, err)
	}
	return nil
}

func (r *RunRepository) Save(ctx context.Context, run *models.AnalysisRun) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
}

func (r *RunRepository) FindByRunID(ctx context.Context, runID string) (*models.AnalysisRun, error) {
	var run models.AnalysisRun
	err := r.db.WithContext(ctx).
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("run_id = ?", runID).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecent returns the newest runs first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRun, error) {
	var runs []*models.AnalysisRun
	err := r.db.WithContext(ctx).
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
