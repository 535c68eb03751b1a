package models

import (
	"gorm.io/gorm"
	"time"
)

type AnalysisRun struct {
	gorm.Model
	RunID           string                 `gorm:"uniqueIndex;not null" json:"run_id"`
	InputPath       string                 `json:"input_path"`
	TotalSamples    int                    `json:"total_samples"`
	Status          AdvisoryStatus         `gorm:"type:text;not null" json:"status"`
	StartedAt       time.Time              `json:"started_at"`
	Recommendations []RecommendationRecord `gorm:"foreignKey:AnalysisRunID" json:"recommendations,omitempty"`
}

type RecommendationRecord struct {
	gorm.Model
	AnalysisRunID uint     `gorm:"index;not null" json:"analysis_run_id"`
	Position      int      `json:"position"`
	Priority      Priority `gorm:"type:text;not null" json:"priority"`
	Issue         string   `json:"issue"`
	Metric        string   `json:"metric"`
	Action        string   `json:"action"`
	Value         float64  `json:"value"`
}

func NewAnalysisRun(runID, inputPath string, totalSamples int, startedAt time.Time, advisory Advisory) *AnalysisRun {
	run := &AnalysisRun{
		RunID:        runID,
		InputPath:    inputPath,
		TotalSamples: totalSamples,
		Status:       advisory.Status,
		StartedAt:    startedAt,
	}

	for i, rec := range advisory.Recommendations {
		run.Recommendations = append(run.Recommendations, RecommendationRecord{
			Position: i + 1,
			Priority: rec.Priority,
			Issue:    rec.Issue,
			Metric:   rec.Metric,
			Action:   rec.Action,
			Value:    rec.Value,
		})
	}

	return run
}
