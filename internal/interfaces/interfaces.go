package interfaces

import (
	"context"
	"ftm-analyzer/internal/models"
)

type IMqClient interface {
	PublishJson(topic string, data interface{}) error
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
}

type ITopicManager interface {
	GetAdvisoryTopic(runID string) string
	GetSummaryTopic(flow string) string
	GetBaseTopic() string
	ExtractIdFromTopic(topic, template string) (string, error)
	ExtractRunId(topic string) (string, error)
	ExtractFlow(topic string) (string, error)
}

// IExporter is an optional sink that receives a finished run. Failures are
// reported to the caller and never abort the analysis.
type IExporter interface {
	Name() string
	Export(ctx context.Context, run *models.RunExport) error
}

type IRunRepository interface {
	IExporter
	Save(ctx context.Context, run *models.AnalysisRun) error
	FindByRunID(ctx context.Context, runID string) (*models.AnalysisRun, error)
	ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRun, error)
}
