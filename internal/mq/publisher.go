package mq

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/interfaces"
	"ftm-analyzer/internal/models"
	"github.com/rs/zerolog"
	"strings"
	"time"
)

// AdvisoryPublisher publishes the advisory of a run and one summary per
// flow.
type AdvisoryPublisher struct {
	client interfaces.IMqClient
	topics interfaces.ITopicManager
	now    func() time.Time
	logger zerolog.Logger
}

var _ interfaces.IExporter = (*AdvisoryPublisher)(nil)

func NewAdvisoryPublisher(client interfaces.IMqClient, topics interfaces.ITopicManager, logger zerolog.Logger) *AdvisoryPublisher {
	return &AdvisoryPublisher{
		client: client,
		topics: topics,
		now:    time.Now,
		logger: logger,
	}
}

func (p *AdvisoryPublisher) Name() string {
	return "mqtt"
}

func (p *AdvisoryPublisher) Export(ctx context.Context, run *models.RunExport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timestamp := p.now()

	advisory := models.AdvisoryMessage{
		RunID:           run.RunID,
		InputPath:       run.InputPath,
		TotalSamples:    run.TotalSamples,
		Status:          run.Advisory.Status,
		Recommendations: run.Advisory.Recommendations,
		Timestamp:       timestamp,
	}
	if advisory.Recommendations == nil {
		advisory.Recommendations = []models.Recommendation{}
	}

	topic := p.topics.GetAdvisoryTopic(run.RunID)
	if err := routable(topic, run.RunID, p.topics.ExtractRunId); err != nil {
		return fmt.Errorf("cannot publish advisory: %w", err)
	}
	if err := p.client.PublishJson(topic, advisory); err != nil {
		return fmt.Errorf("failed to publish advisory: %w", err)
	}
	p.logger.Info().Str("topic", topic).Str("status", string(advisory.Status)).Msg("published advisory")

	for _, flow := range run.Flows {
		topic := p.topics.GetSummaryTopic(flow.Label)
		if err := routable(topic, flow.Label, p.topics.ExtractFlow); err != nil {
			return fmt.Errorf("cannot publish summary: %w", err)
		}
		summary := models.FlowSummaryMessage{
			RunID:     run.RunID,
			Flow:      flow.Label,
			Aggregate: flow,
			Timestamp: timestamp,
		}
		if err := p.client.PublishJson(topic, summary); err != nil {
			return fmt.Errorf("failed to publish summary for flow %s: %w", flow.Label, err)
		}
		p.logger.Debug().Str("topic", topic).Int("samples", flow.Count).Msg("published flow summary")
	}

	return nil
}

// routable checks that id comes back out of the topic built from it. A level
// separator or a wildcard in id would publish somewhere else.
func routable(topic, id string, extract func(string) (string, error)) error {
	if id == "" || strings.ContainsAny(id, "+#") {
		return fmt.Errorf("%q is not a valid topic level", id)
	}
	got, err := extract(topic)
	if err != nil {
		return err
	}
	if got != id {
		return fmt.Errorf("topic %s resolves to %q, not %q", topic, got, id)
	}
	return nil
}
