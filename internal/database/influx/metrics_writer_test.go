package influx

import (
	"ftm-analyzer/internal/models"
	"strings"
	"testing"
	"time"
)

func TestBuildPoints(t *testing.T) {
	started := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	run := &models.RunExport{
		RunID:     "run-1",
		StartedAt: started,
		Measurements: []models.Measurement{
			{Flow: "AP2-STA2", Time: 1.5, Distance: 5, Throughput: 4.2, Decision: models.DecisionMaintain},
		},
		Flows: []models.Aggregate{
			{Label: "AP2-STA2", Count: 1, Metrics: map[models.Metric]models.Summary{
				models.MetricThroughput: {Count: 1, Mean: 4.2, Min: 4.2, Max: 4.2},
			}},
			{Label: "AP1-STA1"},
		},
	}

	points := BuildPoints(run)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	row := points[0]
	if row.Name() != MeasurementMetrics {
		t.Fatalf("expected %s, got %s", MeasurementMetrics, row.Name())
	}
	if !row.Time().Equal(started.Add(1500 * time.Millisecond)) {
		t.Fatalf("expected sample time offset by 1.5s, got %s", row.Time())
	}

	tags := map[string]string{}
	for _, tag := range row.TagList() {
		tags[tag.Key] = tag.Value
	}
	if tags["flow"] != "AP2-STA2" || tags["decision"] != "maintain" || tags["run_id"] != "run-1" {
		t.Fatalf("unexpected tags %v", tags)
	}

	summary := points[1]
	if summary.Name() != MeasurementFlowSummary {
		t.Fatalf("expected %s, got %s", MeasurementFlowSummary, summary.Name())
	}
	found := false
	for _, field := range summary.FieldList() {
		if strings.HasPrefix(field.Key, "mean_throughput") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a mean_throughput field")
	}
}
