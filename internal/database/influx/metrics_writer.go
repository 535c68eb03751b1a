package influx

import (
	"context"
	"fmt"
	"ftm-analyzer/internal/interfaces"
	"ftm-analyzer/internal/models"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
)

const (
	MeasurementMetrics     = "ftm_metrics"
	MeasurementFlowSummary = "ftm_flow_summary"
)

type MetricsWriter struct {
	writeAPI api.WriteAPIBlocking
	logger   zerolog.Logger
}

var _ interfaces.IExporter = (*MetricsWriter)(nil)

func NewMetricsWriter(writeAPI api.WriteAPIBlocking, logger zerolog.Logger) *MetricsWriter {
	return &MetricsWriter{
		writeAPI: writeAPI,
		logger:   logger,
	}
}

func (w *MetricsWriter) Name() string {
	return "influxdb"
}

func (w *MetricsWriter) Export(ctx context.Context, run *models.RunExport) error {
	points := BuildPoints(run)
	if len(points) == 0 {
		w.logger.Debug().Str("run_id", run.RunID).Msg("nothing to write to InfluxDB")
		return nil
	}

	if err := w.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("failed to write %d points to InfluxDB: %w", len(points), err)
	}

	w.logger.Info().
		Str("run_id", run.RunID).
		Int("points", len(points)).
		Msg("Added FTM metrics to InfluxDB")

	return nil
}

// BuildPoints turns a run into one ftm_metrics point per row followed by one
// ftm_flow_summary point per non-empty flow.
func BuildPoints(run *models.RunExport) []*write.Point {
	points := make([]*write.Point, 0, len(run.Measurements)+len(run.Flows))

	for i := range run.Measurements {
		m := &run.Measurements[i]
		points = append(points, influxdb2.NewPoint(
			MeasurementMetrics,
			m.ToInfluxTags(run.RunID),
			m.ToInfluxFields(),
			run.SampleTime(*m),
		))
	}

	for _, flow := range run.Flows {
		if flow.Empty() {
			continue
		}

		fields := map[string]interface{}{
			"count": flow.Count,
		}
		for _, metric := range models.Metrics {
			if mean, ok := flow.Mean(metric); ok {
				fields["mean_"+string(metric)] = mean
			}
		}

		points = append(points, influxdb2.NewPoint(
			MeasurementFlowSummary,
			map[string]string{"flow": flow.Label, "run_id": run.RunID},
			fields,
			run.StartedAt,
		))
	}

	return points
}
