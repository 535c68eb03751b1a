package advisor

import (
	"fmt"
	"ftm-analyzer/internal/analysis"
	"ftm-analyzer/internal/models"
)

// Rule inspects aggregated data and optionally emits one recommendation.
type Rule func(view analysis.View) (models.Recommendation, bool)

// DefaultRules returns the rule set in evaluation order.
func DefaultRules(thresholds models.Thresholds) []Rule {
	return []Rule{
		FarThroughputRule(thresholds),
		FarSignalRule(thresholds),
		PacketLossRule(thresholds),
		StabilityRule(thresholds),
	}
}

func FarThroughputRule(thresholds models.Thresholds) Rule {
	return func(view analysis.View) (models.Recommendation, bool) {
		mean, ok := view.FarDistance.Mean(models.MetricThroughput)
		if !ok || mean >= thresholds.MinFarThroughput {
			return models.Recommendation{}, false
		}
		return models.Recommendation{
			Priority: models.PriorityHigh,
			Issue:    "Severe throughput degradation at far distances",
			Metric:   fmt.Sprintf("Average throughput: %.3f Mbps", mean),
			Action:   "Increase TX power by 3-4 dBm or implement beamforming",
			Value:    mean,
		}, true
	}
}

func FarSignalRule(thresholds models.Thresholds) Rule {
	return func(view analysis.View) (models.Recommendation, bool) {
		mean, ok := view.FarDistance.Mean(models.MetricRSSI)
		if !ok || mean >= thresholds.WeakRSSI {
			return models.Recommendation{}, false
		}
		return models.Recommendation{
			Priority: models.PriorityMedium,
			Issue:    "Weak signal strength at far distances",
			Metric:   fmt.Sprintf("Average RSSI: %.2f dBm", mean),
			Action:   "Deploy additional AP or use directional antennas",
			Value:    mean,
		}, true
	}
}

func PacketLossRule(thresholds models.Thresholds) Rule {
	return func(view analysis.View) (models.Recommendation, bool) {
		if view.Mobile.Empty() || view.HighLossIntervals == 0 {
			return models.Recommendation{}, false
		}
		return models.Recommendation{
			Priority: models.PriorityMedium,
			Issue:    "High packet loss detected",
			Metric:   fmt.Sprintf("%d intervals with >%g%% loss", view.HighLossIntervals, thresholds.HighLoss),
			Action:   "Implement rate adaptation or increase retransmission limit",
			Value:    float64(view.HighLossIntervals),
		}, true
	}
}

func StabilityRule(thresholds models.Thresholds) Rule {
	return func(view analysis.View) (models.Recommendation, bool) {
		summary, ok := view.Static.Get(models.MetricThroughput)
		if !ok || summary.Std <= thresholds.MaxStaticThroughputStd {
			return models.Recommendation{}, false
		}
		return models.Recommendation{
			Priority: models.PriorityLow,
			Issue:    "Throughput variability in static station",
			Metric:   fmt.Sprintf("Std dev: %.3f Mbps", summary.Std),
			Action:   "Check for interference or adjust channel selection",
			Value:    summary.Std,
		}, true
	}
}
