package analysis

import "ftm-analyzer/internal/models"

// View is the aggregated data the advisor rules read. Rules never see raw
// rows; everything they need is reduced here.
type View struct {
	Thresholds models.Thresholds

	Static models.Aggregate
	Mobile models.Aggregate

	// FarDistance aggregates mobile rows beyond Thresholds.FarDistance.
	FarDistance models.Aggregate

	// HighLossIntervals counts mobile rows with loss above Thresholds.HighLoss.
	HighLossIntervals int
}

func NewView(static, mobile models.Flow, thresholds models.Thresholds) View {
	far := Filter(mobile, func(m models.Measurement) bool {
		return m.Distance > thresholds.FarDistance
	})

	highLoss := 0
	for _, row := range mobile.Rows {
		if row.Loss > thresholds.HighLoss {
			highLoss++
		}
	}

	return View{
		Thresholds:        thresholds,
		Static:            Summarize(static),
		Mobile:            Summarize(mobile),
		FarDistance:       summarizeAs(mobile.Label+" far", far),
		HighLossIntervals: highLoss,
	}
}
