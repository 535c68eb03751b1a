package analysis

import (
	"ftm-analyzer/internal/dataset"
	"ftm-analyzer/internal/models"
	"math"
	"testing"
)

func row(flow string, t, distance, throughput float64) models.Measurement {
	return models.Measurement{
		Flow:       flow,
		Time:       t,
		Distance:   distance,
		Throughput: throughput,
		PDR:        95,
		Loss:       5,
		Delay:      1.5,
		RSSI:       -50,
		TxPower:    16,
		Decision:   models.DecisionMaintain,
	}
}

func mobileFlow() models.Flow {
	flow := models.Flow{Label: models.DefaultMobileFlow}
	for i := 1; i <= 20; i++ {
		flow.Rows = append(flow.Rows, row(models.DefaultMobileFlow, float64(i), 5+float64(i), 5-float64(i)/10))
	}
	return flow
}

func TestSummarizeComputesSampleStatistics(t *testing.T) {
	flow := models.Flow{Label: "f", Rows: []models.Measurement{
		row("f", 1, 2, 1),
		row("f", 2, 4, 2),
		row("f", 3, 4, 3),
		row("f", 4, 4, 4),
		row("f", 5, 5, 5),
		row("f", 6, 5, 6),
		row("f", 7, 7, 7),
		row("f", 8, 9, 8),
	}}

	agg := Summarize(flow)
	if agg.Count != 8 || agg.Label != "f" {
		t.Fatalf("unexpected aggregate header: %+v", agg)
	}

	d, ok := agg.Get(models.MetricDistance)
	if !ok {
		t.Fatalf("expected distance summary")
	}
	if d.Mean != 5 || d.Min != 2 || d.Max != 9 {
		t.Fatalf("unexpected distance summary: %+v", d)
	}
	// Sample std of 2,4,4,4,5,5,7,9 is sqrt(32/7).
	if math.Abs(d.Std-math.Sqrt(32.0/7.0)) > 1e-9 {
		t.Fatalf("expected sample std %.6f, got %.6f", math.Sqrt(32.0/7.0), d.Std)
	}
}

func TestSummarizeSingleRowHasZeroStd(t *testing.T) {
	agg := Summarize(models.Flow{Label: "one", Rows: []models.Measurement{row("one", 1, 5, 4.5)}})
	s, ok := agg.Get(models.MetricThroughput)
	if !ok {
		t.Fatalf("expected throughput summary")
	}
	if s.Std != 0 || s.Mean != 4.5 {
		t.Fatalf("unexpected single-row summary: %+v", s)
	}
}

func TestSummarizeEmptyIsAbsent(t *testing.T) {
	agg := Summarize(models.Flow{Label: "empty"})
	if !agg.Empty() {
		t.Fatalf("expected empty aggregate, got %+v", agg)
	}
	for _, metric := range models.Metrics {
		if _, ok := agg.Get(metric); ok {
			t.Fatalf("expected %s to be absent", metric)
		}
	}
	if _, ok := agg.Mean(models.MetricThroughput); ok {
		t.Fatalf("expected mean to be absent")
	}
}

func TestSummarizeNeverReturnsNaN(t *testing.T) {
	agg := Summarize(mobileFlow())
	for _, metric := range models.Metrics {
		s, ok := agg.Get(metric)
		if !ok {
			t.Fatalf("expected %s to be present", metric)
		}
		for _, v := range []float64{s.Mean, s.Min, s.Max, s.Std} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("expected finite values for %s, got %+v", metric, s)
			}
		}
	}
}

func TestPhaseWindowsPartitionTimeAxis(t *testing.T) {
	flow := mobileFlow()
	windows := models.DefaultPhaseWindows()

	for _, r := range flow.Rows {
		hits := 0
		for _, w := range windows {
			if w.Contains(r.Time) {
				hits++
			}
		}
		if hits != 1 {
			t.Fatalf("expected time %.1f to fall in exactly one window, got %d", r.Time, hits)
		}
	}

	phases := SummarizePhases(flow, windows)
	if len(phases) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(phases))
	}
	counts := []int{5, 5, 5, 5}
	total := 0
	for i, p := range phases {
		if p.Count != counts[i] {
			t.Fatalf("expected phase %d to hold %d rows, got %d", i+1, counts[i], p.Count)
		}
		if p.Label != windows[i].Name {
			t.Fatalf("expected phase label %q, got %q", windows[i].Name, p.Label)
		}
		total += p.Count
	}
	if total != flow.Len() {
		t.Fatalf("expected phases to cover %d rows, got %d", flow.Len(), total)
	}
}

func TestPhaseBoundariesAreUpperInclusive(t *testing.T) {
	windows := models.DefaultPhaseWindows()
	cases := []struct {
		time  float64
		phase int
	}{
		{0, 0}, {5, 0}, {5.0001, 1}, {10, 1}, {15, 2}, {15.5, 3}, {1000, 3},
	}
	for _, c := range cases {
		if !windows[c.phase].Contains(c.time) {
			t.Fatalf("expected t=%v in %s", c.time, windows[c.phase])
		}
	}
}

func TestSummarizePhasesEmptyWindow(t *testing.T) {
	flow := models.Flow{Label: "m", Rows: []models.Measurement{row("m", 1, 5, 5), row("m", 2, 5, 5)}}
	phases := SummarizePhases(flow, models.DefaultPhaseWindows())

	if phases[0].Count != 2 {
		t.Fatalf("expected 2 rows in the first phase, got %d", phases[0].Count)
	}
	for _, p := range phases[1:] {
		if !p.Empty() {
			t.Fatalf("expected %s to be empty", p.Label)
		}
		if _, ok := p.Mean(models.MetricThroughput); ok {
			t.Fatalf("expected no data for %s", p.Label)
		}
	}
}

func TestSummarizePhasesOutsideAllWindows(t *testing.T) {
	flow := models.Flow{Label: "m", Rows: []models.Measurement{row("m", 50, 5, 5)}}
	windows := []models.PhaseWindow{{Name: "early", Lo: 0, Hi: 10}}

	phases := SummarizePhases(flow, windows)
	if len(phases) != 1 || !phases[0].Empty() {
		t.Fatalf("expected a single empty phase, got %+v", phases)
	}
}

func TestCountDecisionsOrderingAndSum(t *testing.T) {
	flow := models.Flow{Label: "m"}
	decisions := []models.Decision{
		models.DecisionIncreasePower,
		models.DecisionMaintain,
		models.DecisionDecreasePower,
		models.DecisionIncreasePower,
		models.DecisionMaintain,
		models.DecisionIncreasePower,
		models.DecisionOther,
	}
	for i, d := range decisions {
		r := row("m", float64(i), 5, 5)
		r.Decision = d
		flow.Rows = append(flow.Rows, r)
	}

	table := CountDecisions(flow)
	want := []models.DecisionCount{
		{Decision: models.DecisionIncreasePower, Count: 3},
		{Decision: models.DecisionMaintain, Count: 2},
		{Decision: models.DecisionDecreasePower, Count: 1},
		{Decision: models.DecisionOther, Count: 1},
	}
	if len(table) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), table)
	}
	sum := 0
	for i := range want {
		if table[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], table[i])
		}
		sum += table[i].Count
	}
	if sum != flow.Len() {
		t.Fatalf("expected counts to sum to %d, got %d", flow.Len(), sum)
	}

	present := PresentDecisions(flow)
	if len(present) != 4 || present[0] != models.DecisionMaintain || present[3] != models.DecisionOther {
		t.Fatalf("unexpected present decisions %v", present)
	}
}

func TestNewViewFarDistanceAndLoss(t *testing.T) {
	mobile := models.Flow{Label: "m"}
	for i, d := range []float64{5, 20, 20, 10} {
		r := row("m", float64(i+1), d, 4)
		mobile.Rows = append(mobile.Rows, r)
	}
	mobile.Rows[1].Throughput = 2
	mobile.Rows[1].Loss = 12
	mobile.Rows[2].Loss = 15

	view := NewView(models.Flow{Label: "s"}, mobile, models.DefaultThresholds())

	if view.FarDistance.Count != 2 {
		t.Fatalf("expected 2 far rows, got %d", view.FarDistance.Count)
	}
	if mean, _ := view.FarDistance.Mean(models.MetricThroughput); mean != 3 {
		t.Fatalf("expected far throughput mean 3, got %v", mean)
	}
	if view.HighLossIntervals != 2 {
		t.Fatalf("expected 2 high loss intervals, got %d", view.HighLossIntervals)
	}
	if !view.Static.Empty() {
		t.Fatalf("expected empty static aggregate")
	}
}

func TestAnalyzeUsesProfileFlows(t *testing.T) {
	table := dataset.NewTable([]models.Measurement{
		row(models.DefaultStaticFlow, 1, 5, 5),
		row(models.DefaultMobileFlow, 1, 5, 5),
		row(models.DefaultMobileFlow, 7, 12, 4),
		row("AP9-STA9", 1, 1, 1),
	})

	result := Analyze(table, models.DefaultProfile())
	if result.TotalSamples != 4 {
		t.Fatalf("expected 4 samples, got %d", result.TotalSamples)
	}
	if result.Static.Count != 1 || result.Mobile.Count != 2 {
		t.Fatalf("unexpected flow sizes %d/%d", result.Static.Count, result.Mobile.Count)
	}
	if len(result.Phases) != 4 || result.Phases[1].Count != 1 {
		t.Fatalf("unexpected phases %+v", result.Phases)
	}
	if len(result.Decisions) != 1 || result.Decisions[0].Count != 2 {
		t.Fatalf("unexpected decision table %+v", result.Decisions)
	}
}
