package models

import (
	"math"
	"testing"
	"time"
)

func TestParseDecision(t *testing.T) {
	cases := map[string]Decision{
		"maintain":                          DecisionMaintain,
		" Increase_Power ":                  DecisionIncreasePower,
		"increase_power_and_change_channel": DecisionIncreasePowerAndChangeChannel,
		"increase_power_change_channel":     DecisionIncreasePowerAndChangeChannel,
		"decrease_power":                    DecisionDecreasePower,
		"reboot":                            DecisionOther,
		"":                                  DecisionOther,
	}
	for raw, want := range cases {
		if got := ParseDecision(raw); got != want {
			t.Fatalf("ParseDecision(%q): expected %s, got %s", raw, want, got)
		}
	}
}

func TestDecisionRankFollowsDeclarationOrder(t *testing.T) {
	for i, d := range Decisions {
		if d.Rank() != i {
			t.Fatalf("expected %s at rank %d, got %d", d, i, d.Rank())
		}
	}
	if Decision("unknown").Rank() != len(Decisions) {
		t.Fatalf("expected unknown decisions to sort last")
	}
}

func TestPhaseWindowString(t *testing.T) {
	w := PhaseWindow{Name: "late", Lo: 15, Hi: math.Inf(1)}
	if got := w.String(); got != "late (15, +inf]" {
		t.Fatalf("unexpected window string %q", got)
	}
}

func TestFlowLabelHalves(t *testing.T) {
	if AccessPoint("AP2-STA2") != "AP2" || Station("AP2-STA2") != "STA2" {
		t.Fatalf("unexpected label split")
	}
	if Station("solo") != "solo" {
		t.Fatalf("expected labels without a dash to pass through")
	}
}

func TestNewAnalysisRunKeepsRecommendationOrder(t *testing.T) {
	advisory := Advisory{
		Status: AdvisoryIssuesFound,
		Recommendations: []Recommendation{
			{Priority: PriorityHigh, Issue: "first", Value: 2.5},
			{Priority: PriorityLow, Issue: "second", Value: 0.7},
		},
	}
	started := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	run := NewAnalysisRun("run-1", "result/ftm_metrics.csv", 42, started, advisory)
	if run.RunID != "run-1" || run.TotalSamples != 42 || run.Status != AdvisoryIssuesFound {
		t.Fatalf("unexpected run %+v", run)
	}
	if len(run.Recommendations) != 2 {
		t.Fatalf("expected 2 records, got %d", len(run.Recommendations))
	}
	if run.Recommendations[0].Position != 1 || run.Recommendations[1].Issue != "second" {
		t.Fatalf("unexpected records %+v", run.Recommendations)
	}
}

func TestRunExportSampleTime(t *testing.T) {
	started := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	run := RunExport{StartedAt: started}
	got := run.SampleTime(Measurement{Time: 2.25})
	if !got.Equal(started.Add(2250 * time.Millisecond)) {
		t.Fatalf("unexpected sample time %s", got)
	}
}
