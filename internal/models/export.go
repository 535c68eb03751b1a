package models

import "time"

// RunExport is what the export sinks receive after a run: the raw rows, the
// per-flow aggregates and the advisory, stamped with the run identity.
type RunExport struct {
	RunID        string        `json:"run_id"`
	InputPath    string        `json:"input_path"`
	StartedAt    time.Time     `json:"started_at"`
	TotalSamples int           `json:"total_samples"`
	Measurements []Measurement `json:"-"`
	Flows        []Aggregate   `json:"flows"`
	Advisory     Advisory      `json:"advisory"`
}

// SampleTime maps a row's simulation time onto the wall clock of the run.
func (r *RunExport) SampleTime(m Measurement) time.Time {
	return r.StartedAt.Add(time.Duration(m.Time * float64(time.Second)))
}

type FlowSummaryMessage struct {
	RunID     string    `json:"run_id"`
	Flow      string    `json:"flow"`
	Aggregate Aggregate `json:"aggregate"`
	Timestamp time.Time `json:"timestamp"`
}

type AdvisoryMessage struct {
	RunID           string           `json:"run_id"`
	InputPath       string           `json:"input_path"`
	TotalSamples    int              `json:"total_samples"`
	Status          AdvisoryStatus   `json:"status"`
	Recommendations []Recommendation `json:"recommendations"`
	Timestamp       time.Time        `json:"timestamp"`
}
