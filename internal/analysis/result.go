package analysis

import (
	"ftm-analyzer/internal/dataset"
	"ftm-analyzer/internal/models"
)

// Result is everything the advisor and the reporters need from one table.
// It is built once per run and only read afterwards.
type Result struct {
	Profile      models.Profile
	TotalSamples int

	StaticFlow models.Flow
	MobileFlow models.Flow

	Static models.Aggregate
	Mobile models.Aggregate
	Phases []models.Aggregate

	Decisions        []models.DecisionCount
	PresentDecisions []models.Decision

	View View
}

func Analyze(table *dataset.Table, profile models.Profile) Result {
	flows := table.Split(profile.Flows.All()...)
	static, mobile := flows[0], flows[1]

	view := NewView(static, mobile, profile.Thresholds)

	return Result{
		Profile:          profile,
		TotalSamples:     table.Len(),
		StaticFlow:       static,
		MobileFlow:       mobile,
		Static:           view.Static,
		Mobile:           view.Mobile,
		Phases:           SummarizePhases(mobile, profile.Phases),
		Decisions:        CountDecisions(mobile),
		PresentDecisions: PresentDecisions(mobile),
		View:             view,
	}
}
