package models

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

type Recommendation struct {
	Priority Priority `json:"priority"`
	Issue    string   `json:"issue"`
	Metric   string   `json:"metric"`
	Action   string   `json:"action"`
	Value    float64  `json:"value"`
}

type AdvisoryStatus string

const (
	AdvisoryIssuesFound AdvisoryStatus = "issues_found"
	AdvisoryNoIssues    AdvisoryStatus = "no_issues"
)

// Advisory is the outcome of one rule evaluation pass. Recommendations keep
// rule declaration order.
type Advisory struct {
	Status          AdvisoryStatus   `json:"status"`
	Recommendations []Recommendation `json:"recommendations"`
}

func (a Advisory) NoIssues() bool {
	return a.Status == AdvisoryNoIssues
}
