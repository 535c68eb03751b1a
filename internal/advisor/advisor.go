package advisor

import (
	"ftm-analyzer/internal/analysis"
	"ftm-analyzer/internal/models"
)

type Advisor struct {
	rules []Rule
}

func New(rules ...Rule) *Advisor {
	return &Advisor{rules: rules}
}

// NewDefault builds an advisor with DefaultRules for the given thresholds.
func NewDefault(thresholds models.Thresholds) *Advisor {
	return New(DefaultRules(thresholds)...)
}

// Evaluate runs every rule in order. Recommendations are not re-sorted by
// priority.
func (a *Advisor) Evaluate(view analysis.View) models.Advisory {
	advisory := models.Advisory{Status: models.AdvisoryNoIssues}

	for _, rule := range a.rules {
		rec, fired := rule(view)
		if !fired {
			continue
		}
		advisory.Recommendations = append(advisory.Recommendations, rec)
	}

	if len(advisory.Recommendations) > 0 {
		advisory.Status = models.AdvisoryIssuesFound
	}
	return advisory
}
