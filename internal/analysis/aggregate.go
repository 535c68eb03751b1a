package analysis

import (
	"ftm-analyzer/internal/models"
	"sort"
)

func Summarize(flow models.Flow) models.Aggregate {
	return summarizeAs(flow.Label, flow)
}

// SummarizePhases returns one aggregate per window, in the order given. A
// window without rows comes back with Count 0 rather than zero-valued stats.
func SummarizePhases(flow models.Flow, windows []models.PhaseWindow) []models.Aggregate {
	aggregates := make([]models.Aggregate, 0, len(windows))
	for _, w := range windows {
		window := w
		phase := Filter(flow, func(m models.Measurement) bool {
			return window.Contains(m.Time)
		})
		aggregates = append(aggregates, summarizeAs(window.Name, phase))
	}
	return aggregates
}

func summarizeAs(label string, flow models.Flow) models.Aggregate {
	agg := models.Aggregate{
		Label: label,
		Count: flow.Len(),
	}
	if flow.Empty() {
		return agg
	}

	agg.Metrics = make(map[models.Metric]models.Summary, len(models.Metrics))
	for _, metric := range models.Metrics {
		agg.Metrics[metric] = describe(flow.Values(metric))
	}
	return agg
}

func Filter(flow models.Flow, keep func(models.Measurement) bool) models.Flow {
	out := models.Flow{Label: flow.Label}
	for _, row := range flow.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// CountDecisions builds the decision frequency table: highest count first,
// ties in declaration order. Categories that never occur are left out.
func CountDecisions(flow models.Flow) []models.DecisionCount {
	counts := make(map[models.Decision]int)
	for _, row := range flow.Rows {
		counts[row.Decision]++
	}

	table := make([]models.DecisionCount, 0, len(counts))
	for decision, count := range counts {
		table = append(table, models.DecisionCount{Decision: decision, Count: count})
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Decision.Rank() < table[j].Decision.Rank()
	})

	return table
}

// PresentDecisions lists the categories that occur in flow, in declaration
// order.
func PresentDecisions(flow models.Flow) []models.Decision {
	seen := make(map[models.Decision]bool)
	for _, row := range flow.Rows {
		seen[row.Decision] = true
	}

	var present []models.Decision
	for _, d := range models.Decisions {
		if seen[d] {
			present = append(present, d)
		}
	}
	return present
}
