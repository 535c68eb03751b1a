package dataset

import "ftm-analyzer/internal/models"

// Table is an immutable snapshot of the loaded measurements. Accessors hand
// out copies, so no consumer can change what another one sees.
type Table struct {
	rows   []models.Measurement
	labels []string
}

func NewTable(rows []models.Measurement) *Table {
	t := &Table{rows: make([]models.Measurement, len(rows))}
	copy(t.rows, rows)

	seen := make(map[string]struct{})
	for _, row := range t.rows {
		if _, ok := seen[row.Flow]; ok {
			continue
		}
		seen[row.Flow] = struct{}{}
		t.labels = append(t.labels, row.Flow)
	}

	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *Table) Rows() []models.Measurement {
	if t == nil {
		return nil
	}
	rows := make([]models.Measurement, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Labels returns the flow labels present, in first-seen order.
func (t *Table) Labels() []string {
	if t == nil {
		return nil
	}
	labels := make([]string, len(t.labels))
	copy(labels, t.labels)
	return labels
}

func (t *Table) Flow(label string) models.Flow {
	flow := models.Flow{Label: label}
	if t == nil {
		return flow
	}
	for _, row := range t.rows {
		if row.Flow == label {
			flow.Rows = append(flow.Rows, row)
		}
	}
	return flow
}

// Split returns one flow per label, in the order given. Unknown labels yield
// an empty flow.
func (t *Table) Split(labels ...string) []models.Flow {
	index := make(map[string]int, len(labels))
	flows := make([]models.Flow, len(labels))
	for i, label := range labels {
		flows[i] = models.Flow{Label: label}
		if _, dup := index[label]; !dup {
			index[label] = i
		}
	}

	if t == nil {
		return flows
	}

	for _, row := range t.rows {
		if i, ok := index[row.Flow]; ok {
			flows[i].Rows = append(flows[i].Rows, row)
		}
	}

	for i, label := range labels {
		if first := index[label]; first != i {
			flows[i].Rows = append([]models.Measurement(nil), flows[first].Rows...)
		}
	}

	return flows
}
