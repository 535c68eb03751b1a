package models

import (
	"fmt"
	"math"
)

// Flow is a read-only, time-ordered view over the rows sharing one label.
type Flow struct {
	Label string        `json:"label"`
	Rows  []Measurement `json:"rows"`
}

func (f Flow) Len() int {
	return len(f.Rows)
}

func (f Flow) Empty() bool {
	return len(f.Rows) == 0
}

func (f Flow) Values(metric Metric) []float64 {
	values := make([]float64, len(f.Rows))
	for i := range f.Rows {
		values[i] = f.Rows[i].Value(metric)
	}
	return values
}

func (f Flow) Times() []float64 {
	times := make([]float64, len(f.Rows))
	for i := range f.Rows {
		times[i] = f.Rows[i].Time
	}
	return times
}

// PhaseWindow selects rows with Lo < time <= Hi. Either bound may be infinite.
type PhaseWindow struct {
	Name string  `json:"name"`
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
}

func (w PhaseWindow) Contains(t float64) bool {
	return t > w.Lo && t <= w.Hi
}

func (w PhaseWindow) String() string {
	lo := "-inf"
	if !math.IsInf(w.Lo, -1) {
		lo = fmt.Sprintf("%g", w.Lo)
	}
	hi := "+inf"
	if !math.IsInf(w.Hi, 1) {
		hi = fmt.Sprintf("%g", w.Hi)
	}
	return fmt.Sprintf("%s (%s, %s]", w.Name, lo, hi)
}

// DefaultPhaseWindows are the movement phases of the reference scenario: the
// mobile station idles near the AP, walks out, idles far away and walks back.
func DefaultPhaseWindows() []PhaseWindow {
	return []PhaseWindow{
		{Name: "Phase 1 (0-5s, ~5m)", Lo: math.Inf(-1), Hi: 5},
		{Name: "Phase 2 (5-10s, moving)", Lo: 5, Hi: 10},
		{Name: "Phase 3 (10-15s, ~20m)", Lo: 10, Hi: 15},
		{Name: "Phase 4 (15-20s, moving)", Lo: 15, Hi: math.Inf(1)},
	}
}

type DecisionCount struct {
	Decision Decision `json:"decision"`
	Count    int      `json:"count"`
}
