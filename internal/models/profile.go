package models

import "strings"

const (
	DefaultStaticFlow = "AP1-STA1"
	DefaultMobileFlow = "AP2-STA2"
)

type FlowLabels struct {
	Static string `json:"static" yaml:"static"`
	Mobile string `json:"mobile" yaml:"mobile"`
}

func (f FlowLabels) All() []string {
	return []string{f.Static, f.Mobile}
}

// AccessPoint returns the "AP1" half of an "AP1-STA1" style label.
func AccessPoint(label string) string {
	ap, _, found := strings.Cut(label, "-")
	if !found {
		return label
	}
	return ap
}

// Station returns the "STA1" half of an "AP1-STA1" style label.
func Station(label string) string {
	_, sta, found := strings.Cut(label, "-")
	if !found {
		return label
	}
	return sta
}

type Thresholds struct {
	FarDistance            float64 `json:"far_distance_m" yaml:"far_distance_m"`
	MinFarThroughput       float64 `json:"min_far_throughput_mbps" yaml:"min_far_throughput_mbps"`
	WeakRSSI               float64 `json:"weak_rssi_dbm" yaml:"weak_rssi_dbm"`
	HighLoss               float64 `json:"high_loss_pct" yaml:"high_loss_pct"`
	MaxStaticThroughputStd float64 `json:"max_static_throughput_std" yaml:"max_static_throughput_std"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FarDistance:            15,
		MinFarThroughput:       3.0,
		WeakRSSI:               -75,
		HighLoss:               10,
		MaxStaticThroughputStd: 0.5,
	}
}

// ChartReferences are the horizontal guide lines drawn on the charts. They
// are display-only and never feed the advisor.
type ChartReferences struct {
	TargetThroughput float64 `json:"target_throughput_mbps" yaml:"target_throughput_mbps"`
	WeakSignalLine   float64 `json:"weak_signal_line_dbm" yaml:"weak_signal_line_dbm"`
	TargetPDR        float64 `json:"target_pdr_pct" yaml:"target_pdr_pct"`
}

func DefaultChartReferences() ChartReferences {
	return ChartReferences{
		TargetThroughput: 5.0,
		WeakSignalLine:   -70,
		TargetPDR:        90,
	}
}

type Profile struct {
	Flows      FlowLabels      `json:"flows"`
	Phases     []PhaseWindow   `json:"phases"`
	Thresholds Thresholds      `json:"thresholds"`
	Chart      ChartReferences `json:"chart"`
}

func DefaultProfile() Profile {
	return Profile{
		Flows:      FlowLabels{Static: DefaultStaticFlow, Mobile: DefaultMobileFlow},
		Phases:     DefaultPhaseWindows(),
		Thresholds: DefaultThresholds(),
		Chart:      DefaultChartReferences(),
	}
}
