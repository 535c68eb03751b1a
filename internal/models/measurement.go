package models

import (
	"fmt"
	"strings"
)

type Decision string

const (
	DecisionMaintain                      Decision = "maintain"
	DecisionIncreasePower                 Decision = "increase_power"
	DecisionIncreasePowerAndChangeChannel Decision = "increase_power_and_change_channel"
	DecisionDecreasePower                 Decision = "decrease_power"
	DecisionOther                         Decision = "other"
)

// Decisions lists every category in declaration order. Frequency tables and
// legends use this order to break ties.
var Decisions = []Decision{
	DecisionMaintain,
	DecisionIncreasePower,
	DecisionIncreasePowerAndChangeChannel,
	DecisionDecreasePower,
	DecisionOther,
}

func ParseDecision(raw string) Decision {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "maintain":
		return DecisionMaintain
	case "increase_power":
		return DecisionIncreasePower
	case "increase_power_and_change_channel", "increase_power_change_channel":
		return DecisionIncreasePowerAndChangeChannel
	case "decrease_power":
		return DecisionDecreasePower
	default:
		return DecisionOther
	}
}

func (d Decision) Rank() int {
	for i, known := range Decisions {
		if known == d {
			return i
		}
	}
	return len(Decisions)
}

// Input column headers. Producers write these exact strings.
const (
	HeaderTime       = "Time(s)"
	HeaderFlow       = "Flow"
	HeaderDistance   = "Distance(m)"
	HeaderThroughput = "Throughput(Mbps)"
	HeaderPDR        = "PDR(%)"
	HeaderLoss       = "Loss(%)"
	HeaderDelay      = "Delay(ms)"
	HeaderRSSI       = "RSSI(dBm)"
	HeaderTxPower    = "TxPower(dBm)"
	HeaderDecision   = "AI_Decision"
)

type Measurement struct {
	Flow       string   `json:"flow"`
	Time       float64  `json:"time_s"`
	Distance   float64  `json:"distance_m"`
	Throughput float64  `json:"throughput_mbps"`
	PDR        float64  `json:"pdr_pct"`
	Loss       float64  `json:"loss_pct"`
	Delay      float64  `json:"delay_ms"`
	RSSI       float64  `json:"rssi_dbm"`
	TxPower    float64  `json:"tx_power_dbm"`
	Decision   Decision `json:"ai_decision"`
}

func (m *Measurement) Value(metric Metric) float64 {
	switch metric {
	case MetricDistance:
		return m.Distance
	case MetricThroughput:
		return m.Throughput
	case MetricPDR:
		return m.PDR
	case MetricLoss:
		return m.Loss
	case MetricDelay:
		return m.Delay
	case MetricRSSI:
		return m.RSSI
	case MetricTxPower:
		return m.TxPower
	}
	return 0
}

func (m *Measurement) ToInfluxTags(runID string) map[string]string {
	tags := map[string]string{
		"flow":     m.Flow,
		"decision": string(m.Decision),
	}

	if runID != "" {
		tags["run_id"] = runID
	}

	return tags
}

func (m *Measurement) ToInfluxFields() map[string]interface{} {
	fields := make(map[string]interface{}, len(Metrics)+1)
	for _, metric := range Metrics {
		fields[string(metric)] = m.Value(metric)
	}
	fields["time_s"] = m.Time

	return fields
}

func (m *Measurement) Validate() error {
	if m.Flow == "" {
		return fmt.Errorf("flow is required")
	}
	if m.Time < 0 {
		return fmt.Errorf("time must not be negative (got %v)", m.Time)
	}
	return nil
}
