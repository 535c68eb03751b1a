package models

type Metric string

const (
	MetricDistance   Metric = "distance"
	MetricThroughput Metric = "throughput"
	MetricPDR        Metric = "pdr"
	MetricLoss       Metric = "loss"
	MetricDelay      Metric = "delay"
	MetricRSSI       Metric = "rssi"
	MetricTxPower    Metric = "tx_power"
)

var Metrics = []Metric{
	MetricDistance,
	MetricThroughput,
	MetricPDR,
	MetricLoss,
	MetricDelay,
	MetricRSSI,
	MetricTxPower,
}

func (m Metric) Header() string {
	switch m {
	case MetricDistance:
		return HeaderDistance
	case MetricThroughput:
		return HeaderThroughput
	case MetricPDR:
		return HeaderPDR
	case MetricLoss:
		return HeaderLoss
	case MetricDelay:
		return HeaderDelay
	case MetricRSSI:
		return HeaderRSSI
	case MetricTxPower:
		return HeaderTxPower
	}
	return string(m)
}

func (m Metric) Unit() string {
	switch m {
	case MetricDistance:
		return "m"
	case MetricThroughput:
		return "Mbps"
	case MetricPDR, MetricLoss:
		return "%"
	case MetricDelay:
		return "ms"
	case MetricRSSI, MetricTxPower:
		return "dBm"
	}
	return ""
}

// Summary holds descriptive statistics for one metric. A zero Count means no
// rows contributed and every other field is meaningless.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Std   float64 `json:"std"`
}

func (s Summary) Present() bool {
	return s.Count > 0
}

type Aggregate struct {
	Label   string             `json:"label"`
	Count   int                `json:"count"`
	Metrics map[Metric]Summary `json:"metrics,omitempty"`
}

func (a Aggregate) Empty() bool {
	return a.Count == 0
}

func (a Aggregate) Get(metric Metric) (Summary, bool) {
	if a.Count == 0 {
		return Summary{}, false
	}
	s, ok := a.Metrics[metric]
	if !ok || !s.Present() {
		return Summary{}, false
	}
	return s, true
}

// Mean is a shortcut for Get(metric) when only the average is needed.
func (a Aggregate) Mean(metric Metric) (float64, bool) {
	s, ok := a.Get(metric)
	return s.Mean, ok
}
