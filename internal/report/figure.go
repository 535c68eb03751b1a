package report

import (
	"fmt"
	"ftm-analyzer/internal/analysis"
	"ftm-analyzer/internal/models"
	"image/color"
)

type SeriesKind string

const (
	SeriesLine      SeriesKind = "line"
	SeriesScatter   SeriesKind = "scatter"
	SeriesReference SeriesKind = "reference"
)

var (
	colorStatic    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	colorMobile    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorTarget    = color.RGBA{R: 0, G: 128, B: 0, A: 180}
	colorWeak      = color.RGBA{R: 255, G: 165, B: 0, A: 180}
	colorDistance  = color.RGBA{R: 0, G: 0, B: 0, A: 80}
	colorUnmatched = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// DecisionColors maps each decision category to its timeline marker colour.
var DecisionColors = map[models.Decision]color.RGBA{
	models.DecisionMaintain:                      {R: 0, G: 128, B: 0, A: 255},
	models.DecisionIncreasePower:                 {R: 255, G: 165, B: 0, A: 255},
	models.DecisionIncreasePowerAndChangeChannel: {R: 255, G: 0, B: 0, A: 255},
	models.DecisionDecreasePower:                 {R: 0, G: 0, B: 255, A: 255},
	models.DecisionOther:                         colorUnmatched,
}

func DecisionColor(d models.Decision) color.RGBA {
	if c, ok := DecisionColors[d]; ok {
		return c
	}
	return colorUnmatched
}

// Series is one plotted data set. When ColorValues is set, each point is
// coloured on a viridis scale by its value instead of Color.
type Series struct {
	Name        string
	Kind        SeriesKind
	X           []float64
	Y           []float64
	Color       color.RGBA
	ColorValues []float64
	Secondary   bool
}

func (s Series) Len() int {
	return len(s.X)
}

type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// HasData reports whether any non-reference series carries points.
func (p Panel) HasData() bool {
	for _, s := range p.Series {
		if s.Kind != SeriesReference && s.Len() > 0 {
			return true
		}
	}
	return false
}

// Figure is the six-panel overview, laid out two columns by three rows in
// reading order.
type Figure struct {
	Title   string
	Columns int
	Panels  []Panel
}

type Marker struct {
	Time     float64
	Decision models.Decision
	Color    color.RGBA
}

type LegendEntry struct {
	Decision models.Decision
	Color    color.RGBA
}

type Timeline struct {
	Title          string
	XLabel         string
	YLabel         string
	SecondaryLabel string
	Markers        []Marker
	Distance       Series
	Legend         []LegendEntry
}

func (t Timeline) HasData() bool {
	return len(t.Markers) > 0
}

func BuildFigure(result analysis.Result) Figure {
	static, mobile := result.StaticFlow, result.MobileFlow
	refs := result.Profile.Chart

	staticName := models.Station(static.Label) + " (Static)"
	mobileName := models.Station(mobile.Label) + " (Mobile)"

	perFlow := func(metric models.Metric, staticLabel, mobileLabel string) []Series {
		return []Series{
			lineSeries(staticLabel, static.Times(), static.Values(metric), colorStatic),
			lineSeries(mobileLabel, mobile.Times(), mobile.Values(metric), colorMobile),
		}
	}

	distance := Panel{
		Title:  "Distance from AP over Time",
		XLabel: "Time (s)",
		YLabel: "Distance (m)",
		Series: perFlow(models.MetricDistance, staticName, mobileName),
	}

	throughput := Panel{
		Title:  "Throughput over Time",
		XLabel: "Time (s)",
		YLabel: "Throughput (Mbps)",
		Series: perFlow(models.MetricThroughput, staticName, mobileName),
	}
	throughput.Series = withReference(throughput.Series,
		fmt.Sprintf("Target (%g Mbps)", refs.TargetThroughput), refs.TargetThroughput, colorTarget)

	correlation := Panel{
		Title:  fmt.Sprintf("Distance vs Throughput (%s)", models.Station(mobile.Label)),
		XLabel: "Distance (m)",
		YLabel: "Throughput (Mbps)",
		Series: []Series{{
			Name:        mobileName,
			Kind:        SeriesScatter,
			X:           mobile.Values(models.MetricDistance),
			Y:           mobile.Values(models.MetricThroughput),
			Color:       colorMobile,
			ColorValues: mobile.Times(),
		}},
	}

	rssi := Panel{
		Title:  "Received Signal Strength over Time",
		XLabel: "Time (s)",
		YLabel: "RSSI (dBm)",
		Series: perFlow(models.MetricRSSI, staticName, mobileName),
	}
	rssi.Series = withReference(rssi.Series,
		fmt.Sprintf("Weak Signal (%g dBm)", refs.WeakSignalLine), refs.WeakSignalLine, colorWeak)

	pdr := Panel{
		Title:  "PDR over Time",
		XLabel: "Time (s)",
		YLabel: "Packet Delivery Ratio (%)",
		Series: perFlow(models.MetricPDR,
			models.Station(static.Label)+" PDR", models.Station(mobile.Label)+" PDR"),
	}
	pdr.Series = withReference(pdr.Series,
		fmt.Sprintf("Target (%g%%)", refs.TargetPDR), refs.TargetPDR, colorTarget)

	txPower := Panel{
		Title:  "AI-Adaptive TX Power Adjustment",
		XLabel: "Time (s)",
		YLabel: "TX Power (dBm)",
		Series: perFlow(models.MetricTxPower,
			models.AccessPoint(static.Label)+" TX Power", models.AccessPoint(mobile.Label)+" TX Power"),
	}

	return Figure{
		Title:   "FTM Adaptive WiFi Performance Analysis",
		Columns: 2,
		Panels:  []Panel{distance, throughput, correlation, rssi, pdr, txPower},
	}
}

// BuildTimeline places one marker per mobile sample and builds the legend
// from the categories that actually occur, in declaration order.
func BuildTimeline(result analysis.Result) Timeline {
	mobile := result.MobileFlow

	markers := make([]Marker, 0, mobile.Len())
	for _, row := range mobile.Rows {
		markers = append(markers, Marker{
			Time:     row.Time,
			Decision: row.Decision,
			Color:    DecisionColor(row.Decision),
		})
	}

	legend := make([]LegendEntry, 0, len(result.PresentDecisions))
	for _, d := range result.PresentDecisions {
		legend = append(legend, LegendEntry{Decision: d, Color: DecisionColor(d)})
	}

	distance := lineSeries("Distance", mobile.Times(), mobile.Values(models.MetricDistance), colorDistance)
	distance.Secondary = true

	return Timeline{
		Title:          fmt.Sprintf("AI Decision Timeline for %s Adaptive Control", models.Station(mobile.Label)),
		XLabel:         "Time (s)",
		YLabel:         "AI Decision Event",
		SecondaryLabel: "Distance (m)",
		Markers:        markers,
		Distance:       distance,
		Legend:         legend,
	}
}

func lineSeries(name string, x, y []float64, c color.RGBA) Series {
	return Series{Name: name, Kind: SeriesLine, X: x, Y: y, Color: c}
}

// withReference appends a horizontal line spanning the x extent of the data
// series. Nothing is added when there is no data to span.
func withReference(series []Series, name string, y float64, c color.RGBA) []Series {
	lo, hi, ok := extent(series, func(s Series) []float64 { return s.X })
	if !ok {
		return series
	}
	return append(series, Series{
		Name:  name,
		Kind:  SeriesReference,
		X:     []float64{lo, hi},
		Y:     []float64{y, y},
		Color: c,
	})
}

func extent(series []Series, pick func(Series) []float64) (float64, float64, bool) {
	var lo, hi float64
	found := false
	for _, s := range series {
		for _, v := range pick(s) {
			if !found {
				lo, hi, found = v, v, true
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi, found
}
