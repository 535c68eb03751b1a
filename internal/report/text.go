package report

import (
	"fmt"
	"ftm-analyzer/internal/analysis"
	"ftm-analyzer/internal/models"
	"io"
	"strings"
	"time"
)

const (
	ruleWidth      = 70
	noIssuesNotice = "✓ No critical issues detected. System performing optimally."
	notAvailable   = "n/a"
	generatedAtFmt = "2006-01-02 15:04:05"
)

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// WriteSummary writes the console analysis: flow aggregates, movement phases
// and the advisory.
func WriteSummary(w io.Writer, result analysis.Result, advisory models.Advisory) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Loaded %d data points from simulation\n", result.TotalSamples)
	fmt.Fprintf(&b, "%s (Static): %d samples\n", models.Station(result.StaticFlow.Label), result.Static.Count)
	fmt.Fprintf(&b, "%s (Mobile): %d samples\n", models.Station(result.MobileFlow.Label), result.Mobile.Count)

	banner(&b, "FTM ADAPTIVE WIFI - AI PERFORMANCE ANALYSIS")

	fmt.Fprintf(&b, "\n[%s - STATIC STATION (%s)]\n%s\n", models.Station(result.StaticFlow.Label), result.StaticFlow.Label, lightRule)
	writeStaticBlock(&b, result.Static)
	writeMetricTable(&b, result.Static)

	fmt.Fprintf(&b, "\n[%s - MOBILE STATION (%s)]\n%s\n", models.Station(result.MobileFlow.Label), result.MobileFlow.Label, lightRule)
	writeMobileBlock(&b, result.Mobile)
	writeMetricTable(&b, result.Mobile)
	if !result.Mobile.Empty() {
		writePhases(&b, result.Phases)
	}

	banner(&b, "AI RECOMMENDATIONS")
	writeAdvisory(&b, advisory)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteReport writes the persisted report. The output depends only on its
// arguments, so identical input and generatedAt give identical bytes.
func WriteReport(w io.Writer, result analysis.Result, advisory models.Advisory, generatedAt time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nFTM ADAPTIVE WIFI - COMPREHENSIVE ANALYSIS REPORT\n%s\n", heavyRule, heavyRule)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format(generatedAtFmt))
	fmt.Fprintf(&b, "Total Samples: %d\n\n", result.TotalSamples)

	fmt.Fprintf(&b, "[%s - STATIC STATION]\n%s\n", models.Station(result.StaticFlow.Label), lightRule)
	writeStaticBlock(&b, result.Static)
	writeMetricTable(&b, result.Static)
	b.WriteString("\n")

	fmt.Fprintf(&b, "[%s - MOBILE STATION]\n%s\n", models.Station(result.MobileFlow.Label), lightRule)
	writeMobileBlock(&b, result.Mobile)
	writeMetricTable(&b, result.Mobile)
	b.WriteString("\n")

	fmt.Fprintf(&b, "[PHASE ANALYSIS]\n%s\n", lightRule)
	writePhaseLines(&b, result.Phases, "")
	b.WriteString("\n")

	fmt.Fprintf(&b, "[AI RECOMMENDATIONS]\n%s", lightRule)
	writeAdvisory(&b, advisory)
	b.WriteString("\n")

	fmt.Fprintf(&b, "[AI DECISION SUMMARY]\n%s\n", lightRule)
	if len(result.Decisions) == 0 {
		b.WriteString("No decisions recorded\n")
	}
	for _, entry := range result.Decisions {
		fmt.Fprintf(&b, "%s: %d times\n", entry.Decision, entry.Count)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func banner(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", heavyRule, title, heavyRule)
}

func writeStaticBlock(b *strings.Builder, agg models.Aggregate) {
	if agg.Empty() {
		b.WriteString("No samples\n")
		return
	}
	line(b, "Average Distance:", mean(agg, models.MetricDistance, "%.2f m"))
	writeCommonAverages(b, agg)
	line(b, "Throughput Range:", span(agg, models.MetricThroughput, "%.3f", "Mbps"))
}

func writeMobileBlock(b *strings.Builder, agg models.Aggregate) {
	if agg.Empty() {
		b.WriteString("No samples\n")
		return
	}
	line(b, "Distance Range:", span(agg, models.MetricDistance, "%.2f", "m"))
	writeCommonAverages(b, agg)
	line(b, "Throughput Range:", span(agg, models.MetricThroughput, "%.3f", "Mbps"))
}

func writeCommonAverages(b *strings.Builder, agg models.Aggregate) {
	line(b, "Average Throughput:", mean(agg, models.MetricThroughput, "%.3f Mbps"))
	line(b, "Average PDR:", mean(agg, models.MetricPDR, "%.2f%%"))
	line(b, "Average Loss:", mean(agg, models.MetricLoss, "%.2f%%"))
	line(b, "Average Delay:", mean(agg, models.MetricDelay, "%.3f ms"))
	line(b, "Average RSSI:", mean(agg, models.MetricRSSI, "%.2f dBm"))
}

func writeMetricTable(b *strings.Builder, agg models.Aggregate) {
	if agg.Empty() {
		return
	}
	fmt.Fprintf(b, "\n  %-18s %10s %10s %10s %10s\n", "Metric", "Mean", "Min", "Max", "Std")
	for _, metric := range models.Metrics {
		s, ok := agg.Get(metric)
		if !ok {
			fmt.Fprintf(b, "  %-18s %10s %10s %10s %10s\n", metric.Header(), notAvailable, notAvailable, notAvailable, notAvailable)
			continue
		}
		fmt.Fprintf(b, "  %-18s %10.3f %10.3f %10.3f %10.3f\n", metric.Header(), s.Mean, s.Min, s.Max, s.Std)
	}
}

func writePhases(b *strings.Builder, phases []models.Aggregate) {
	b.WriteString("\nMovement Phase Analysis:\n")
	writePhaseLines(b, phases, "  ")
}

func writePhaseLines(b *strings.Builder, phases []models.Aggregate, indent string) {
	for _, phase := range phases {
		fmt.Fprintf(b, "%s%-26s Avg Throughput = %s (%d samples)\n",
			indent, phase.Label+":", mean(phase, models.MetricThroughput, "%.3f Mbps"), phase.Count)
	}
}

func writeAdvisory(b *strings.Builder, advisory models.Advisory) {
	if advisory.NoIssues() {
		fmt.Fprintf(b, "\n%s\n", noIssuesNotice)
		return
	}
	for i, rec := range advisory.Recommendations {
		fmt.Fprintf(b, "\n%d. [%s] %s\n", i+1, rec.Priority, rec.Issue)
		fmt.Fprintf(b, "   Metric: %s\n", rec.Metric)
		fmt.Fprintf(b, "   Recommended Action: %s\n", rec.Action)
	}
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-20s %s\n", label, value)
}

func mean(agg models.Aggregate, metric models.Metric, format string) string {
	v, ok := agg.Mean(metric)
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf(format, v)
}

func span(agg models.Aggregate, metric models.Metric, format, unit string) string {
	s, ok := agg.Get(metric)
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf(format+" - "+format+" %s", s.Min, s.Max, unit)
}
