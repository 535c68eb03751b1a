package report

import (
	"bytes"
	"fmt"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

const (
	panelWidth     = 800
	panelHeight    = 480
	titleBand      = 40
	timelineWidth  = 1400
	timelineHeight = 600
	legendSwatch   = 12
)

var (
	colorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorText       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorMuted      = color.RGBA{R: 110, G: 110, B: 110, A: 255}
)

// RenderFigure draws every panel separately and composes them into a grid
// below a title band.
func RenderFigure(fig Figure) (image.Image, error) {
	columns := fig.Columns
	if columns <= 0 {
		columns = 2
	}
	rows := (len(fig.Panels) + columns - 1) / columns

	canvas := image.NewRGBA(image.Rect(0, 0, columns*panelWidth, titleBand+rows*panelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	drawCentered(canvas, fig.Title, titleBand/2+4, colorText)

	for i, panel := range fig.Panels {
		img, err := renderPanel(panel, panelWidth, panelHeight)
		if err != nil {
			return nil, fmt.Errorf("failed to render panel %q: %w", panel.Title, err)
		}
		origin := image.Pt((i%columns)*panelWidth, titleBand+(i/columns)*panelHeight)
		draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(panelWidth, panelHeight))}, img, img.Bounds().Min, draw.Src)
	}

	return canvas, nil
}

// RenderTimeline draws the decision markers on the primary axis and the
// distance curve on the secondary one, then paints the legend.
func RenderTimeline(tl Timeline) (image.Image, error) {
	if !tl.HasData() {
		return blank(timelineWidth, timelineHeight, tl.Title, "No mobile samples"), nil
	}

	times := make([]float64, len(tl.Markers))
	ones := make([]float64, len(tl.Markers))
	colors := make([]drawing.Color, len(tl.Markers))
	for i, m := range tl.Markers {
		times[i] = m.Time
		ones[i] = 1
		colors[i] = toDrawing(m.Color)
	}

	xs, ys := duplicateSingle(times, ones)
	markers := chart.ContinuousSeries{
		Name:    "Decisions",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    9,
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				if index < len(colors) {
					return colors[index]
				}
				return colors[len(colors)-1]
			},
		},
	}

	dx, dy := duplicateSingle(tl.Distance.X, tl.Distance.Y)
	distance := chart.ContinuousSeries{
		Name:    tl.Distance.Name,
		YAxis:   chart.YAxisSecondary,
		XValues: dx,
		YValues: dy,
		Style: chart.Style{
			StrokeWidth:     2,
			StrokeColor:     toDrawing(tl.Distance.Color),
			StrokeDashArray: []float64{6, 4},
		},
	}

	dLo, dHi, _ := extent([]Series{tl.Distance}, func(s Series) []float64 { return s.Y })

	ch := chart.Chart{
		Title:      tl.Title,
		Width:      timelineWidth,
		Height:     timelineHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 16}},
		XAxis:      chart.XAxis{Name: tl.XLabel, Range: paddedRange(extentOf(times))},
		YAxis: chart.YAxis{
			Name:  tl.YLabel,
			Range: &chart.ContinuousRange{Min: 0.5, Max: 1.5},
			Ticks: []chart.Tick{{Value: 0.5, Label: ""}, {Value: 1.5, Label: ""}},
		},
		YAxisSecondary: chart.YAxis{Name: tl.SecondaryLabel, Range: paddedRange(dLo, dHi, true)},
		Series:         []chart.Series{distance, markers},
	}

	img, err := renderChart(ch)
	if err != nil {
		return nil, err
	}

	return drawLegend(img, tl.Legend), nil
}

func renderPanel(panel Panel, width, height int) (image.Image, error) {
	if !panel.HasData() {
		return blank(width, height, panel.Title, "No data"), nil
	}

	series := make([]chart.Series, 0, len(panel.Series))
	for _, s := range panel.Series {
		if s.Len() == 0 {
			continue
		}
		series = append(series, toChartSeries(s))
	}

	xLo, xHi, _ := extent(panel.Series, func(s Series) []float64 { return s.X })
	yLo, yHi, _ := extent(panel.Series, func(s Series) []float64 { return s.Y })

	ch := chart.Chart{
		Title:      panel.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: panel.XLabel, Range: paddedRange(xLo, xHi, true)},
		YAxis:      chart.YAxis{Name: panel.YLabel, Range: paddedRange(yLo, yHi, true)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return renderChart(ch)
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return img, nil
}

func toChartSeries(s Series) chart.Series {
	xs, ys := duplicateSingle(s.X, s.Y)
	c := toDrawing(s.Color)

	style := chart.Style{
		StrokeWidth: 2,
		StrokeColor: c,
		DotWidth:    3,
		DotColor:    c,
	}

	switch s.Kind {
	case SeriesReference:
		style = chart.Style{
			StrokeWidth:     1.5,
			StrokeColor:     c,
			StrokeDashArray: []float64{6, 4},
		}
	case SeriesScatter:
		style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    6,
			DotColor:    c,
		}
		if lo, hi, ok := extentOf(s.ColorValues); ok {
			values := s.ColorValues
			style.DotColorProvider = func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				if index >= len(values) {
					index = len(values) - 1
				}
				if lo == hi {
					return chart.Viridis(0.5, 0, 1)
				}
				return chart.Viridis(values[index], lo, hi)
			}
		}
	}

	series := chart.ContinuousSeries{
		Name:    s.Name,
		XValues: xs,
		YValues: ys,
		Style:   style,
	}
	if s.Secondary {
		series.YAxis = chart.YAxisSecondary
	}
	return series
}

// duplicateSingle repeats a lone point so go-chart has two values to draw.
func duplicateSingle(x, y []float64) ([]float64, []float64) {
	if len(x) != 1 || len(y) != 1 {
		return x, y
	}
	return []float64{x[0], x[0]}, []float64{y[0], y[0]}
}

func extentOf(values []float64) (float64, float64, bool) {
	return extent([]Series{{X: values}}, func(s Series) []float64 { return s.X })
}

// paddedRange widens [lo, hi] by 5% on each side, or by one unit when the
// range is degenerate, so go-chart never sees a zero-width axis.
func paddedRange(lo, hi float64, ok bool) *chart.ContinuousRange {
	if !ok {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if hi-lo == 0 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blank(width, height int, title, notice string) image.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	drawCentered(canvas, title, 24, colorText)
	drawCentered(canvas, notice, height/2, colorMuted)
	return canvas
}

func drawLegend(img image.Image, entries []LegendEntry) image.Image {
	b := img.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, img, b.Min, draw.Src)
	if len(entries) == 0 {
		return canvas
	}

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: canvas, Src: image.NewUniform(colorText), Face: face}

	width := 0
	for _, e := range entries {
		if w := dr.MeasureString(string(e.Decision)).Ceil(); w > width {
			width = w
		}
	}

	pad := 6
	lineHeight := legendSwatch + 6
	x := b.Min.X + 90
	y := b.Min.Y + 60
	frame := image.Rect(x-pad, y-pad, x+legendSwatch+pad+width+pad, y+len(entries)*lineHeight+pad/2)
	draw.Draw(canvas, frame, image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 230}), image.Point{}, draw.Over)

	for i, e := range entries {
		top := y + i*lineHeight
		swatch := image.Rect(x, top, x+legendSwatch, top+legendSwatch)
		draw.Draw(canvas, swatch, image.NewUniform(e.Color), image.Point{}, draw.Src)

		dr.Dot = fixed.Point26_6{X: fixed.I(x + legendSwatch + pad), Y: fixed.I(top + legendSwatch - 1)}
		dr.DrawString(string(e.Decision))
	}

	return canvas
}

func drawCentered(dst *image.RGBA, text string, baseline int, c color.Color) {
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13}
	width := dr.MeasureString(text).Ceil()
	x := dst.Bounds().Min.X + (dst.Bounds().Dx()-width)/2
	if x < 0 {
		x = 0
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)}
	dr.DrawString(text)
}
