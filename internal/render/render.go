// Package render draws validated chart requests with go-chart and
// produces encoded image artifacts. Dispatch is by chart type; a single
// malformed series aborts the whole chart, there are no partial renders.
package render

import (
	"bytes"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// Default figure size in pixels, matching the request boundary's
// documented defaults.
const (
	defaultWidth  = 1200
	defaultHeight = 800
)

// figure is the narrow surface this package needs from a go-chart
// renderable: all of Chart, BarChart, StackedBarChart, PieChart and
// DonutChart satisfy it.
type figure interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Chart renders one validated request with the resolved theme into an
// encoded artifact. format base64 is encoded as PNG; the export manager
// owns the base64 wrapping.
func Chart(req *core.ChartRequest, th *theme.Theme, format core.ImageFormat) (*core.RenderedArtifact, error) {
	var fig figure
	var err error

	switch req.Type {
	case core.ChartLine:
		fig, err = lineFigure(req, th)
	case core.ChartBar:
		fig, err = barFigure(req, th)
	case core.ChartPie:
		fig, err = pieFigure(req, th)
	case core.ChartScatter:
		fig, err = scatterFigure(req, th)
	case core.ChartArea:
		fig, err = areaFigure(req, th)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedChartType, req.Type)
	}
	if err != nil {
		return nil, err
	}

	return encode(fig, format)
}

func encode(fig figure, format core.ImageFormat) (*core.RenderedArtifact, error) {
	provider := chart.PNG
	encoded := core.FormatPNG
	if format == core.FormatSVG {
		provider = chart.SVG
		encoded = core.FormatSVG
	}

	var buf bytes.Buffer
	if err := fig.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	return &core.RenderedArtifact{Data: buf.Bytes(), Format: encoded}, nil
}

func sizeOf(req *core.ChartRequest) (int, int) {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// baseChart applies the theme to an XY chart shell.
func baseChart(req *core.ChartRequest, th *theme.Theme) chart.Chart {
	width, height := sizeOf(req)

	gridStyle := chart.Style{
		Hidden:      !th.ShowGrid,
		StrokeColor: th.GridColor,
		StrokeWidth: 1.0,
	}
	tickStyle := chart.Style{
		FontColor: th.FontColor,
		FontSize:  th.TickFontSize,
	}
	nameStyle := chart.Style{
		FontColor: th.FontColor,
		FontSize:  th.LabelFontSize,
	}

	return chart.Chart{
		Title: req.Title,
		TitleStyle: chart.Style{
			FontColor: th.FontColor,
			FontSize:  th.TitleFontSize,
		},
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: th.Paper},
		Canvas:     chart.Style{FillColor: th.PlotBackground},
		XAxis: chart.XAxis{
			Name:           req.XLabel,
			NameStyle:      nameStyle,
			Style:          chart.Style{FontColor: th.FontColor, FontSize: th.TickFontSize, StrokeColor: th.GridColor},
			TickStyle:      tickStyle,
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           req.YLabel,
			NameStyle:      nameStyle,
			Style:          chart.Style{FontColor: th.FontColor, FontSize: th.TickFontSize, StrokeColor: th.GridColor},
			TickStyle:      tickStyle,
			GridMajorStyle: gridStyle,
		},
	}
}

func attachLegend(ch *chart.Chart, th *theme.Theme) {
	if !th.ShowLegend {
		return
	}
	ch.Elements = []chart.Renderable{
		chart.Legend(ch, chart.Style{
			FillColor:   th.Paper,
			FontColor:   th.FontColor,
			StrokeColor: th.GridColor,
		}),
	}
}

// categoryOrder returns the categorical x labels in order of first
// appearance across all series; empty when every series has numeric x.
func categoryOrder(series []core.DataSeries) []string {
	var cats []string
	seen := map[string]bool{}
	for _, s := range series {
		for _, label := range s.Labels {
			if !seen[label] {
				seen[label] = true
				cats = append(cats, label)
			}
		}
	}
	return cats
}

func categoricalTicks(cats []string) []chart.Tick {
	ticks := make([]chart.Tick, len(cats))
	for i, label := range cats {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: label}
	}
	return ticks
}

// seriesXValues resolves a series' plot positions. Categorical series
// are positioned by their label's index in the shared category order so
// every series agrees on where a category lives.
func seriesXValues(s core.DataSeries, cats []string) []float64 {
	if len(s.Labels) == 0 {
		return s.X
	}
	index := make(map[string]int, len(cats))
	for i, c := range cats {
		index[c] = i
	}
	xs := make([]float64, len(s.Labels))
	for i, label := range s.Labels {
		xs[i] = float64(index[label] + 1)
	}
	return xs
}

// padSingle widens one-point series: go-chart cannot compute a range
// from a single x value.
func padSingle(xs, ys []float64) ([]float64, []float64) {
	if len(xs) != 1 {
		return xs, ys
	}
	return []float64{xs[0], xs[0] + 1}, []float64{ys[0], ys[0]}
}

// fixFlatRange pins an explicit y range when every value is identical,
// which go-chart otherwise rejects as a zero range.
func fixFlatRange(ch *chart.Chart, series []core.DataSeries) {
	var lo, hi float64
	first := true
	for _, s := range series {
		for _, y := range s.Y {
			if first {
				lo, hi = y, y
				first = false
				continue
			}
			if y < lo {
				lo = y
			}
			if y > hi {
				hi = y
			}
		}
	}
	if !first && lo == hi {
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
}
