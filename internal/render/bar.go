package render

import (
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// barFigure draws grouped or stacked bars. Category order is the order
// of first appearance across all series.
func barFigure(req *core.ChartRequest, th *theme.Theme) (figure, error) {
	cats, values := barCategories(req.Series)

	if req.Options.BarMode == core.BarModeStack {
		return stackedBarFigure(req, th, cats, values), nil
	}
	return groupedBarFigure(req, th, cats, values), nil
}

// barCategories flattens the series into (category order, per-category
// per-series values). Numeric x values become their formatted labels so
// bars always have a category axis.
func barCategories(series []core.DataSeries) ([]string, map[string][]float64) {
	var cats []string
	seen := map[string]bool{}
	values := map[string][]float64{}

	labelsOf := func(s core.DataSeries) []string {
		if len(s.Labels) > 0 {
			return s.Labels
		}
		labels := make([]string, len(s.X))
		for i, x := range s.X {
			labels[i] = trimFloatLabel(x)
		}
		return labels
	}

	for _, s := range series {
		for _, label := range labelsOf(s) {
			if !seen[label] {
				seen[label] = true
				cats = append(cats, label)
				values[label] = make([]float64, len(series))
			}
		}
	}
	for si, s := range series {
		for i, label := range labelsOf(s) {
			if i < len(s.Y) {
				values[label][si] = s.Y[i]
			}
		}
	}
	return cats, values
}

func groupedBarFigure(req *core.ChartRequest, th *theme.Theme, cats []string, values map[string][]float64) *chart.BarChart {
	width, height := sizeOf(req)
	seriesCount := len(req.Series)

	var bars []chart.Value
	for _, cat := range cats {
		for si := 0; si < seriesCount; si++ {
			label := ""
			if si == seriesCount/2 {
				// One category label per group, under its middle bar.
				label = cat
			}
			color := th.SeriesColor(si)
			bars = append(bars, chart.Value{
				Label: label,
				Value: values[cat][si],
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
	}

	barWidth := width / (len(bars)*2 + 2)
	if barWidth < 8 {
		barWidth = 8
	}
	if barWidth > 60 {
		barWidth = 60
	}

	return &chart.BarChart{
		Title: req.Title,
		TitleStyle: chart.Style{
			FontColor: th.FontColor,
			FontSize:  th.TitleFontSize,
		},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		Background: chart.Style{FillColor: th.Paper},
		Canvas:     chart.Style{FillColor: th.PlotBackground},
		XAxis: chart.Style{
			FontColor: th.FontColor,
			FontSize:  th.TickFontSize,
		},
		YAxis: chart.YAxis{
			Name:      req.YLabel,
			NameStyle: chart.Style{FontColor: th.FontColor, FontSize: th.LabelFontSize},
			Style:     chart.Style{FontColor: th.FontColor, FontSize: th.TickFontSize, StrokeColor: th.GridColor},
			TickStyle: chart.Style{FontColor: th.FontColor, FontSize: th.TickFontSize},
			GridMajorStyle: chart.Style{
				Hidden:      !th.ShowGrid,
				StrokeColor: th.GridColor,
				StrokeWidth: 1.0,
			},
		},
		Bars: bars,
	}
}

// stackedBarFigure composes one stacked bar per category. go-chart
// draws stacked bars proportionally, so this is a per-category
// composition view rather than an absolute-height stack.
func stackedBarFigure(req *core.ChartRequest, th *theme.Theme, cats []string, values map[string][]float64) *chart.StackedBarChart {
	width, height := sizeOf(req)

	bars := make([]chart.StackedBar, 0, len(cats))
	barWidth := width / (len(cats) + 2)
	if barWidth > 80 {
		barWidth = 80
	}

	for _, cat := range cats {
		segments := make([]chart.Value, 0, len(req.Series))
		for si, s := range req.Series {
			color := th.SeriesColor(si)
			segments = append(segments, chart.Value{
				Label: s.Name,
				Value: values[cat][si],
				Style: chart.Style{
					FillColor:   color,
					StrokeColor: color,
					FontColor:   th.FontColor,
				},
			})
		}
		bars = append(bars, chart.StackedBar{
			Name:   cat,
			Width:  barWidth,
			Values: segments,
		})
	}

	return &chart.StackedBarChart{
		Title: req.Title,
		TitleStyle: chart.Style{
			FontColor: th.FontColor,
			FontSize:  th.TitleFontSize,
		},
		Width:        width,
		Height:       height,
		Background:   chart.Style{FillColor: th.Paper},
		Canvas:       chart.Style{FillColor: th.PlotBackground},
		XAxis:        chart.Style{FontColor: th.FontColor, FontSize: th.TickFontSize},
		YAxis:        chart.Style{FontColor: th.FontColor, FontSize: th.TickFontSize},
		IsHorizontal: req.Options.Horizontal,
		Bars:         bars,
	}
}

func trimFloatLabel(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
