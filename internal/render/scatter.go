package render

import (
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// scatterFigure draws points only, independently colored per series.
// show_line adds a connecting stroke on top of the markers.
func scatterFigure(req *core.ChartRequest, th *theme.Theme) (*chart.Chart, error) {
	ch := baseChart(req, th)

	cats := categoryOrder(req.Series)
	if len(cats) > 0 {
		ch.XAxis.Ticks = categoricalTicks(cats)
	}

	for i, s := range req.Series {
		xs, ys := padSingle(seriesXValues(s, cats), s.Y)

		color := th.SeriesColor(i)
		style := chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    color,
			DotWidth:    th.MarkerSize / 2,
		}
		if req.Options.ShowLine {
			style.StrokeWidth = th.LineWidth
			style.StrokeColor = color
		}

		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	fixFlatRange(&ch, req.Series)
	attachLegend(&ch, th)
	return &ch, nil
}
