package render

import (
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// areaFigure draws filled series. With stacking (the default for
// multiple series) layers accumulate in declaration order, bottom to
// top: series 0 sits on the zero baseline and series N's top edge is
// the elementwise sum of series 0..N.
func areaFigure(req *core.ChartRequest, th *theme.Theme) (*chart.Chart, error) {
	ch := baseChart(req, th)

	cats := categoryOrder(req.Series)
	if len(cats) > 0 {
		ch.XAxis.Ticks = categoricalTicks(cats)
	}

	alpha := uint8(req.Options.Opacity * 255)
	stacked := req.Options.Stack && len(req.Series) > 1

	if !stacked {
		for i, s := range req.Series {
			xs, ys := padSingle(seriesXValues(s, cats), s.Y)
			color := th.SeriesColor(i)
			ch.Series = append(ch.Series, chart.ContinuousSeries{
				Name:    s.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: th.LineWidth,
					FillColor:   color.WithAlpha(alpha),
				},
			})
		}
		fixFlatRange(&ch, req.Series)
		attachLegend(&ch, th)
		return &ch, nil
	}

	ys := make([][]float64, len(req.Series))
	for i, s := range req.Series {
		ys[i] = s.Y
	}
	tops := stackTops(ys, req.Options.Normalize)

	if req.Options.Normalize {
		ch.YAxis.ValueFormatter = func(v any) string {
			f, ok := v.(float64)
			if !ok {
				return ""
			}
			return trimFloatLabel(f) + "%"
		}
	}

	// Shared x axis: stacking aligns every series on the first series'
	// positions (lengths are validated equal upstream).
	xs := seriesXValues(req.Series[0], cats)

	// Paint the tallest cumulative band first so each lower band
	// overdraws its own region and every layer stays visible.
	for i := len(req.Series) - 1; i >= 0; i-- {
		color := th.SeriesColor(i)
		sx, sy := padSingle(xs, tops[i])
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    req.Series[i].Name,
			XValues: sx,
			YValues: sy,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: th.LineWidth,
				FillColor:   color.WithAlpha(alpha),
			},
		})
	}

	attachLegend(&ch, th)
	return &ch, nil
}

// stackTops returns the cumulative top edge of each stacked layer:
// tops[i][j] is the sum of series 0..i at position j. With normalize
// each position is rescaled so the final top edge is 100.
func stackTops(series [][]float64, normalize bool) [][]float64 {
	if len(series) == 0 {
		return nil
	}
	n := len(series[0])

	tops := make([][]float64, len(series))
	acc := make([]float64, n)
	for i, ys := range series {
		tops[i] = make([]float64, n)
		for j, y := range ys {
			acc[j] += y
			tops[i][j] = acc[j]
		}
	}

	if normalize {
		for j := 0; j < n; j++ {
			total := acc[j]
			if total == 0 {
				continue
			}
			for i := range tops {
				tops[i][j] = tops[i][j] / total * 100
			}
		}
	}
	return tops
}
