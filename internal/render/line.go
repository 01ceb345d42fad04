package render

import (
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// lineFigure draws one polyline per series in the caller's x order; no
// implicit sorting is applied.
func lineFigure(req *core.ChartRequest, th *theme.Theme) (*chart.Chart, error) {
	ch := baseChart(req, th)

	cats := categoryOrder(req.Series)
	if len(cats) > 0 {
		ch.XAxis.Ticks = categoricalTicks(cats)
	}

	for i, s := range req.Series {
		xs := seriesXValues(s, cats)
		ys := s.Y
		if req.Options.Smooth && len(ys) > 2 {
			xs, ys = smoothPoints(xs, ys)
		}
		xs, ys = padSingle(xs, ys)

		color := th.SeriesColor(i)
		style := chart.Style{
			StrokeColor: color,
			StrokeWidth: th.LineWidth,
		}
		switch req.Options.LineMode {
		case core.LineModeMarkers:
			style.StrokeWidth = chart.Disabled
			style.DotColor = color
			style.DotWidth = th.MarkerSize / 2
		case core.LineModeLinesMarkers:
			style.DotColor = color
			style.DotWidth = th.MarkerSize / 2
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

// smoothPoints subdivides each segment with a Catmull-Rom spline,
// clamped at the endpoints. The input points are always retained so the
// curve passes through the caller's data.
func smoothPoints(xs, ys []float64) ([]float64, []float64) {
	const steps = 8

	n := len(xs)
	outX := make([]float64, 0, (n-1)*steps+1)
	outY := make([]float64, 0, (n-1)*steps+1)

	at := func(i int) (float64, float64) {
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		return xs[i], ys[i]
	}

	for i := 0; i < n-1; i++ {
		x0, y0 := at(i - 1)
		x1, y1 := at(i)
		x2, y2 := at(i + 1)
		x3, y3 := at(i + 2)

		for s := 0; s < steps; s++ {
			t := float64(s) / steps
			t2 := t * t
			t3 := t2 * t
			outX = append(outX, catmullRom(x0, x1, x2, x3, t, t2, t3))
			outY = append(outY, catmullRom(y0, y1, y2, y3, t, t2, t3))
		}
	}

	lastX, lastY := at(n - 1)
	outX = append(outX, lastX)
	outY = append(outY, lastY)
	return outX, outY
}

func catmullRom(p0, p1, p2, p3, t, t2, t3 float64) float64 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
