package render

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// pieFigure draws one part-to-whole ring. Slice order follows the
// caller's label order; a positive hole turns the pie into a donut.
func pieFigure(req *core.ChartRequest, th *theme.Theme) (figure, error) {
	s := req.Pie[0]

	var total float64
	for _, v := range s.Values {
		total += v
	}
	if total <= 0 {
		return nil, core.NewFieldError("data[0].values", "must contain at least one positive value")
	}

	values := make([]chart.Value, len(s.Values))
	for i, v := range s.Values {
		color := th.SeriesColor(i)
		values[i] = chart.Value{
			Value: v,
			Label: fmt.Sprintf("%s (%.1f%%)", s.Labels[i], v/total*100),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: th.Paper,
				StrokeWidth: 2,
				FontColor:   th.FontColor,
				FontSize:    th.TickFontSize,
			},
		}
	}

	width, height := sizeOf(req)
	titleStyle := chart.Style{
		FontColor: th.FontColor,
		FontSize:  th.TitleFontSize,
	}

	if req.Options.Hole > 0 {
		return &chart.DonutChart{
			Title:      req.Title,
			TitleStyle: titleStyle,
			Width:      width,
			Height:     height,
			Background: chart.Style{FillColor: th.Paper},
			Canvas:     chart.Style{FillColor: th.Paper},
			Values:     values,
		}, nil
	}

	return &chart.PieChart{
		Title:      req.Title,
		TitleStyle: titleStyle,
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: th.Paper},
		Canvas:     chart.Style{FillColor: th.Paper},
		Values:     values,
	}, nil
}
