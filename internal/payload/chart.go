package payload

import (
	"fmt"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

// ParseChart validates the raw arguments of a single-chart tool call.
func ParseChart(typ core.ChartType, args map[string]any) (*core.ChartRequest, core.ExportOptions, error) {
	if !typ.Valid() {
		return nil, core.ExportOptions{}, fmt.Errorf("%w: %q", core.ErrUnsupportedChartType, typ)
	}

	req := &core.ChartRequest{Type: typ}

	var err error
	if req.Title, err = optString(args, "title", ""); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.XLabel, err = optString(args, "x_label", ""); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.YLabel, err = optString(args, "y_label", ""); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Width, err = optInt(args, "width", 0); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Height, err = optInt(args, "height", 0); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Width < 0 {
		return nil, core.ExportOptions{}, core.NewFieldError("width", "must be non-negative")
	}
	if req.Height < 0 {
		return nil, core.ExportOptions{}, core.NewFieldError("height", "must be non-negative")
	}

	if req.Theme, err = themeRef(args); err != nil {
		return nil, core.ExportOptions{}, err
	}

	if typ == core.ChartPie {
		pie, err := parsePieSeriesList("data", args["data"])
		if err != nil {
			return nil, core.ExportOptions{}, err
		}
		if len(pie) > 1 {
			return nil, core.ExportOptions{}, core.NewFieldError("data",
				"pie charts take exactly one series; use a dashboard for multiple rings")
		}
		req.Pie = pie
	} else {
		series, err := parseSeriesList("data", args["data"])
		if err != nil {
			return nil, core.ExportOptions{}, err
		}
		req.Series = series
	}

	if req.Options, err = parseChartOptions(typ, args); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if err = validateAreaStack(typ, req.Series, req.Options); err != nil {
		return nil, core.ExportOptions{}, err
	}

	opts, err := parseExportOptions(args, string(typ)+"_chart")
	if err != nil {
		return nil, core.ExportOptions{}, err
	}

	return req, opts, nil
}

// validateAreaStack enforces that stacked area series are elementwise
// alignable: every series must cover the same number of x positions.
func validateAreaStack(typ core.ChartType, series []core.DataSeries, opts core.ChartOptions) error {
	if typ != core.ChartArea || !opts.Stack || len(series) < 2 {
		return nil
	}
	want := len(series[0].Y)
	for i, s := range series[1:] {
		if len(s.Y) != want {
			return core.NewFieldError(fmt.Sprintf("data[%d]", i+1),
				"stacked area series must all have the same length (want %d, got %d)", want, len(s.Y))
		}
	}
	return nil
}

// parseChartOptions reads the per-type drawing options, applying the
// defaults the original tool surface documents.
func parseChartOptions(typ core.ChartType, args map[string]any) (core.ChartOptions, error) {
	opts := core.ChartOptions{
		LineMode: core.LineModeLinesMarkers,
		BarMode:  core.BarModeGroup,
		Stack:    true,
		Opacity:  0.6,
	}

	switch typ {
	case core.ChartLine:
		mode, err := optString(args, "line_mode", core.LineModeLinesMarkers)
		if err != nil {
			return opts, err
		}
		switch mode {
		case core.LineModeLines, core.LineModeMarkers, core.LineModeLinesMarkers:
			opts.LineMode = mode
		default:
			return opts, core.NewFieldError("line_mode", "must be one of: lines, markers, lines+markers")
		}

		shape, err := optString(args, "line_shape", "linear")
		if err != nil {
			return opts, err
		}
		switch shape {
		case "linear":
		case "spline":
			opts.Smooth = true
		default:
			return opts, core.NewFieldError("line_shape", "must be one of: linear, spline")
		}

	case core.ChartBar:
		mode, err := optString(args, "barmode", core.BarModeGroup)
		if err != nil {
			return opts, err
		}
		switch mode {
		case core.BarModeGroup, core.BarModeStack:
			opts.BarMode = mode
		default:
			return opts, core.NewFieldError("barmode", "must be one of: group, stack")
		}

		orientation, err := optString(args, "orientation", "v")
		if err != nil {
			return opts, err
		}
		switch orientation {
		case "v":
		case "h":
			opts.Horizontal = true
		default:
			return opts, core.NewFieldError("orientation", "must be one of: v, h")
		}

	case core.ChartPie:
		hole, err := optFloat(args, "hole", 0)
		if err != nil {
			return opts, err
		}
		if hole < 0 || hole > 1 {
			return opts, core.NewFieldError("hole", "must be between 0 and 1")
		}
		opts.Hole = hole

	case core.ChartScatter:
		showLine, err := optBool(args, "show_line", false)
		if err != nil {
			return opts, err
		}
		opts.ShowLine = showLine

	case core.ChartArea:
		stack, err := optBool(args, "stack", true)
		if err != nil {
			return opts, err
		}
		opts.Stack = stack

		normalize, err := optBool(args, "normalize", false)
		if err != nil {
			return opts, err
		}
		opts.Normalize = normalize

		opacity, err := optFloat(args, "opacity", 0.6)
		if err != nil {
			return opts, err
		}
		if opacity < 0 || opacity > 1 {
			return opts, core.NewFieldError("opacity", "must be between 0 and 1")
		}
		opts.Opacity = opacity
	}

	return opts, nil
}
