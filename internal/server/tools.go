package server

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// Tool names exposed over MCP.
const (
	ToolLineChart         = "create_line_chart"
	ToolBarChart          = "create_bar_chart"
	ToolPieChart          = "create_pie_chart"
	ToolScatterChart      = "create_scatter_chart"
	ToolAreaChart         = "create_area_chart"
	ToolDashboard         = "create_combined_dashboard"
	ToolTerminalChart     = "create_terminal_chart"
	ToolTerminalDashboard = "create_terminal_dashboard"
	ToolListThemePresets  = "list_theme_presets"
)

func (s *Server) registerTools() {
	s.register(mcp.NewTool(ToolLineChart,
		append(seriesToolOptions("Render a line chart from one or more named series."),
			mcp.WithString("line_mode",
				mcp.Description("Point rendering: lines, markers, or lines+markers"),
				mcp.Enum(core.LineModeLines, core.LineModeMarkers, core.LineModeLinesMarkers),
				mcp.DefaultString(core.LineModeLinesMarkers)),
			mcp.WithString("line_shape",
				mcp.Description("linear for straight segments, spline for smoothed curves"),
				mcp.Enum("linear", "spline"),
				mcp.DefaultString("linear")),
		)...,
	), s.handleChartTool(core.ChartLine))

	s.register(mcp.NewTool(ToolBarChart,
		append(seriesToolOptions("Render a grouped or stacked bar chart."),
			mcp.WithString("barmode",
				mcp.Description("group places series side by side, stack piles them"),
				mcp.Enum(core.BarModeGroup, core.BarModeStack),
				mcp.DefaultString(core.BarModeGroup)),
			mcp.WithString("orientation",
				mcp.Description("v for vertical bars, h for horizontal"),
				mcp.Enum("v", "h"),
				mcp.DefaultString("v")),
		)...,
	), s.handleChartTool(core.ChartBar))

	s.register(mcp.NewTool(ToolPieChart,
		mcp.WithDescription("Render a pie or donut chart from a single labeled series."),
		mcp.WithString("title", mcp.Description("Chart title")),
		mcp.WithArray("data", mcp.Required(),
			mcp.Description("Exactly one series with paired labels and non-negative values"),
			mcp.Items(map[string]any{"type": "object"})),
		mcp.WithNumber("hole",
			mcp.Description("Donut hole fraction in [0, 1); 0 draws a full pie")),
		mcp.WithString("theme_preset", themePresetOption()...),
		mcp.WithObject("theme", mcp.Description("Inline theme override object")),
		mcp.WithString("format", formatOption()...),
		mcp.WithString("filename", mcp.Description("Bare output filename, extension is added automatically")),
		mcp.WithBoolean("save_to_disk", mcp.Description("Also write the image into the configured output directory")),
		mcp.WithNumber("width", mcp.Description("Image width in pixels")),
		mcp.WithNumber("height", mcp.Description("Image height in pixels")),
	), s.handleChartTool(core.ChartPie))

	s.register(mcp.NewTool(ToolScatterChart,
		append(seriesToolOptions("Render a scatter plot, optionally with connecting lines."),
			mcp.WithBoolean("show_line", mcp.Description("Connect points with a line")),
		)...,
	), s.handleChartTool(core.ChartScatter))

	s.register(mcp.NewTool(ToolAreaChart,
		append(seriesToolOptions("Render an area chart, stacked by default."),
			mcp.WithBoolean("stack", mcp.Description("Stack series on top of each other (default true)")),
			mcp.WithBoolean("normalize", mcp.Description("Rescale each stack to 100%")),
			mcp.WithNumber("opacity", mcp.Description("Fill opacity in [0, 1], default 0.6")),
		)...,
	), s.handleChartTool(core.ChartArea))

	s.register(mcp.NewTool(ToolDashboard,
		mcp.WithDescription("Compose multiple chart panels into one image on a rows x cols grid."),
		mcp.WithString("title", mcp.Description("Dashboard title drawn across the top")),
		mcp.WithNumber("rows", mcp.Required(), mcp.Description("Grid row count")),
		mcp.WithNumber("cols", mcp.Required(), mcp.Description("Grid column count")),
		mcp.WithArray("panels", mcp.Required(),
			mcp.Description("Panels with type, 1-based row/col cell, data, and per-type options"),
			mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("theme_preset", themePresetOption()...),
		mcp.WithObject("theme", mcp.Description("Inline theme override object")),
		mcp.WithString("format", mcp.Description("png or base64; svg is not supported for dashboards"),
			mcp.Enum("png", "base64"), mcp.DefaultString("base64")),
		mcp.WithString("filename", mcp.Description("Bare output filename, extension is added automatically")),
		mcp.WithBoolean("save_to_disk", mcp.Description("Also write the image into the configured output directory")),
		mcp.WithNumber("width", mcp.Description("Total dashboard width in pixels")),
		mcp.WithNumber("height", mcp.Description("Total dashboard height in pixels")),
	), s.handleDashboard)

	s.register(mcp.NewTool(ToolTerminalChart,
		mcp.WithDescription("Render a chart as terminal text, with ANSI color when available."),
		mcp.WithString("type", mcp.Required(),
			mcp.Description("Chart type; pie has no terminal form"),
			mcp.Enum("line", "bar", "scatter", "area")),
		mcp.WithString("title", mcp.Description("Chart title")),
		mcp.WithString("x_label", mcp.Description("X axis label")),
		mcp.WithString("y_label", mcp.Description("Y axis label")),
		mcp.WithArray("data", mcp.Required(),
			mcp.Description("Series list; each item has name, optional x, and numeric y"),
			mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("theme", mcp.Description("Terminal theme preset name or override object")),
		mcp.WithNumber("width", mcp.Description("Output width in character cells")),
		mcp.WithNumber("height", mcp.Description("Output height in character rows")),
		mcp.WithBoolean("use_color", mcp.Description("Allow ANSI color (default true)")),
		mcp.WithBoolean("force_mono", mcp.Description("Forbid color even when the terminal supports it")),
		mcp.WithBoolean("raw_output", mcp.Description("Return the bare rendered text instead of the JSON metadata envelope")),
	), s.handleTerminalChart)

	s.register(mcp.NewTool(ToolTerminalDashboard,
		mcp.WithDescription("Render 2-4 chart panels as stacked terminal text sections."),
		mcp.WithString("title", mcp.Description("Dashboard title")),
		mcp.WithArray("panels", mcp.Required(),
			mcp.Description("Between two and four panels with type, title, and data"),
			mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("theme", mcp.Description("Terminal theme preset name or override object")),
		mcp.WithNumber("width", mcp.Description("Output width in character cells")),
		mcp.WithNumber("height", mcp.Description("Total output height in character rows")),
		mcp.WithBoolean("use_color", mcp.Description("Allow ANSI color (default true)")),
		mcp.WithBoolean("force_mono", mcp.Description("Forbid color even when the terminal supports it")),
		mcp.WithBoolean("raw_output", mcp.Description("Return the bare rendered text instead of the JSON metadata envelope")),
	), s.handleTerminalDashboard)

	s.register(mcp.NewTool(ToolListThemePresets,
		mcp.WithDescription("List the built-in image and terminal theme presets."),
	), s.handleListThemePresets)
}

func seriesToolOptions(desc string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDescription(desc),
		mcp.WithString("title", mcp.Description("Chart title")),
		mcp.WithString("x_label", mcp.Description("X axis label")),
		mcp.WithString("y_label", mcp.Description("Y axis label")),
		mcp.WithArray("data", mcp.Required(),
			mcp.Description("Series list; each item has name, optional x, and numeric y"),
			mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("theme_preset", themePresetOption()...),
		mcp.WithObject("theme", mcp.Description("Inline theme override object")),
		mcp.WithString("format", formatOption()...),
		mcp.WithString("filename", mcp.Description("Bare output filename, extension is added automatically")),
		mcp.WithBoolean("save_to_disk", mcp.Description("Also write the image into the configured output directory")),
		mcp.WithNumber("width", mcp.Description("Image width in pixels")),
		mcp.WithNumber("height", mcp.Description("Image height in pixels")),
	}
}

func themePresetOption() []mcp.PropertyOption {
	return []mcp.PropertyOption{
		mcp.Description("Built-in theme preset name"),
		mcp.Enum(theme.PresetNames()...),
		mcp.DefaultString(theme.DefaultPreset),
	}
}

func formatOption() []mcp.PropertyOption {
	return []mcp.PropertyOption{
		mcp.Description("Output encoding: png, svg, or base64 (inline data URI)"),
		mcp.Enum("png", "svg", "base64"),
		mcp.DefaultString("base64"),
	}
}
