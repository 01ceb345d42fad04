package payload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

func dashboardArgs() map[string]any {
	return map[string]any{
		"title": "Exec",
		"rows":  1.0,
		"cols":  2.0,
		"panels": []any{
			map[string]any{
				"type": "line", "row": 1.0, "col": 1.0,
				"data":    []any{map[string]any{"name": "R", "y": []any{1.0, 2.0, 3.0}}},
				"options": map[string]any{"line_shape": "spline"},
			},
			map[string]any{
				"type": "pie", "row": 1.0, "col": 2.0,
				"data": []any{map[string]any{
					"labels": []any{"A", "B"}, "values": []any{60.0, 40.0},
				}},
				"options": map[string]any{"hole": 0.4},
			},
		},
	}
}

func TestParseDashboard_Valid(t *testing.T) {
	req, opts, err := ParseDashboard(dashboardArgs())
	require.NoError(t, err)

	require.Equal(t, 1, req.Rows)
	require.Equal(t, 2, req.Cols)
	require.Len(t, req.Panels, 2)

	require.True(t, req.Panels[0].Options.Smooth)
	require.InDelta(t, 0.4, req.Panels[1].Options.Hole, 1e-9)

	require.Equal(t, "dashboard", opts.Filename)
	require.Equal(t, core.FormatBase64, opts.Format)
}

func TestParseDashboard_DuplicateCell(t *testing.T) {
	args := dashboardArgs()
	panels := args["panels"].([]any)
	panels[1].(map[string]any)["col"] = 1.0

	_, _, err := ParseDashboard(args)
	require.Error(t, err)
	require.True(t, core.IsValidation(err))
	require.Contains(t, err.Error(), "duplicate grid cell")
}

func TestParseDashboard_CellOutOfBounds(t *testing.T) {
	args := dashboardArgs()
	panels := args["panels"].([]any)
	panels[1].(map[string]any)["row"] = 3.0

	_, _, err := ParseDashboard(args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "between 1 and 1")
}

func TestParseDashboard_RejectsSVG(t *testing.T) {
	args := dashboardArgs()
	args["format"] = "svg"

	_, _, err := ParseDashboard(args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "svg is not supported")
}

func TestParseDashboard_TooManyPanels(t *testing.T) {
	args := dashboardArgs()
	args["rows"] = 13.0
	args["cols"] = 1.0

	panels := make([]any, 13)
	for i := range panels {
		panels[i] = map[string]any{
			"type": "line", "row": float64(i + 1), "col": 1.0,
			"data": []any{map[string]any{"y": []any{1.0}}},
		}
	}
	args["panels"] = panels

	_, _, err := ParseDashboard(args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at most 12")
}

func TestParseDashboard_InvalidPanelType(t *testing.T) {
	args := dashboardArgs()
	panels := args["panels"].([]any)
	panels[0].(map[string]any)["type"] = "radar"

	_, _, err := ParseDashboard(args)
	require.Error(t, err)
	require.True(t, core.IsValidation(err))
}

func terminalArgs() map[string]any {
	return map[string]any{
		"type":  "line",
		"title": "Trend",
		"data": []any{
			map[string]any{"name": "R", "x": []any{"Jan", "Feb"}, "y": []any{1.0, 2.0}},
		},
	}
}

func TestParseTerminal_Defaults(t *testing.T) {
	req, err := ParseTerminal(terminalArgs())
	require.NoError(t, err)

	require.Equal(t, 100, req.Width)
	require.Equal(t, 28, req.Height)
	require.True(t, req.UseColor)
	require.False(t, req.ForceMono)
	require.False(t, req.RawOutput)
}

func TestParseTerminal_RejectsPie(t *testing.T) {
	args := terminalArgs()
	args["type"] = "pie"

	_, err := ParseTerminal(args)
	require.Error(t, err)
	require.True(t, core.IsValidation(err))
}

func TestParseTerminal_ThemeAsString(t *testing.T) {
	args := terminalArgs()
	args["theme"] = "pastel_startup_cli"

	req, err := ParseTerminal(args)
	require.NoError(t, err)
	require.Equal(t, "pastel_startup_cli", req.Theme.Preset)
}

func terminalPanel(title string) map[string]any {
	return map[string]any{
		"type":  "line",
		"title": title,
		"data":  []any{map[string]any{"y": []any{1.0, 2.0}}},
	}
}

func TestParseTerminalDashboard_PanelBounds(t *testing.T) {
	args := map[string]any{"panels": []any{terminalPanel("only")}}
	_, err := ParseTerminalDashboard(args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 to 4 panels, got 1")

	args["panels"] = []any{
		terminalPanel("a"), terminalPanel("b"), terminalPanel("c"),
		terminalPanel("d"), terminalPanel("e"),
	}
	_, err = ParseTerminalDashboard(args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "got 5")
}

func TestParseTerminalDashboard_Valid(t *testing.T) {
	args := map[string]any{
		"title":  "Board",
		"panels": []any{terminalPanel("a"), terminalPanel("b")},
	}

	req, err := ParseTerminalDashboard(args)
	require.NoError(t, err)
	require.Len(t, req.Panels, 2)
	require.Equal(t, 120, req.Width)
	require.Equal(t, 32, req.Height)
}
