package dashboard

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/terminal"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
	logzerolog "github.com/vvkuznetsov/charts-mcp/pkg/logger/zerolog"
)

func defaultTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.Resolve(core.ThemeRef{})
	require.NoError(t, err)
	return th
}

func linePanel(row, col int) core.PanelSpec {
	return core.PanelSpec{
		Type:  core.ChartLine,
		Row:   row,
		Col:   col,
		Title: "Revenue",
		Series: []core.DataSeries{
			{Name: "R", X: []float64{1, 2, 3}, Y: []float64{120, 132, 148}, NumericX: true},
		},
		Options: core.ChartOptions{LineMode: core.LineModeLines},
	}
}

func piePanel(row, col int) core.PanelSpec {
	return core.PanelSpec{
		Type: core.ChartPie,
		Row:  row,
		Col:  col,
		Pie: []core.PieDataSeries{
			{Labels: []string{"A", "B"}, Values: []float64{60, 40}},
		},
	}
}

func TestImage_ComposesGrid(t *testing.T) {
	req := &core.DashboardRequest{
		Title:  "Exec",
		Rows:   1,
		Cols:   2,
		Panels: []core.PanelSpec{linePanel(1, 1), piePanel(1, 2)},
	}

	artifact, err := Image(context.Background(), req, defaultTheme(t))
	require.NoError(t, err)
	require.Equal(t, core.FormatPNG, artifact.Format)

	img, err := png.Decode(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	require.Equal(t, 2*defaultPanelWidth, img.Bounds().Dx())
	require.Equal(t, defaultPanelHeight+titleBandHeight, img.Bounds().Dy())
}

func TestImage_NoTitleSkipsBand(t *testing.T) {
	req := &core.DashboardRequest{
		Rows:   2,
		Cols:   1,
		Panels: []core.PanelSpec{linePanel(1, 1), linePanel(2, 1)},
	}

	artifact, err := Image(context.Background(), req, defaultTheme(t))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	require.Equal(t, defaultPanelWidth, img.Bounds().Dx())
	require.Equal(t, 2*defaultPanelHeight, img.Bounds().Dy())
}

func TestImage_ExplicitSize(t *testing.T) {
	req := &core.DashboardRequest{
		Rows:   1,
		Cols:   1,
		Width:  640,
		Height: 480,
		Panels: []core.PanelSpec{linePanel(1, 1)},
	}

	artifact, err := Image(context.Background(), req, defaultTheme(t))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	require.Equal(t, 640, img.Bounds().Dx())
	require.Equal(t, 480, img.Bounds().Dy())
}

func TestImage_FailingPanelFailsWhole(t *testing.T) {
	bad := piePanel(1, 2)
	bad.Pie[0].Values = []float64{0, 0}

	req := &core.DashboardRequest{
		Rows:   1,
		Cols:   2,
		Panels: []core.PanelSpec{linePanel(1, 1), bad},
	}

	_, err := Image(context.Background(), req, defaultTheme(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "panel 2")
}

func TestImage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &core.DashboardRequest{
		Rows:   1,
		Cols:   1,
		Panels: []core.PanelSpec{linePanel(1, 1)},
	}

	_, err := Image(ctx, req, defaultTheme(t))
	require.ErrorIs(t, err, context.Canceled)
}

func terminalRenderer(t *testing.T) *terminal.Renderer {
	t.Helper()
	log, err := logzerolog.New("disabled", false, false)
	require.NoError(t, err)
	return terminal.New(log)
}

func TestTerminal_StacksPanelsInOrder(t *testing.T) {
	req := &core.TerminalDashboardRequest{
		Title: "Board",
		Panels: []core.TerminalPanel{
			{
				Type:  core.ChartLine,
				Title: "First",
				Series: []core.DataSeries{
					{Name: "R", X: []float64{1, 2, 3}, Y: []float64{1, 2, 3}, NumericX: true},
				},
			},
			{
				Type:  core.ChartBar,
				Title: "Second",
				Series: []core.DataSeries{
					{Name: "B", Labels: []string{"a", "b"}, X: []float64{1, 2}, Y: []float64{10, 20}},
				},
			},
		},
		Width:  100,
		Height: 32,
	}

	artifact, err := Terminal(req, terminalRenderer(t))
	require.NoError(t, err)

	require.Contains(t, artifact.Text, "Board")
	first := strings.Index(artifact.Text, "First")
	second := strings.Index(artifact.Text, "Second")
	require.Greater(t, first, -1)
	require.Greater(t, second, first)

	require.Equal(t, terminal.EngineFull, artifact.Engine)
	require.Equal(t, core.ModeMono, artifact.Mode)
	require.Equal(t, "dark_corporate_cli", artifact.Theme)
}

func TestTerminal_ReportsWeakestTier(t *testing.T) {
	// An all-zero bar panel cannot be drawn by the plot tiers and falls
	// through to the sparkline fallback; the dashboard must surface that
	// downgrade even though the other panel rendered at full tier.
	req := &core.TerminalDashboardRequest{
		Panels: []core.TerminalPanel{
			{
				Type: core.ChartBar,
				Series: []core.DataSeries{
					{Name: "z", Labels: []string{"a"}, X: []float64{1}, Y: []float64{0}},
				},
			},
			{
				Type: core.ChartLine,
				Series: []core.DataSeries{
					{Name: "R", X: []float64{1, 2}, Y: []float64{1, 2}, NumericX: true},
				},
			},
		},
		Width:  80,
		Height: 24,
	}

	artifact, err := Terminal(req, terminalRenderer(t))
	require.NoError(t, err)
	require.Equal(t, terminal.EngineSparkline, artifact.Engine)
}
