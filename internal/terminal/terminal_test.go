package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
	logzerolog "github.com/vvkuznetsov/charts-mcp/pkg/logger/zerolog"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logzerolog.New("disabled", false, false)
	require.NoError(t, err)
	return log
}

func lineRequest() *core.TerminalRequest {
	return &core.TerminalRequest{
		Type:   core.ChartLine,
		Title:  "Trend",
		XLabel: "Month",
		YLabel: "k USD",
		Series: []core.DataSeries{
			{Name: "Revenue", Labels: []string{"Jan", "Feb", "Mar"}, X: []float64{1, 2, 3}, Y: []float64{120, 132, 148}},
		},
		Width:    80,
		Height:   24,
		UseColor: false,
	}
}

type stubEngine struct {
	name  string
	color bool
	fail  bool
	panic bool
}

func (e *stubEngine) Name() string        { return e.name }
func (e *stubEngine) SupportsColor() bool { return e.color }

func (e *stubEngine) Render(_ *core.TerminalRequest, _ *theme.CLITheme, _ bool) (string, error) {
	if e.panic {
		panic("unstable engine")
	}
	if e.fail {
		return "", errors.New("engine down")
	}
	return "rendered by " + e.name, nil
}

func TestChart_FirstEngineWins(t *testing.T) {
	r := New(testLogger(t), WithEngines(
		&stubEngine{name: "rich"},
		&stubEngine{name: "plain"},
	))

	artifact, err := r.Chart(lineRequest())
	require.NoError(t, err)
	require.Equal(t, "rich", artifact.Engine)
}

func TestChart_FallsBackOnFailure(t *testing.T) {
	r := New(testLogger(t), WithEngines(
		&stubEngine{name: "rich", fail: true},
		&stubEngine{name: "plain"},
	))

	artifact, err := r.Chart(lineRequest())
	require.NoError(t, err)
	require.Equal(t, "plain", artifact.Engine)
	require.Equal(t, "rendered by plain", artifact.Text)
}

func TestChart_PanicAdvancesTier(t *testing.T) {
	r := New(testLogger(t), WithEngines(
		&stubEngine{name: "rich", panic: true},
		&stubEngine{name: "plain"},
	))

	artifact, err := r.Chart(lineRequest())
	require.NoError(t, err)
	require.Equal(t, "plain", artifact.Engine)
}

func TestChart_AllEnginesFail(t *testing.T) {
	r := New(testLogger(t), WithEngines(
		&stubEngine{name: "a", fail: true},
		&stubEngine{name: "b", fail: true},
	))

	_, err := r.Chart(lineRequest())
	require.ErrorIs(t, err, core.ErrRenderFailed)
}

func TestRank_OrdersByTier(t *testing.T) {
	r := New(testLogger(t))
	require.Less(t, r.Rank(EngineFull), r.Rank(EngineStripped))
	require.Less(t, r.Rank(EngineStripped), r.Rank(EngineSparkline))
	require.Greater(t, r.Rank("unknown"), r.Rank(EngineSparkline))
}

func TestChart_DefaultChainRendersLine(t *testing.T) {
	r := New(testLogger(t))

	artifact, err := r.Chart(lineRequest())
	require.NoError(t, err)
	require.Equal(t, EngineFull, artifact.Engine)
	require.Equal(t, core.ModeMono, artifact.Mode)
	require.Equal(t, "dark_corporate_cli", artifact.Theme)
	require.Contains(t, artifact.Text, "Trend")
	require.Contains(t, artifact.Text, "X: Month")
	require.Contains(t, artifact.Text, "Y: k USD")
}

func TestChart_MonoMultiSeriesStaysFullTier(t *testing.T) {
	req := lineRequest()
	req.Series = append(req.Series, core.DataSeries{
		Name: "Costs", X: []float64{1, 2, 3}, Y: []float64{80, 90, 95},
	})
	req.ForceMono = true

	artifact, err := New(testLogger(t)).Chart(req)
	require.NoError(t, err)
	require.Equal(t, EngineFull, artifact.Engine)
	require.NotContains(t, artifact.Text, "\x1b[")
	require.Contains(t, artifact.Text, "Legend: Revenue, Costs")
}

func TestChart_ForceMonoStripsColor(t *testing.T) {
	req := lineRequest()
	req.UseColor = true
	req.ForceMono = true

	artifact, err := New(testLogger(t)).Chart(req)
	require.NoError(t, err)
	require.Equal(t, core.ModeMono, artifact.Mode)
	require.NotContains(t, artifact.Text, "\x1b[")
}

func TestChart_NoColorEnvWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	req := lineRequest()
	req.UseColor = true

	artifact, err := New(testLogger(t)).Chart(req)
	require.NoError(t, err)
	require.Equal(t, core.ModeMono, artifact.Mode)
	require.NotContains(t, artifact.Text, "\x1b[")
}

func TestChart_DumbTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")

	req := lineRequest()
	req.UseColor = true

	artifact, err := New(testLogger(t)).Chart(req)
	require.NoError(t, err)
	require.Equal(t, core.ModeMono, artifact.Mode)
}

func TestPlotEngine_MonoBars(t *testing.T) {
	req := &core.TerminalRequest{
		Type:  core.ChartBar,
		Title: "ROI",
		Series: []core.DataSeries{
			{Name: "ROI", Labels: []string{"Search", "Social"}, X: []float64{1, 2}, Y: []float64{132, 96}},
		},
		Width:  80,
		Height: 20,
	}
	th := theme.ResolveCLI(core.ThemeRef{})

	text, err := (&plotEngine{}).Render(req, th, false)
	require.NoError(t, err)
	require.Contains(t, text, "Search")
	require.Contains(t, text, th.MonoSymbol)
	require.Contains(t, text, "132.00")
}

func TestPlotEngine_BarsNeedPositiveValue(t *testing.T) {
	req := &core.TerminalRequest{
		Type: core.ChartBar,
		Series: []core.DataSeries{
			{Name: "z", Labels: []string{"a"}, X: []float64{1}, Y: []float64{0}},
		},
		Width: 80,
	}

	_, err := (&plotEngine{}).Render(req, theme.ResolveCLI(core.ThemeRef{}), false)
	require.Error(t, err)
}

func TestSparklineEngine_GlyphRow(t *testing.T) {
	req := lineRequest()
	th := theme.ResolveCLI(core.ThemeRef{})

	text, err := (&sparklineEngine{}).Render(req, th, false)
	require.NoError(t, err)
	require.Contains(t, text, "Revenue")
	require.Contains(t, text, "min=120.00")
	require.Contains(t, text, "max=148.00")
	require.True(t, strings.ContainsAny(text, "▁▂▃▄▅▆▇█"))
}

func TestSparkline_FlatSeriesUsesMiddleGlyph(t *testing.T) {
	row := sparkline([]float64{5, 5, 5}, 40)
	require.Equal(t, strings.Repeat(string(sparkGlyphs[len(sparkGlyphs)/2]), 3), row)
}

func TestSparkline_TruncatesWideSeries(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i)
	}
	row := sparkline(values, 10)
	require.True(t, strings.HasSuffix(row, "..."))
	require.Equal(t, 10+3, len([]rune(row)))
}
