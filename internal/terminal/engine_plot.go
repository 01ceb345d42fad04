package terminal

import (
	"fmt"
	"strings"

	"github.com/google/goterm/term"
	"github.com/guptarohit/asciigraph"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

// plotEngine draws line, scatter and area series as a braille-less
// ASCII plot and bar series as horizontal glyph rows. The stripped
// variant drops the caption, legend and per-series coloring so it can
// survive terminals that choke on the decorated output.
type plotEngine struct {
	stripped bool
}

func (e *plotEngine) Name() string {
	if e.stripped {
		return EngineStripped
	}
	return EngineFull
}

func (e *plotEngine) SupportsColor() bool {
	return !e.stripped
}

func (e *plotEngine) Render(req *core.TerminalRequest, th *theme.CLITheme, color bool) (string, error) {
	if req.Type == core.ChartBar {
		return e.renderBars(req, th, color)
	}
	return e.renderPlot(req, th, color)
}

func (e *plotEngine) renderPlot(req *core.TerminalRequest, th *theme.CLITheme, color bool) (string, error) {
	series := make([][]float64, 0, len(req.Series))
	names := make([]string, 0, len(req.Series))
	for _, s := range req.Series {
		if len(s.Y) == 0 {
			return "", fmt.Errorf("series %q has no values", s.Name)
		}
		series = append(series, s.Y)
		names = append(names, s.Name)
	}

	opts := []asciigraph.Option{
		asciigraph.Width(plotWidth(req.Width)),
		asciigraph.Height(plotHeight(req.Height, e.stripped)),
	}
	if !e.stripped {
		if req.Title != "" {
			opts = append(opts, asciigraph.Caption(req.Title))
		}
		// asciigraph legends index the colors slice and always emit
		// ANSI escapes, so in monochrome the legend is written by hand.
		if color {
			opts = append(opts,
				asciigraph.SeriesLegends(names...),
				asciigraph.SeriesColors(seriesColors(th, len(series))...))
		}
	}

	plot := asciigraph.PlotMany(series, opts...)

	var b strings.Builder
	b.WriteString(plot)
	if !e.stripped {
		if !color && len(names) > 1 {
			fmt.Fprintf(&b, "\nLegend: %s", strings.Join(names, ", "))
		}
		writeAxisLabels(&b, req)
	}
	return b.String(), nil
}

// renderBars draws one row per category and series, bar length scaled
// to the widest value. Colored output uses full blocks tinted per
// series; mono output falls back to the theme glyph.
func (e *plotEngine) renderBars(req *core.TerminalRequest, th *theme.CLITheme, color bool) (string, error) {
	maxVal := 0.0
	labelWidth := 0
	for _, s := range req.Series {
		for i, v := range s.Y {
			if v > maxVal {
				maxVal = v
			}
			if n := len(barLabel(s, i)); n > labelWidth {
				labelWidth = n
			}
		}
	}
	if maxVal <= 0 {
		return "", fmt.Errorf("bar chart needs at least one positive value")
	}

	barWidth := req.Width - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	glyph := "█"
	if !color {
		glyph = th.MonoSymbol
	}

	var b strings.Builder
	if !e.stripped && req.Title != "" {
		b.WriteString(req.Title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len(req.Title)))
		b.WriteByte('\n')
	}
	for si, s := range req.Series {
		if !e.stripped && len(req.Series) > 1 {
			fmt.Fprintf(&b, "%s:\n", s.Name)
		}
		for i, v := range s.Y {
			n := int(v / maxVal * float64(barWidth))
			if v > 0 && n == 0 {
				n = 1
			}
			bar := strings.Repeat(glyph, n)
			if color {
				bar = colorize(th.Color(si), bar)
			}
			fmt.Fprintf(&b, "%-*s | %s %.2f\n", labelWidth, barLabel(s, i), bar, v)
		}
	}
	if !e.stripped {
		writeAxisLabels(&b, req)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func barLabel(s core.DataSeries, i int) string {
	if i < len(s.Labels) {
		return s.Labels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

func plotWidth(w int) int {
	// Leave room for the y axis gutter asciigraph adds on the left.
	w -= 12
	if w < 40 {
		w = 40
	}
	return w
}

func plotHeight(h int, stripped bool) int {
	h -= 8
	if stripped {
		h -= 4
	}
	if h < 8 {
		h = 8
	}
	return h
}

func seriesColors(th *theme.CLITheme, n int) []asciigraph.AnsiColor {
	colors := make([]asciigraph.AnsiColor, n)
	for i := range colors {
		if c, ok := asciigraph.ColorNames[th.Color(i)]; ok {
			colors[i] = c
		} else {
			colors[i] = asciigraph.Default
		}
	}
	return colors
}

func writeAxisLabels(b *strings.Builder, req *core.TerminalRequest) {
	if req.XLabel != "" {
		fmt.Fprintf(b, "\nX: %s", req.XLabel)
	}
	if req.YLabel != "" {
		fmt.Fprintf(b, "\nY: %s", req.YLabel)
	}
}

func colorize(name, s string) string {
	switch name {
	case "blue":
		return term.Bluef("%s", s)
	case "green":
		return term.Greenf("%s", s)
	case "yellow":
		return term.Yellowf("%s", s)
	case "magenta":
		return term.Magentaf("%s", s)
	case "cyan":
		return term.Cyanf("%s", s)
	case "red":
		return term.Redf("%s", s)
	case "white":
		return term.Whitef("%s", s)
	default:
		return s
	}
}
