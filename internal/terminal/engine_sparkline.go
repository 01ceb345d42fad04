package terminal

import (
	"fmt"
	"strings"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// sparklineEngine is the last tier. It compresses each series into a
// single glyph row with a min/max summary and never emits escape
// sequences, so it works on anything that can print unicode.
type sparklineEngine struct{}

func (e *sparklineEngine) Name() string { return EngineSparkline }
func (e *sparklineEngine) SupportsColor() bool { return false }

func (e *sparklineEngine) Render(req *core.TerminalRequest, th *theme.CLITheme, _ bool) (string, error) {
	var b strings.Builder
	if req.Title != "" {
		b.WriteString(req.Title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", len(req.Title)))
		b.WriteByte('\n')
	}

	nameWidth := 0
	for _, s := range req.Series {
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
	}

	for _, s := range req.Series {
		if len(s.Y) == 0 {
			return "", fmt.Errorf("series %q has no values", s.Name)
		}
		row := sparkline(s.Y, req.Width-nameWidth-30)
		mn, mx := minMax(s.Y)
		fmt.Fprintf(&b, "%-*s %s  min=%.2f max=%.2f\n", nameWidth, s.Name, row, mn, mx)
	}

	writeAxisLabels(&b, req)
	return strings.TrimRight(b.String(), "\n"), nil
}

// sparkline maps values onto the eight block glyphs; flat series sit
// on the middle glyph so they stay visible.
func sparkline(values []float64, maxWidth int) string {
	if maxWidth < 8 {
		maxWidth = 8
	}
	truncated := false
	if len(values) > maxWidth {
		values = values[:maxWidth]
		truncated = true
	}

	mn, mx := minMax(values)
	span := mx - mn

	var b strings.Builder
	for _, v := range values {
		idx := len(sparkGlyphs) / 2
		if span > 0 {
			idx = int((v - mn) / span * float64(len(sparkGlyphs)-1))
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	if truncated {
		b.WriteString("...")
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	mn, mx := values[0], values[0]
	for _, v := range values[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return mn, mx
}
