package dashboard

import (
	"fmt"
	"strings"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/terminal"
)

// Terminal renders a 2-4 panel dashboard as stacked text sections. The
// reported engine is the weakest tier any panel fell back to, so a
// partial downgrade is visible to the caller.
func Terminal(req *core.TerminalDashboardRequest, r *terminal.Renderer) (*core.TerminalArtifact, error) {
	panelHeight := req.Height / len(req.Panels)
	if panelHeight < 12 {
		panelHeight = 12
	}

	var b strings.Builder
	if req.Title != "" {
		b.WriteString(req.Title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len(req.Title)))
		b.WriteString("\n\n")
	}

	weakest := ""
	mode := core.ModeANSI
	themeName := ""
	separator := strings.Repeat("-", req.Width)

	for i, panel := range req.Panels {
		sub := &core.TerminalRequest{
			Type:      panel.Type,
			Title:     panel.Title,
			XLabel:    panel.XLabel,
			YLabel:    panel.YLabel,
			Series:    panel.Series,
			Theme:     req.Theme,
			Width:     req.Width,
			Height:    panelHeight,
			UseColor:  req.UseColor,
			ForceMono: req.ForceMono,
		}

		artifact, err := r.Chart(sub)
		if err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i+1, panel.Type, err)
		}

		if weakest == "" || r.Rank(artifact.Engine) > r.Rank(weakest) {
			weakest = artifact.Engine
		}
		if artifact.Mode == core.ModeMono {
			mode = core.ModeMono
		}
		themeName = artifact.Theme

		if i > 0 {
			b.WriteString(separator)
			b.WriteByte('\n')
		}
		b.WriteString(artifact.Text)
		b.WriteString("\n\n")
	}

	return &core.TerminalArtifact{
		Text:   strings.TrimRight(b.String(), "\n"),
		Engine: weakest,
		Mode:   mode,
		Theme:  themeName,
	}, nil
}
