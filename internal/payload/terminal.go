package payload

import (
	"fmt"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

// Terminal dashboards are bounded for legibility: below two panels a
// plain chart does the job, above four the composed block stops being
// readable.
const (
	minTerminalPanels = 2
	maxTerminalPanels = 4
)

// Default terminal canvas sizes, in character cells.
const (
	defaultTerminalWidth       = 100
	defaultTerminalHeight      = 28
	defaultTermDashboardWidth  = 120
	defaultTermDashboardHeight = 32
)

// ParseTerminal validates the raw arguments of a terminal chart call.
func ParseTerminal(args map[string]any) (*core.TerminalRequest, error) {
	req := &core.TerminalRequest{}

	typStr, err := optString(args, "type", "")
	if err != nil {
		return nil, err
	}
	req.Type = core.ChartType(typStr)
	if !req.Type.Terminal() {
		return nil, core.NewFieldError("type",
			"terminal chart type must be one of: line, bar, scatter, area")
	}

	if req.Title, err = optString(args, "title", ""); err != nil {
		return nil, err
	}
	if req.XLabel, err = optString(args, "x_label", ""); err != nil {
		return nil, err
	}
	if req.YLabel, err = optString(args, "y_label", ""); err != nil {
		return nil, err
	}

	if req.Series, err = parseSeriesList("data", args["data"]); err != nil {
		return nil, err
	}

	if req.Width, err = optInt(args, "width", defaultTerminalWidth); err != nil {
		return nil, err
	}
	if req.Height, err = optInt(args, "height", defaultTerminalHeight); err != nil {
		return nil, err
	}

	if req.Theme, err = themeRef(args); err != nil {
		return nil, err
	}
	if req.UseColor, err = optBool(args, "use_color", true); err != nil {
		return nil, err
	}
	if req.ForceMono, err = optBool(args, "force_mono", false); err != nil {
		return nil, err
	}
	if req.RawOutput, err = optBool(args, "raw_output", false); err != nil {
		return nil, err
	}

	return req, nil
}

// ParseTerminalDashboard validates the raw arguments of a terminal
// dashboard call, including the 2-4 panel bound.
func ParseTerminalDashboard(args map[string]any) (*core.TerminalDashboardRequest, error) {
	req := &core.TerminalDashboardRequest{}

	var err error
	if req.Title, err = optString(args, "title", ""); err != nil {
		return nil, err
	}

	rawPanels, ok := args["panels"].([]any)
	if !ok || len(rawPanels) == 0 {
		return nil, core.NewFieldError("panels", "must be a non-empty array")
	}
	if len(rawPanels) < minTerminalPanels || len(rawPanels) > maxTerminalPanels {
		return nil, core.NewFieldError("panels",
			"terminal dashboards support %d to %d panels, got %d",
			minTerminalPanels, maxTerminalPanels, len(rawPanels))
	}

	req.Panels = make([]core.TerminalPanel, 0, len(rawPanels))
	for i, raw := range rawPanels {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, core.NewFieldError(fmt.Sprintf("panels[%d]", i), "must be an object")
		}
		panel, err := parseTerminalPanel(fmt.Sprintf("panels[%d]", i), entry)
		if err != nil {
			return nil, err
		}
		req.Panels = append(req.Panels, panel)
	}

	if req.Width, err = optInt(args, "width", defaultTermDashboardWidth); err != nil {
		return nil, err
	}
	if req.Height, err = optInt(args, "height", defaultTermDashboardHeight); err != nil {
		return nil, err
	}

	if req.Theme, err = themeRef(args); err != nil {
		return nil, err
	}
	if req.UseColor, err = optBool(args, "use_color", true); err != nil {
		return nil, err
	}
	if req.ForceMono, err = optBool(args, "force_mono", false); err != nil {
		return nil, err
	}
	if req.RawOutput, err = optBool(args, "raw_output", false); err != nil {
		return nil, err
	}

	return req, nil
}

func parseTerminalPanel(field string, entry map[string]any) (core.TerminalPanel, error) {
	var panel core.TerminalPanel

	typStr, err := optString(entry, "type", "")
	if err != nil {
		return panel, err
	}
	panel.Type = core.ChartType(typStr)
	if !panel.Type.Terminal() {
		return panel, core.NewFieldError(field+".type",
			"terminal chart type must be one of: line, bar, scatter, area")
	}

	if panel.Title, err = optString(entry, "title", ""); err != nil {
		return panel, err
	}
	if panel.XLabel, err = optString(entry, "x_label", ""); err != nil {
		return panel, err
	}
	if panel.YLabel, err = optString(entry, "y_label", ""); err != nil {
		return panel, err
	}

	if panel.Series, err = parseSeriesList(field+".data", entry["data"]); err != nil {
		return panel, err
	}

	return panel, nil
}
