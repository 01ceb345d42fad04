package payload

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

// maxDashboardPanels bounds image dashboards to something drawable.
const maxDashboardPanels = 12

// ParseDashboard validates the raw arguments of a combined dashboard
// call. Grid cells must be in bounds and unique; every panel must be a
// valid chart on its own or the whole dashboard is rejected.
func ParseDashboard(args map[string]any) (*core.DashboardRequest, core.ExportOptions, error) {
	req := &core.DashboardRequest{}

	var err error
	if req.Title, err = optString(args, "title", ""); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Rows, err = optInt(args, "rows", 0); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Cols, err = optInt(args, "cols", 0); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Rows < 1 {
		return nil, core.ExportOptions{}, core.NewFieldError("rows", "must be at least 1")
	}
	if req.Cols < 1 {
		return nil, core.ExportOptions{}, core.NewFieldError("cols", "must be at least 1")
	}

	if req.Width, err = optInt(args, "width", 0); err != nil {
		return nil, core.ExportOptions{}, err
	}
	if req.Height, err = optInt(args, "height", 0); err != nil {
		return nil, core.ExportOptions{}, err
	}

	if req.Theme, err = themeRef(args); err != nil {
		return nil, core.ExportOptions{}, err
	}

	rawPanels, ok := args["panels"].([]any)
	if !ok || len(rawPanels) == 0 {
		return nil, core.ExportOptions{}, core.NewFieldError("panels", "must be a non-empty array")
	}
	if len(rawPanels) > maxDashboardPanels {
		return nil, core.ExportOptions{}, core.NewFieldError("panels",
			"dashboards support at most %d panels, got %d", maxDashboardPanels, len(rawPanels))
	}

	req.Panels = make([]core.PanelSpec, 0, len(rawPanels))
	for i, raw := range rawPanels {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, core.ExportOptions{}, core.NewFieldError(fmt.Sprintf("panels[%d]", i), "must be an object")
		}
		panel, err := parsePanel(fmt.Sprintf("panels[%d]", i), entry, req.Rows, req.Cols)
		if err != nil {
			return nil, core.ExportOptions{}, err
		}
		req.Panels = append(req.Panels, panel)
	}

	dupes := lo.FindDuplicatesBy(req.Panels, func(p core.PanelSpec) string {
		return fmt.Sprintf("%d:%d", p.Row, p.Col)
	})
	if len(dupes) > 0 {
		return nil, core.ExportOptions{}, core.NewFieldError("panels",
			"duplicate grid cell (row=%d, col=%d)", dupes[0].Row, dupes[0].Col)
	}

	opts, err := parseExportOptions(args, "dashboard")
	if err != nil {
		return nil, core.ExportOptions{}, err
	}
	if opts.Format == core.FormatSVG {
		// Panels are composed on a raster canvas; vector output cannot
		// embed them.
		return nil, core.ExportOptions{}, core.NewFieldError("format",
			"svg is not supported for dashboards; use png or base64")
	}

	return req, opts, nil
}

func parsePanel(field string, entry map[string]any, rows, cols int) (core.PanelSpec, error) {
	var panel core.PanelSpec

	typStr, err := optString(entry, "type", "")
	if err != nil {
		return panel, err
	}
	panel.Type = core.ChartType(typStr)
	if !panel.Type.Valid() {
		return panel, core.NewFieldError(field+".type",
			"must be one of: line, bar, pie, scatter, area")
	}

	if panel.Row, err = optInt(entry, "row", 0); err != nil {
		return panel, err
	}
	if panel.Col, err = optInt(entry, "col", 0); err != nil {
		return panel, err
	}
	if panel.Row < 1 || panel.Row > rows {
		return panel, core.NewFieldError(field+".row", "must be between 1 and %d", rows)
	}
	if panel.Col < 1 || panel.Col > cols {
		return panel, core.NewFieldError(field+".col", "must be between 1 and %d", cols)
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

	if panel.Type == core.ChartPie {
		pie, err := parsePieSeriesList(field+".data", entry["data"])
		if err != nil {
			return panel, err
		}
		if len(pie) > 1 {
			return panel, core.NewFieldError(field+".data", "pie panels take exactly one series")
		}
		panel.Pie = pie
	} else {
		series, err := parseSeriesList(field+".data", entry["data"])
		if err != nil {
			return panel, err
		}
		panel.Series = series
	}

	optionArgs, _ := entry["options"].(map[string]any)
	if optionArgs == nil {
		optionArgs = map[string]any{}
	}
	if panel.Options, err = parseChartOptions(panel.Type, optionArgs); err != nil {
		return panel, err
	}
	if err = validateAreaStack(panel.Type, panel.Series, panel.Options); err != nil {
		return panel, err
	}

	return panel, nil
}
