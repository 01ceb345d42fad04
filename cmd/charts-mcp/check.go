package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vvkuznetsov/charts-mcp/internal/server"
)

// samplePayloads holds one known-good request per tool so an operator
// can smoke-test the pipeline without an MCP client attached.
var samplePayloads = map[string]map[string]any{
	server.ToolLineChart: {
		"title":    "Monthly Revenue",
		"x_label":  "Month",
		"y_label":  "k USD",
		"format":   "png",
		"filename": "line_revenue",
		"data": []any{
			map[string]any{"name": "Online", "x": []any{"Jan", "Feb", "Mar", "Apr"}, "y": []any{120.0, 140.0, 155.0, 170.0}},
			map[string]any{"name": "Retail", "x": []any{"Jan", "Feb", "Mar", "Apr"}, "y": []any{95.0, 102.0, 118.0, 130.0}},
		},
	},
	server.ToolBarChart: {
		"title":    "ROI by Channel",
		"x_label":  "Channel",
		"y_label":  "%",
		"format":   "png",
		"filename": "bar_roi",
		"barmode":  "group",
		"data": []any{
			map[string]any{"name": "Q1", "x": []any{"Search", "Social", "Email"}, "y": []any{132.0, 108.0, 95.0}},
			map[string]any{"name": "Q2", "x": []any{"Search", "Social", "Email"}, "y": []any{140.0, 115.0, 102.0}},
		},
	},
	server.ToolPieChart: {
		"title":    "Budget Mix",
		"format":   "png",
		"filename": "pie_budget",
		"hole":     0.45,
		"data": []any{
			map[string]any{
				"name":   "Channels",
				"labels": []any{"Search", "Social", "Email", "Affiliate"},
				"values": []any{42.0, 28.0, 20.0, 10.0},
			},
		},
	},
	server.ToolScatterChart: {
		"title":     "Spend vs Revenue",
		"x_label":   "Spend",
		"y_label":   "Revenue",
		"format":    "png",
		"filename":  "scatter_spend_revenue",
		"show_line": true,
		"data": []any{
			map[string]any{
				"name": "Campaigns",
				"x":    []any{20.0, 30.0, 40.0, 55.0, 70.0, 90.0},
				"y":    []any{62.0, 84.0, 109.0, 150.0, 201.0, 248.0},
			},
		},
	},
	server.ToolAreaChart: {
		"title":    "Traffic by Source",
		"x_label":  "Week",
		"y_label":  "Visits",
		"format":   "png",
		"filename": "area_traffic",
		"stack":    true,
		"opacity":  0.65,
		"data": []any{
			map[string]any{"name": "Organic", "x": []any{"W1", "W2", "W3", "W4"}, "y": []any{3200.0, 3600.0, 3900.0, 4200.0}},
			map[string]any{"name": "Paid", "x": []any{"W1", "W2", "W3", "W4"}, "y": []any{1400.0, 1700.0, 2100.0, 2300.0}},
			map[string]any{"name": "Social", "x": []any{"W1", "W2", "W3", "W4"}, "y": []any{900.0, 1100.0, 1300.0, 1500.0}},
		},
	},
	server.ToolDashboard: {
		"title":    "Executive Dashboard",
		"rows":     1.0,
		"cols":     2.0,
		"format":   "png",
		"filename": "combined_exec",
		"panels": []any{
			map[string]any{
				"type":    "line",
				"row":     1.0,
				"col":     1.0,
				"title":   "Revenue Trend",
				"x_label": "Month",
				"y_label": "k USD",
				"data": []any{
					map[string]any{
						"name": "Revenue",
						"x":    []any{"Jan", "Feb", "Mar", "Apr", "May"},
						"y":    []any{120.0, 132.0, 148.0, 160.0, 178.0},
					},
				},
				"options": map[string]any{"line_shape": "spline"},
			},
			map[string]any{
				"type":  "pie",
				"row":   1.0,
				"col":   2.0,
				"title": "Budget Split",
				"data": []any{
					map[string]any{
						"name":   "Mix",
						"labels": []any{"Search", "Social", "Email"},
						"values": []any{45.0, 35.0, 20.0},
					},
				},
				"options": map[string]any{"hole": 0.4},
			},
		},
	},
	server.ToolTerminalChart: {
		"type":       "line",
		"title":      "Terminal Revenue Trend",
		"x_label":    "Month",
		"y_label":    "k USD",
		"theme":      "dark_corporate_cli",
		"raw_output": false,
		"use_color":  false,
		"data": []any{
			map[string]any{"name": "Revenue", "x": []any{"Jan", "Feb", "Mar", "Apr"}, "y": []any{120.0, 132.0, 148.0, 160.0}},
		},
	},
	server.ToolTerminalDashboard: {
		"title":      "Terminal Marketing Dashboard",
		"theme":      "dark_corporate_cli",
		"raw_output": false,
		"use_color":  false,
		"panels": []any{
			map[string]any{
				"type":    "line",
				"title":   "Revenue",
				"x_label": "Month",
				"y_label": "k USD",
				"data": []any{
					map[string]any{"name": "Revenue", "x": []any{"Jan", "Feb", "Mar", "Apr"}, "y": []any{120.0, 132.0, 148.0, 160.0}},
				},
			},
			map[string]any{
				"type":    "bar",
				"title":   "ROI",
				"x_label": "Channel",
				"y_label": "%",
				"data": []any{
					map[string]any{"name": "ROI", "x": []any{"Search", "Social", "Email"}, "y": []any{136.0, 112.0, 96.0}},
				},
			},
		},
	},
	server.ToolListThemePresets: {},
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	s := server.New(cfg, log)

	tools := sortedToolNames(s)
	if checkTool != "" {
		if _, ok := samplePayloads[checkTool]; !ok {
			return fmt.Errorf("no sample payload for tool %q", checkTool)
		}
		tools = []string{checkTool}
	}

	bar := progressbar.Default(int64(len(tools)))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Tool", "Status", "Detail"})

	failures := 0
	for _, tool := range tools {
		payload := clonePayload(samplePayloads[tool])
		if checkSave {
			payload["save_to_disk"] = true
		}

		result, err := s.Invoke(cmd.Context(), tool, payload)
		switch {
		case err != nil:
			failures++
			table.Append([]string{tool, "ERROR", truncateDetail(err.Error())})
		case result.IsError:
			failures++
			table.Append([]string{tool, "FAIL", truncateDetail(firstText(result))})
		default:
			table.Append([]string{tool, "OK", truncateDetail(firstText(result))})
		}
		bar.Add(1)
	}

	table.Render()
	if failures > 0 {
		return fmt.Errorf("%d of %d tool checks failed", failures, len(tools))
	}
	return nil
}

func clonePayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}

func firstText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			return tc.Text
		}
	}
	return ""
}

func truncateDetail(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 72 {
		return s[:72] + "..."
	}
	return s
}
