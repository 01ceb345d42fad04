package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/vvkuznetsov/charts-mcp/internal/config"
	logzerolog "github.com/vvkuznetsov/charts-mcp/pkg/logger/zerolog"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	log, err := logzerolog.New("disabled", false, false)
	require.NoError(t, err)

	cfg := &config.Config{
		OutputDir:     t.TempDir(),
		RenderTimeout: 30 * time.Second,
	}
	return New(cfg, log)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			return tc.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &body))
	return body
}

func lineChartArgs() map[string]any {
	return map[string]any{
		"title":  "Revenue",
		"format": "png",
		"data": []any{
			map[string]any{"name": "R", "x": []any{"Jan", "Feb", "Mar"}, "y": []any{1.0, 2.0, 3.0}},
		},
	}
}

func TestInvoke_LineChart(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), ToolLineChart, lineChartArgs())
	require.NoError(t, err)
	require.False(t, result.IsError)

	body := resultJSON(t, result)
	require.Equal(t, true, body["success"])
	require.Equal(t, "png", body["format"])

	hasImage := false
	for _, content := range result.Content {
		if _, ok := mcp.AsImageContent(content); ok {
			hasImage = true
		}
	}
	require.True(t, hasImage)
}

func TestInvoke_SaveToDisk(t *testing.T) {
	s := testServer(t)

	args := lineChartArgs()
	args["save_to_disk"] = true
	args["filename"] = "revenue"

	result, err := s.Invoke(context.Background(), ToolLineChart, args)
	require.NoError(t, err)
	require.False(t, result.IsError)

	body := resultJSON(t, result)
	require.Equal(t, true, body["saved"])
	path, ok := body["path"].(string)
	require.True(t, ok)
	require.FileExists(t, path)
}

func TestInvoke_ValidationErrorEnvelope(t *testing.T) {
	s := testServer(t)

	args := lineChartArgs()
	args["data"] = []any{map[string]any{"name": "bad", "y": []any{"x"}}}

	result, err := s.Invoke(context.Background(), ToolLineChart, args)
	require.NoError(t, err)
	require.True(t, result.IsError)

	body := resultJSON(t, result)
	require.Equal(t, false, body["success"])
	require.Equal(t, "validation", body["kind"])
}

func TestInvoke_ThemeNotFound(t *testing.T) {
	s := testServer(t)

	args := lineChartArgs()
	args["theme_preset"] = "nope"

	result, err := s.Invoke(context.Background(), ToolLineChart, args)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "theme_not_found", resultJSON(t, result)["kind"])
}

func TestInvoke_TerminalChartRawOutput(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), ToolTerminalChart, map[string]any{
		"type":       "line",
		"title":      "Trend",
		"raw_output": true,
		"use_color":  false,
		"data": []any{
			map[string]any{"name": "R", "y": []any{1.0, 2.0, 3.0}},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	require.Contains(t, text, "Trend")
	require.False(t, json.Valid([]byte(text)))
}

func TestInvoke_TerminalChartMetadataEnvelope(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), ToolTerminalChart, map[string]any{
		"type":      "line",
		"use_color": false,
		"data": []any{
			map[string]any{"name": "R", "y": []any{1.0, 2.0, 3.0}},
		},
	})
	require.NoError(t, err)

	body := resultJSON(t, result)
	require.Equal(t, true, body["success"])
	require.NotEmpty(t, body["text"])
	require.Equal(t, "asciigraph", body["engine"])
	require.Equal(t, "mono", body["render_mode"])
	require.Equal(t, "dark_corporate_cli", body["theme"])
}

func TestInvoke_TerminalDashboardMetadataEnvelope(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), ToolTerminalDashboard, map[string]any{
		"use_color": false,
		"panels": []any{
			map[string]any{
				"type": "line",
				"data": []any{map[string]any{"name": "R", "y": []any{1.0, 2.0, 3.0}}},
			},
			map[string]any{
				"type": "bar",
				"data": []any{map[string]any{"name": "B", "x": []any{1.0, 2.0}, "y": []any{10.0, 20.0}}},
			},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	body := resultJSON(t, result)
	require.Equal(t, true, body["success"])
	require.Equal(t, "asciigraph", body["engine"])
	require.NotEmpty(t, body["text"])
}

func TestInvoke_Dashboard(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), ToolDashboard, map[string]any{
		"rows":   1.0,
		"cols":   1.0,
		"format": "png",
		"panels": []any{
			map[string]any{
				"type": "line", "row": 1.0, "col": 1.0,
				"data": []any{map[string]any{"name": "R", "y": []any{1.0, 2.0}}},
			},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestInvoke_ListThemePresets(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), ToolListThemePresets, map[string]any{})
	require.NoError(t, err)
	require.False(t, result.IsError)

	body := resultJSON(t, result)
	require.Equal(t, "clean_light", body["default_image_preset"])
	require.Equal(t, "dark_corporate_cli", body["default_terminal_preset"])
	require.Len(t, body["image_presets"], 4)
	require.Len(t, body["terminal_presets"], 2)
}

func TestInvoke_UnknownTool(t *testing.T) {
	s := testServer(t)

	result, err := s.Invoke(context.Background(), "create_hologram", nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestInvoke_TimeoutEnvelope(t *testing.T) {
	log, err := logzerolog.New("disabled", false, false)
	require.NoError(t, err)
	s := New(&config.Config{RenderTimeout: time.Nanosecond}, log)

	result, err := s.Invoke(context.Background(), ToolLineChart, lineChartArgs())
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "timeout", resultJSON(t, result)["kind"])
}

func TestToolNames_CoversSurface(t *testing.T) {
	s := testServer(t)
	require.Len(t, s.ToolNames(), 9)
}
