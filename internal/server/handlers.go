package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/dashboard"
	"github.com/vvkuznetsov/charts-mcp/internal/payload"
	"github.com/vvkuznetsov/charts-mcp/internal/render"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

func (s *Server) handleChartTool(typ core.ChartType) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.withTimeout(ctx, req.Params.Name, func(ctx context.Context) (*mcp.CallToolResult, error) {
			parsed, opts, err := payload.ParseChart(typ, req.GetArguments())
			if err != nil {
				return s.errorResult(err), nil
			}
			th, err := theme.Resolve(parsed.Theme)
			if err != nil {
				return s.errorResult(err), nil
			}

			artifact, err := render.Chart(parsed, th, renderFormat(opts.Format))
			if err != nil {
				return s.errorResult(err), nil
			}

			outcome := s.exports.Export(artifact, opts)
			return s.imageResult(artifact, outcome), nil
		})
	}
}

func (s *Server) handleDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withTimeout(ctx, req.Params.Name, func(ctx context.Context) (*mcp.CallToolResult, error) {
		parsed, opts, err := payload.ParseDashboard(req.GetArguments())
		if err != nil {
			return s.errorResult(err), nil
		}
		th, err := theme.Resolve(parsed.Theme)
		if err != nil {
			return s.errorResult(err), nil
		}

		artifact, err := dashboard.Image(ctx, parsed, th)
		if err != nil {
			return s.errorResult(err), nil
		}

		outcome := s.exports.Export(artifact, opts)
		return s.imageResult(artifact, outcome), nil
	})
}

func (s *Server) handleTerminalChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withTimeout(ctx, req.Params.Name, func(ctx context.Context) (*mcp.CallToolResult, error) {
		parsed, err := payload.ParseTerminal(req.GetArguments())
		if err != nil {
			return s.errorResult(err), nil
		}

		artifact, err := s.terminal.Chart(parsed)
		if err != nil {
			return s.errorResult(err), nil
		}
		return s.terminalResult(artifact, parsed.RawOutput)
	})
}

func (s *Server) handleTerminalDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withTimeout(ctx, req.Params.Name, func(ctx context.Context) (*mcp.CallToolResult, error) {
		parsed, err := payload.ParseTerminalDashboard(req.GetArguments())
		if err != nil {
			return s.errorResult(err), nil
		}

		artifact, err := dashboard.Terminal(parsed, s.terminal)
		if err != nil {
			return s.errorResult(err), nil
		}
		return s.terminalResult(artifact, parsed.RawOutput)
	})
}

func (s *Server) handleListThemePresets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(map[string]any{
		"success":                 true,
		"image_presets":           theme.ListPresets(),
		"terminal_presets":        theme.ListCLIPresets(),
		"default_image_preset":    theme.DefaultPreset,
		"default_terminal_preset": theme.DefaultCLIPreset,
	}, "", "  ")
	if err != nil {
		return s.errorResult(err), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// withTimeout bounds one tool call by the configured render timeout.
// The handler runs on its own goroutine so a stuck render cannot hold
// the transport loop.
func (s *Server) withTimeout(ctx context.Context, tool string, fn func(context.Context) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()

	s.log.WithField("tool", tool).Debug("tool call")

	type outcome struct {
		result *mcp.CallToolResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := fn(ctx)
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		s.log.WithField("tool", tool).Warnf("tool call aborted: %v", ctx.Err())
		return s.errorResult(ctx.Err()), nil
	}
}

// renderFormat maps the requested export format to the encoder format.
// base64 is an export concern; the pixels behind it are PNG.
func renderFormat(format core.ImageFormat) core.ImageFormat {
	if format == core.FormatSVG {
		return core.FormatSVG
	}
	return core.FormatPNG
}

// imageResult answers with a JSON envelope plus, for PNG artifacts, an
// inline image content block. SVG travels inside the envelope as a
// data URI since image blocks are raster-only.
func (s *Server) imageResult(artifact *core.RenderedArtifact, outcome *core.ExportOutcome) *mcp.CallToolResult {
	meta := map[string]any{
		"success": true,
		"format":  outcome.Format,
		"mime":    outcome.MIME,
		"saved":   outcome.Saved,
	}
	if outcome.Saved {
		meta["path"] = outcome.Path
	}
	if artifact.Format == core.FormatSVG || outcome.Format == core.FormatBase64 {
		meta["data"] = outcome.Base64
	}

	body, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return s.errorResult(err)
	}

	if artifact.Format == core.FormatPNG {
		return mcp.NewToolResultImage(string(body),
			base64.StdEncoding.EncodeToString(artifact.Data), outcome.MIME)
	}
	return mcp.NewToolResultText(string(body))
}

// terminalResult answers with the metadata envelope so callers can see
// which engine tier produced the text, or with the bare rendered text
// when raw_output was requested.
func (s *Server) terminalResult(artifact *core.TerminalArtifact, raw bool) (*mcp.CallToolResult, error) {
	if raw {
		return mcp.NewToolResultText(artifact.Text), nil
	}

	body, err := json.MarshalIndent(map[string]any{
		"success":     true,
		"text":        artifact.Text,
		"engine":      artifact.Engine,
		"render_mode": artifact.Mode,
		"theme":       artifact.Theme,
	}, "", "  ")
	if err != nil {
		return s.errorResult(err), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// errorResult folds any pipeline error into the failure envelope. The
// kind field lets callers branch without parsing message text.
func (s *Server) errorResult(err error) *mcp.CallToolResult {
	kind := classify(err)
	s.log.WithError(err).WithField("kind", kind).Debug("tool call failed")

	body, merr := json.MarshalIndent(map[string]any{
		"success": false,
		"kind":    kind,
		"error":   err.Error(),
	}, "", "  ")
	if merr != nil {
		body = []byte(fmt.Sprintf(`{"success": false, "kind": %q, "error": %q}`, kind, err.Error()))
	}
	return mcp.NewToolResultError(string(body))
}

func classify(err error) string {
	switch {
	case core.IsValidation(err):
		return "validation"
	case errors.Is(err, core.ErrThemeNotFound):
		return "theme_not_found"
	case errors.Is(err, core.ErrUnsupportedChartType):
		return "unsupported_chart_type"
	case errors.Is(err, core.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, core.ErrRenderFailed):
		return "render_failed"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "internal"
	}
}
