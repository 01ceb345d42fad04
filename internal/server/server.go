// Package server wires the chart toolset onto an MCP stdio server.
// Every tool follows the same lifecycle: validate arguments, resolve
// the theme, render, export, and answer with a JSON envelope. Protocol
// traffic owns stdout; all logging goes to stderr.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vvkuznetsov/charts-mcp/internal/config"
	"github.com/vvkuznetsov/charts-mcp/internal/export"
	"github.com/vvkuznetsov/charts-mcp/internal/terminal"
	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
)

const (
	// Name identifies the server during the MCP handshake.
	Name = "charts-mcp"
	// Version is the advertised server version.
	Version = "1.0.0"
)

// Server owns the MCP server instance and the rendering pipeline
// shared by every tool.
type Server struct {
	cfg      *config.Config
	log      logger.Logger
	mcp      *mcpserver.MCPServer
	terminal *terminal.Renderer
	exports  *export.Manager
	handlers map[string]mcpserver.ToolHandlerFunc
}

// New assembles the server and registers every tool.
func New(cfg *config.Config, log logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		terminal: terminal.New(log),
		exports:  export.New(cfg.OutputDir, log),
		handlers: make(map[string]mcpserver.ToolHandlerFunc),
	}

	s.mcp = mcpserver.NewMCPServer(Name, Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.WithField("version", Version).Info("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// Invoke runs a tool handler directly, bypassing the stdio transport.
// Used by the self-check command.
func (s *Server) Invoke(ctx context.Context, tool string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[tool]
	if !ok {
		return mcp.NewToolResultError("unknown tool: " + tool), nil
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args
	return handler(ctx, req)
}

// ToolNames returns every registered tool name.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	return names
}

func (s *Server) register(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	s.mcp.AddTool(tool, handler)
	s.handlers[tool.Name] = handler
}
