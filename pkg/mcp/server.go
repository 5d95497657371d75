// Package mcp exposes the analysis pipeline to editors over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/testscaffold/pkg/mcplog"
	"github.com/gnana997/testscaffold/pkg/pipeline"
)

const serverVersion = "0.1.0-dev"

// Server wraps the MCP server around a pipeline Runner.
type Server struct {
	mcpServer *server.MCPServer
	runner    *pipeline.Runner
	logger    *mcplog.Logger // nil disables tool-call logging
}

// NewServer creates the MCP server. logger may be nil.
func NewServer(runner *pipeline.Runner, logger *mcplog.Logger) *Server {
	s := &Server{runner: runner, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("testscaffold", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: analyzeFileTool(), Handler: s.handleAnalyzeFile},
		server.ServerTool{Tool: listTestablesTool(), Handler: s.handleListTestables},
		server.ServerTool{Tool: generateTestTool(), Handler: s.handleGenerateTest},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
