package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/testscaffold/pkg/generator"
	"github.com/gnana997/testscaffold/pkg/pipeline"
)

// handleAnalyzeFile returns the full analysis of one source file as JSON.
func (s *Server) handleAnalyzeFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.runner.AnalyzeFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return jsonResult(result)
}

// testable is one entry in the list_testables response.
type testable struct {
	File string `json:"file"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// handleListTestables scans a directory tree and flattens the results into
// one entry per component and exported function.
func (s *Server) handleListTestables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.runner.Scan(root, pipeline.DefaultDiscoveryConfig())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	entries := make([]testable, 0, report.Components+report.Functions)
	for _, result := range report.Results {
		for _, comp := range result.Components {
			entries = append(entries, testable{File: result.FilePath, Kind: "component", Name: comp.Name})
		}
		for _, fn := range result.Functions {
			if fn.IsExported {
				entries = append(entries, testable{File: result.FilePath, Kind: "function", Name: fn.Name})
			}
		}
	}

	return jsonResult(map[string]any{
		"files_scanned": report.FilesAnalyzed,
		"files_failed":  report.FilesFailed,
		"testables":     entries,
	})
}

// handleGenerateTest renders (and optionally writes) the scaffold for one
// file. An existing test file is never overwritten.
func (s *Server) handleGenerateTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	write := req.GetBool("write", false)

	scaffold, testPath, err := s.runner.RenderFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	written := false
	if write && scaffold != "" {
		if _, statErr := os.Stat(testPath); os.IsNotExist(statErr) {
			if err := os.WriteFile(testPath, []byte(scaffold), 0o644); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("write failed: %v", err)), nil
			}
			written = true
		}
	}

	return jsonResult(map[string]any{
		"test_path": generator.TestFilePath(path),
		"scaffold":  scaffold,
		"written":   written,
	})
}

// jsonResult marshals v into a TextContent tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
