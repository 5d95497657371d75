package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func analyzeFileTool() mcp.Tool {
	return mcp.NewTool("analyze_file",
		mcp.WithDescription("Analyze a JS/TS source file: components, props, hooks, event handlers, functions, imports"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
	)
}

func listTestablesTool() mcp.Tool {
	return mcp.NewTool("list_testables",
		mcp.WithDescription("Scan a directory and list every component and exported function a test could target"),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Directory to scan"),
		),
	)
}

func generateTestTool() mcp.Tool {
	return mcp.NewTool("generate_test",
		mcp.WithDescription("Render the Jest test scaffold for one source file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
		mcp.WithBoolean("write",
			mcp.Description("Write the scaffold next to the source file (never overwrites an existing test)"),
		),
	)
}
