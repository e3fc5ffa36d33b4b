package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"todopanel/internal/application"
)

// RegisterReadTools adds the read-only todo tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, ctrl *application.Controller) {
	s.AddTool(listTool(), listHandler(ctrl))
	s.AddTool(refreshTool(), refreshHandler(ctrl))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List todo items in display order: pending first (newest on top), then completed by completion time."),
		mcp.WithBoolean("include_notebook",
			mcp.Description("Include notebook-derived items. Defaults to true."),
		),
	)
}

func listHandler(ctrl *application.Controller) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeNotebook := req.GetBool("include_notebook", true)
		return formatItems(ctrl.Store().Visible(includeNotebook)), nil
	}
}

// --- refresh ---

func refreshTool() mcp.Tool {
	return mcp.NewTool("refresh",
		mcp.WithDescription("Reload the todo list from the remote endpoint (or local cache) and rescan notebooks."),
	)
}

func refreshHandler(ctrl *application.Controller) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.Refresh(ctx)
		return formatItems(ctrl.Store().Items()), nil
	}
}
