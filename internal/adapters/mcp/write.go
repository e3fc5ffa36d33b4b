package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"todopanel/internal/application"
)

// RegisterWriteTools adds the mutating todo tools to the MCP server.
// Every mutation persists the manual-only snapshot to both tiers
// before returning.
func RegisterWriteTools(s *server.MCPServer, ctrl *application.Controller) {
	s.AddTool(addTool(), addHandler(ctrl))
	s.AddTool(toggleTool(), toggleHandler(ctrl))
	s.AddTool(removeTool(), removeHandler(ctrl))
	s.AddTool(editTool(), editHandler(ctrl))
}

// --- add ---

func addTool() mcp.Tool {
	return mcp.NewTool("add",
		mcp.WithDescription("Add a new pending todo item."),
		mcp.WithString("text",
			mcp.Description("The todo text. Leading and trailing whitespace is stripped."),
			mcp.Required(),
		),
	)
}

func addHandler(ctrl *application.Controller) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")
		item := ctrl.Store().Add(text)
		if item == nil {
			return toolError(fmt.Errorf("text must not be empty"))
		}
		ctrl.SaveNow(ctx)
		return mcp.NewToolResultText(fmt.Sprintf("Added %q (id=%s)", item.Text, item.ID)), nil
	}
}

// --- toggle ---

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle",
		mcp.WithDescription("Toggle a manual todo item between pending and done. Notebook-derived items are read-only."),
		mcp.WithString("id",
			mcp.Description("The item id"),
			mcp.Required(),
		),
	)
}

func toggleHandler(ctrl *application.Controller) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if !ctrl.Store().Toggle(id) {
			return toolError(fmt.Errorf("no such item, or item is read-only: %s", id))
		}
		ctrl.SaveNow(ctx)
		return mcp.NewToolResultText("Toggled " + id), nil
	}
}

// --- remove ---

func removeTool() mcp.Tool {
	return mcp.NewTool("remove",
		mcp.WithDescription("Delete a manual todo item. Notebook-derived items disappear when the next scan omits them."),
		mcp.WithString("id",
			mcp.Description("The item id"),
			mcp.Required(),
		),
	)
}

func removeHandler(ctrl *application.Controller) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if !ctrl.Store().Remove(id) {
			return toolError(fmt.Errorf("no such item, or item is read-only: %s", id))
		}
		ctrl.SaveNow(ctx)
		return mcp.NewToolResultText("Removed " + id), nil
	}
}

// --- edit ---

func editTool() mcp.Tool {
	return mcp.NewTool("edit",
		mcp.WithDescription("Replace the text of a pending manual todo item."),
		mcp.WithString("id",
			mcp.Description("The item id"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("The replacement text"),
			mcp.Required(),
		),
	)
}

func editHandler(ctrl *application.Controller) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		text := req.GetString("text", "")

		store := ctrl.Store()
		if !store.BeginEdit(id) {
			return toolError(fmt.Errorf("item cannot be edited (unknown, done, or read-only): %s", id))
		}
		if !store.CommitEdit(text) {
			return toolError(fmt.Errorf("replacement text must not be empty"))
		}
		ctrl.SaveNow(ctx)
		return mcp.NewToolResultText("Updated " + id), nil
	}
}
