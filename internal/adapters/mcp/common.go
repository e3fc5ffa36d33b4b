package mcp

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"todopanel/internal/domain"
)

// toolError wraps an error as a tool result so the client sees a
// readable failure instead of a protocol error.
func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// formatItems renders items one per line in display order.
func formatItems(items []domain.Item) *mcp.CallToolResult {
	if len(items) == 0 {
		return mcp.NewToolResultText("No todo items.")
	}

	var sb strings.Builder
	for _, it := range items {
		mark := " "
		if it.Done {
			mark = "x"
		}
		origin := ""
		if it.IsNotebook() {
			origin = fmt.Sprintf("  (%s)", it.OriginPath)
		}
		fmt.Fprintf(&sb, "[%s] %s%s  id=%s\n", mark, it.Text, origin, it.ID)
	}
	return mcp.NewToolResultText(sb.String())
}
