// tools_guide.go implements the MCP tool for reading the built-in guide.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/shortkey/guide"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:shortkey_guide", "read").Detail("topic", topic).Write(err)

	if err != nil {
		// Unknown topic: list what exists
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}
