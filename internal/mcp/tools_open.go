// tools_open.go implements the tools that run shortcuts.

package mcp

import (
	"context"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) open(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}

	c, err := svc.Open(ctx, ref)

	log.Event("mcp:shortkey_open", "open").Key(ref).ID(c.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(c)
}

func (h *handlers) launch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	keys, err := req.RequireString("keys")
	if err != nil {
		return mcp.NewToolResultError("keys is required"), nil //nolint:nilerr
	}

	c, err := svc.Launch(ctx, keys)

	log.Event("mcp:shortkey_launch", "open").Key(keys).ID(c.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(c)
}
