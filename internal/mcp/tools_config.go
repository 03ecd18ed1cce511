// tools_config.go implements MCP tools for configuration management.
//
// Config is read from disk on every call so edits made through the CLI
// show up without a restart. Quota and opener changes only apply to a
// data directory opened after the change.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:shortkey_config_get", "read").Write(err)
		return errorResult(err)
	}

	key := req.GetString("key", "")
	if key == "" {
		log.Event("mcp:shortkey_config_get", "list").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:shortkey_config_get", "read").Detail("key", key).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]string{key: v})
}

func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:shortkey_config_set", "write").Detail("key", key).Detail("value", value)

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Set(key, value)
	}
	if err == nil {
		err = cfg.Save()
	}
	l.Write(err)

	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s (applies the next time the server starts)", key, value)), nil
}
