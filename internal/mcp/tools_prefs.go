// tools_prefs.go implements MCP tools for the preferences stored with the
// shortcuts, and for reloading them.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) prefsGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	key := req.GetString("key", "")
	if key == "" {
		log.Event("mcp:shortkey_prefs_get", "list").Write(nil)
		return jsonResult(svc.Prefs())
	}

	v, err := svc.Pref(key)

	log.Event("mcp:shortkey_prefs_get", "read").Detail("key", key).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]string{key: v})
}

func (h *handlers) prefsSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	err = svc.SetPref(ctx, key, value)

	log.Event("mcp:shortkey_prefs_set", "write").Detail("key", key).Detail("value", value).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}

func (h *handlers) reload(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}

	err := svc.Reload(ctx)

	log.Event("mcp:shortkey_reload", "reload").Write(err)

	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("reloaded %d shortcuts", len(svc.Store().Snapshot().ShortcutKeys))), nil
}
