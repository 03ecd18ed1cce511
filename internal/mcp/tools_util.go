// tools_util.go provides helpers for MCP tool parameter extraction and
// results.
//
// Design: Optional parameters are extracted permissively: a missing or
// mistyped optional argument falls back to its default rather than failing
// the call. Edit tools need to tell "absent" from "empty", so the opt*
// helpers return nil for a missing argument.

package mcp

import (
	"encoding/json"

	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/mark3labs/mcp-go/mcp"
)

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// optString returns the string argument name, or nil when absent.
func optString(req mcp.CallToolRequest, name string) *string {
	if v, ok := args(req)[name].(string); ok {
		return &v
	}
	return nil
}

// optBool returns the boolean argument name, or nil when absent.
func optBool(req mcp.CallToolRequest, name string) *bool {
	if v, ok := args(req)[name].(bool); ok {
		return &v
	}
	return nil
}

// optStrings returns the string array argument name, or nil when absent.
// Non-string elements are skipped.
func optStrings(req mcp.CallToolRequest, name string) *[]string {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return &out
}

// optAction parses the action argument, or returns nil when absent.
func optAction(req mcp.CallToolRequest) (*shortcut.ActionID, error) {
	s := optString(req, "action")
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := shortcut.ParseActionID(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// jsonResult serialises v as indented JSON in a text result. LLMs parse
// indented output more reliably.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult reports err to the LLM as a tool error rather than a
// protocol failure.
func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
