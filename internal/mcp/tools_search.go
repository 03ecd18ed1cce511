// tools_search.go implements the lookup tools: ranked search, key prefix
// find, and key sequence resolution.

package mcp

import (
	"context"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/search"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/mark3labs/mcp-go/mcp"
)

type searchJSON struct {
	Results []search.Result      `json:"results"`
	Groups  []search.GroupResult `json:"groups,omitempty"`
}

func (h *handlers) search(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	q := req.GetString("query", "")
	store := svc.Store()
	out := searchJSON{Results: store.Search(q), Groups: store.SearchGroups(q)}
	if out.Results == nil {
		out.Results = []search.Result{}
	}

	log.Event("mcp:shortkey_search", "search").Detail("query", q).Detail("count", len(out.Results)).Write(nil)

	return jsonResult(out)
}

func (h *handlers) find(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	prefix, err := req.RequireString("prefix")
	if err != nil {
		return mcp.NewToolResultError("prefix is required"), nil //nolint:nilerr
	}
	cands := svc.Store().Find(prefix)

	log.Event("mcp:shortkey_find", "search").Key(prefix).Detail("count", len(cands)).Write(nil)

	if cands == nil {
		cands = []shortcut.Candidate{}
	}
	return jsonResult(cands)
}

func (h *handlers) resolve(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	keys, err := req.RequireString("keys")
	if err != nil {
		return mcp.NewToolResultError("keys is required"), nil //nolint:nilerr
	}

	c, err := svc.Resolve(keys)

	log.Event("mcp:shortkey_resolve", "resolve").Key(keys).ID(c.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(c)
}
