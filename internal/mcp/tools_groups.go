// tools_groups.go implements MCP tools for shortcut groups.

package mcp

import (
	"context"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/mark3labs/mcp-go/mcp"
)

// groupJSON is a group with its members resolved.
type groupJSON struct {
	shortcut.Group
	Members  []shortcut.Record `json:"members"`
	Warnings []string          `json:"warnings,omitempty"`
}

func expand(g shortcut.Group, records []shortcut.Record) groupJSON {
	members := g.Members(records)
	if members == nil {
		members = []shortcut.Record{}
	}
	return groupJSON{Group: g, Members: members}
}

func (h *handlers) listGroups(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	snap := svc.Store().Snapshot()
	out := make([]groupJSON, 0, len(snap.ShortcutGroups))
	for _, g := range snap.ShortcutGroups {
		out = append(out, expand(g, snap.ShortcutKeys))
	}

	log.Event("mcp:shortkey_groups", "list").Detail("count", len(out)).Write(nil)

	return jsonResult(out)
}

func groupPatch(req mcp.CallToolRequest) service.GroupPatch {
	return service.GroupPatch{
		Key:            optString(req, "key"),
		Title:          optString(req, "title"),
		Members:        optStrings(req, "members"),
		OpenInTabGroup: optBool(req, "tab_group"),
	}
}

func (h *handlers) addGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}

	ch, err := svc.AddGroup(ctx, groupPatch(req))

	log.Event("mcp:shortkey_group_add", "write").Key(ch.Group.Key).ID(ch.Group.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	out := expand(ch.Group, svc.Store().Snapshot().ShortcutKeys)
	out.Warnings = warnings(ch.Issues)
	return jsonResult(out)
}

func (h *handlers) editGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}

	ch, err := svc.EditGroup(ctx, ref, groupPatch(req))

	log.Event("mcp:shortkey_group_edit", "write").Key(ref).ID(ch.Group.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	out := expand(ch.Group, svc.Store().Snapshot().ShortcutKeys)
	out.Warnings = warnings(ch.Issues)
	return jsonResult(out)
}

func (h *handlers) removeGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}

	g, err := svc.RemoveGroup(ctx, ref)

	log.Event("mcp:shortkey_group_remove", "delete").Key(ref).ID(g.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText("removed group " + g.Key + " (" + g.Title + ")"), nil
}
