// tools_shortcuts.go implements MCP tools for shortcut CRUD.
//
// These tools mirror the CLI commands (ls, show, add, edit, rm) but return
// structured JSON for LLM consumption. Writes report validation warnings
// (such as key prefix collisions) alongside the stored record so the LLM
// can tell the user a key is shadowed.

package mcp

import (
	"context"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// changeJSON is the response to a record write.
type changeJSON struct {
	Record   shortcut.Record `json:"record"`
	Warnings []string        `json:"warnings,omitempty"`
	Diff     string          `json:"diff,omitempty"`
}

func warnings(res validate.Result) []string {
	var out []string
	for _, i := range res.Warnings() {
		out = append(out, i.String())
	}
	return out
}

func (h *handlers) listShortcuts(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	opts := service.ListOptions{
		Tag:    req.GetString("tag", ""),
		Hidden: req.GetBool("include_hidden", false),
	}
	records := svc.Records(opts)

	log.Event("mcp:shortkey_list", "list").Detail("tag", opts.Tag).Detail("count", len(records)).Write(nil)

	if records == nil {
		records = []shortcut.Record{}
	}
	return jsonResult(records)
}

func (h *handlers) getShortcut(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}

	c, err := svc.Candidate(ref)

	log.Event("mcp:shortkey_get", "read").Key(ref).ID(c.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	if c.IsGroup() {
		return jsonResult(c.Group)
	}
	return jsonResult(c.Record)
}

// recordPatch collects the record fields present in req.
func recordPatch(req mcp.CallToolRequest) (service.RecordPatch, error) {
	id, err := optAction(req)
	if err != nil {
		return service.RecordPatch{}, err
	}
	return service.RecordPatch{
		Key:         optString(req, "key"),
		Title:       optString(req, "title"),
		Action:      id,
		URL:         optString(req, "url"),
		Script:      optString(req, "script"),
		Aliases:     optStrings(req, "aliases"),
		Tags:        optStrings(req, "tags"),
		Hidden:      optBool(req, "hidden"),
		HideOnPopup: optBool(req, "hide_on_popup"),
	}, nil
}

func (h *handlers) addShortcut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	patch, err := recordPatch(req)
	if err != nil {
		return errorResult(err)
	}

	ch, err := svc.AddRecord(ctx, patch)

	log.Event("mcp:shortkey_add", "write").Key(ch.Record.Key).ID(ch.Record.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(changeJSON{Record: ch.Record, Warnings: warnings(ch.Issues)})
}

func (h *handlers) editShortcut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}
	patch, err := recordPatch(req)
	if err != nil {
		return errorResult(err)
	}
	dryRun := req.GetBool("dry_run", false)

	ch, err := svc.EditRecord(ctx, ref, patch, dryRun)

	log.Event("mcp:shortkey_edit", "write").Key(ref).ID(ch.Record.ID).Detail("dry_run", dryRun).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(changeJSON{Record: ch.Record, Warnings: warnings(ch.Issues), Diff: ch.Diff.Diff})
}

func (h *handlers) removeShortcut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}

	removed, err := svc.RemoveRecord(ctx, ref)

	log.Event("mcp:shortkey_remove", "delete").Key(ref).ID(removed.ID).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText("removed " + removed.Key + " (" + removed.Title + ")"), nil
}
