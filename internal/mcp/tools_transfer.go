// tools_transfer.go implements the export and import tools. Content is
// passed inline rather than as a file path so the tools never touch the
// client's filesystem.

package mcp

import (
	"context"
	"strings"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/transfer"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) export(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	f, err := transfer.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return errorResult(err)
	}

	var b strings.Builder
	err = svc.Export(&b, f)

	log.Event("mcp:shortkey_export", "export").Detail("format", string(f)).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *handlers) importRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	f, err := transfer.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return errorResult(err)
	}
	opts := transfer.Options{Format: f, DryRun: req.GetBool("dry_run", false)}

	result, err := svc.Import(ctx, nil, strings.NewReader(content), opts)

	log.Event("mcp:shortkey_import", "import").Detail("count", result.Imported).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"imported": result.Imported,
		"keys":     result.Keys,
		"dry_run":  opts.DryRun,
		"diff":     result.Diff.Diff,
	})
}
