// tools_init.go implements the MCP tool for creating a data directory.
//
// This tool works without an open data directory, letting an LLM bootstrap
// shortkey. Other tools require initialisation first.

package mcp

import (
	"context"

	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) initStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.service() != nil {
		return mcp.NewToolResultError("shortkey already initialised"), nil
	}

	local := req.GetBool("local", false)

	dataDir, err := repo.Init(repo.InitOptions{Dir: h.dir, Local: local})

	log.Event("mcp:shortkey_init", "init").Detail("local", local).Write(err)

	if err != nil {
		return errorResult(err)
	}

	svc, err := service.New(ctx, dataDir, h.cfg, h.serviceOptions())
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open data directory: " + err.Error()), nil
	}
	h.setService(svc)
	log.SetProject(dataDir)

	h.log.Info("data directory initialised", "dir", dataDir, "local", local)

	if local {
		return mcp.NewToolResultText("initialised " + dataDir + " (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("initialised " + dataDir), nil
}
