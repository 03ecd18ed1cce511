// Package shortcuts provides the shortcut extension for shortkey.
// It registers commands: ls, show, add, rm.
package shortcuts

import (
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the shortcut extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "shortcuts" - this extension provides record management.
func (e *Extension) Name() string { return "shortcuts" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns ls, show, add and rm.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLsCmd(),
		e.newShowCmd(),
		e.newAddCmd(),
		e.newRmCmd(),
	}
}

// MCPTools returns nil - MCP record tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
