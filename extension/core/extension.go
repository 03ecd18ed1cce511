// Package core provides the core extension for shortkey.
// It registers commands: init, config, serve, guide, db, version.
package core

import (
	"github.com/jpl-au/shortkey/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core" - this extension provides the bootstrap commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the shared context for the db command.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		e.newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the core tools are built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: opens the data directory itself, and may start uninitialised.
// version: displays build info only.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "version"}
}
