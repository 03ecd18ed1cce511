// Package extension provides the plugin architecture for shortkey.
// Extensions group related functionality (commands, MCP tools) and register
// at init time, so a feature area lives in one package without touching
// the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for shortkey extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the data
// directory is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't need an open data directory. Commands returned by
// NoStoreCommands() skip store initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a data directory exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Utility commands that don't read shortcuts (version, guide)
type Storeless interface {
	NoStoreCommands() []string
}
