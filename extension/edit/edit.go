// Package edit provides the edit extension for shortkey.
// It registers commands: edit.
package edit

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/extension/shortcuts"
	"github.com/jpl-au/shortkey/internal/diff"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the edit extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "edit" - this extension provides record modification.
func (e *Extension) Name() string { return "edit" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the edit command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newEditCmd(),
	}
}

// MCPTools returns nil - the MCP edit tool is in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change a shortcut",
		Long: `Change fields of a shortcut named by id or key. Only the flags given are
changed.

  shortkey edit GH --title "GitHub Home"
  shortkey edit GH --key G --action jump-to-tab
  shortkey edit GH --tag dev,work --dry-run     # show the diff only

Changing --action keeps the URL or script where the new action uses one.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runEdit,
	}
	shortcuts.AddRecordFlags(c)
	c.Flags().StringP(extension.FlagKey, "k", "", "New key")
	c.Flags().String(extension.FlagTitle, "", "New title")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show the change without saving")
	return c
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	ref := args[0]
	patch, err := shortcuts.RecordPatch(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("edit: %w", err))
	}
	if c.Flags().Changed(extension.FlagKey) {
		v, _ := c.Flags().GetString(extension.FlagKey)
		patch.Key = &v
	}
	if c.Flags().Changed(extension.FlagTitle) {
		v, _ := c.Flags().GetString(extension.FlagTitle)
		patch.Title = &v
	}
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	ch, err := e.svc.EditRecord(c.Context(), ref, patch, dryRun)

	log.Event("edit:edit", "write").Key(ref).ID(ch.Record.ID).Detail("dry_run", dryRun).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("edit %s: %w", ref, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"record":   ch.Record,
			"warnings": shortcuts.Warnings(ch.Issues),
			"dry_run":  dryRun,
			"diff":     ch.Diff.Diff,
		})
	}
	shortcuts.PrintWarnings(c.ErrOrStderr(), ch.Issues)
	if dryRun {
		if ch.Diff.Empty() {
			fmt.Fprintln(cmd.Out(), "No changes")
			return nil
		}
		return diff.Write(cmd.Out(), ch.Diff, cmd.Terminal())
	}
	fmt.Fprintf(cmd.Out(), "Updated %s (%s)\n", ch.Record.Key, ch.Record.Title)
	return nil
}
