// Package group provides the group extension for shortkey.
// It registers commands: group (with subcommands add, edit, rm, ls).
package group

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/extension/shortcuts"
	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the group extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "group".
func (e *Extension) Name() string { return "group" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the group command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newGroupCmd(),
	}
}

// MCPTools returns nil - MCP group tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newGroupCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "group",
		Short: "Manage groups of shortcuts",
		Long: `A group opens several shortcuts at once. Members are given by id or key.

  shortkey group add W Work GM GS
  shortkey group edit W --members GM,GS,Y --tab-group
  shortkey group ls
  shortkey group rm W

Run a group with "shortkey open <key>".`,
	}
	c.AddCommand(e.newAddCmd())
	c.AddCommand(e.newEditCmd())
	c.AddCommand(e.newRmCmd())
	c.AddCommand(e.newLsCmd())
	return c
}

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <key> <title> <member>...",
		Short: "Add a group",
		Args:  cobra.MinimumNArgs(3),
		RunE:  e.runAdd,
	}
	c.Flags().Bool(extension.FlagTabGroup, false, "Open members in a browser tab group")
	return c
}

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change a group",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runEdit,
	}
	c.Flags().StringP(extension.FlagKey, "k", "", "New key")
	c.Flags().String(extension.FlagTitle, "", "New title")
	c.Flags().StringSliceP(extension.FlagMembers, "m", nil, "Replace members (ids or keys, comma separated)")
	c.Flags().Bool(extension.FlagTabGroup, false, "Open members in a browser tab group")
	return c
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <ref>",
		Short: "Remove a group (its members are kept)",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List groups and their members",
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	members := args[2:]
	tabGroup, _ := c.Flags().GetBool(extension.FlagTabGroup)
	patch := service.GroupPatch{Key: &args[0], Title: &args[1], Members: &members, OpenInTabGroup: &tabGroup}

	ch, err := e.svc.AddGroup(c.Context(), patch)

	log.Event("group:add", "write").Key(ch.Group.Key).ID(ch.Group.ID).Detail("members", len(members)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("group add %s: %w", args[0], err))
	}
	return e.printChange(c, ch, "Added")
}

func (e *Extension) runEdit(c *cobra.Command, args []string) error {
	var patch service.GroupPatch
	f := c.Flags()
	if f.Changed(extension.FlagKey) {
		v, _ := f.GetString(extension.FlagKey)
		patch.Key = &v
	}
	if f.Changed(extension.FlagTitle) {
		v, _ := f.GetString(extension.FlagTitle)
		patch.Title = &v
	}
	if f.Changed(extension.FlagMembers) {
		v, _ := f.GetStringSlice(extension.FlagMembers)
		patch.Members = &v
	}
	if f.Changed(extension.FlagTabGroup) {
		v, _ := f.GetBool(extension.FlagTabGroup)
		patch.OpenInTabGroup = &v
	}

	ch, err := e.svc.EditGroup(c.Context(), args[0], patch)

	log.Event("group:edit", "write").Key(args[0]).ID(ch.Group.ID).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("group edit %s: %w", args[0], err))
	}
	return e.printChange(c, ch, "Updated")
}

func (e *Extension) printChange(c *cobra.Command, ch service.GroupChange, verb string) error {
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"group": ch.Group, "warnings": shortcuts.Warnings(ch.Issues)})
	}
	shortcuts.PrintWarnings(c.ErrOrStderr(), ch.Issues)
	fmt.Fprintf(cmd.Out(), "%s group %s (%s) with %d members\n", verb, ch.Group.Key, ch.Group.Title, len(ch.Group.ShortcutKeyIDs))
	return nil
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	g, err := e.svc.RemoveGroup(c.Context(), args[0])

	log.Event("group:rm", "delete").Key(args[0]).ID(g.ID).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("group rm %s: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(g)
	}
	fmt.Fprintf(cmd.Out(), "Removed group %s (%s)\n", g.Key, g.Title)
	return nil
}

func (e *Extension) runLs(_ *cobra.Command, _ []string) error {
	snap := e.svc.Store().Snapshot()
	groups := snap.ShortcutGroups

	log.Event("group:ls", "list").Detail("count", len(groups)).Write(nil)

	if cmd.JSON() {
		if groups == nil {
			groups = []shortcut.Group{}
		}
		return cmd.PrintJSON(groups)
	}
	return format.Groups(cmd.Out(), groups, snap.ShortcutKeys)
}
