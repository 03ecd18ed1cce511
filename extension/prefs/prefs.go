// Package prefs provides the preference commands.
// Registers commands: prefs, reload.
//
// Preferences live in the settings store next to the shortcuts, unlike
// config, which is local to this machine.
package prefs

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the prefs extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "prefs".
func (e *Extension) Name() string { return "prefs" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns prefs and reload.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newPrefsCmd(),
		e.newReloadCmd(),
	}
}

// MCPTools returns nil - the prefs tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newPrefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefs [key] [value]",
		Short: "View or set display preferences",
		Long: `View or set preferences stored with the shortcuts.

  shortkey prefs                              # show all
  shortkey prefs listColumnCount 4            # popup columns (1-10)
  shortkey prefs categoryFilterPosition top   # tag filter position
  shortkey prefs sync.enabled false           # keep shortcuts in local storage`,
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return service.PrefKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: e.runPrefs,
	}
}

func (e *Extension) runPrefs(c *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		prefs := e.svc.Prefs()
		log.Event("prefs:prefs", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(prefs)
		}
		for _, k := range service.PrefKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, prefs[k])
		}

	case 1:
		v, err := e.svc.Pref(args[0])
		log.Event("prefs:prefs", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("prefs get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		err := e.svc.SetPref(c.Context(), args[0], args[1])
		log.Event("prefs:prefs", "set").Detail("key", args[0]).Detail("value", args[1]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("prefs set %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: args[1]})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s\n", args[0], args[1])
	}
	return nil
}

func (e *Extension) newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read and re-migrate the stored shortcuts",
		Long: `Re-read the settings from storage, running migration again. Useful after
editing the database with another tool.`,
		Args: cobra.NoArgs,
		RunE: e.runReload,
	}
}

func (e *Extension) runReload(c *cobra.Command, _ []string) error {
	err := e.svc.Reload(c.Context())

	log.Event("prefs:reload", "reload").Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reload: %w", err))
	}
	n := len(e.svc.Store().Snapshot().ShortcutKeys)
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]int{"shortcuts": n})
	}
	fmt.Fprintf(cmd.Out(), "Reloaded %d shortcuts\n", n)
	return nil
}
