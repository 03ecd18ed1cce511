// Package launch provides the commands that run shortcuts.
// Registers commands: open, launch.
package launch

import (
	"errors"
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/handler"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/popup"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the launch extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "launch".
func (e *Extension) Name() string { return "launch" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns open and launch.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newOpenCmd(),
		e.newLaunchCmd(),
	}
}

// MCPTools returns nil - shortkey_open and shortkey_launch are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <ref>",
		Short: "Run a shortcut or group by id or key",
		Long: `Run the shortcut or group named by id or key. When a shortcut and a
group share a key the shortcut wins.

  shortkey open GM
  shortkey open W      # open every member of group W`,
		Args: cobra.ExactArgs(1),
		RunE: e.runOpen,
	}
}

func (e *Extension) runOpen(c *cobra.Command, args []string) error {
	cand, err := e.svc.Open(c.Context(), args[0])

	log.Event("launch:open", "open").Key(args[0]).ID(cand.ID).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open %s: %w", args[0], err))
	}
	return report(cand)
}

func (e *Extension) newLaunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch [keys]",
		Short: "Run the shortcut a key sequence names, or open the popup",
		Long: `Feed keys through the key matcher and run what they resolve to.

  shortkey launch gm     # Gmail
  shortkey launch        # interactive popup

In the popup, type keys to run a shortcut or / to search (Backspace on an
empty search goes back to keys). Tab or the arrow keys move, Enter runs
the selection, Ctrl+T cycles the tag filter and Esc quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLaunch,
	}
}

func (e *Extension) runLaunch(c *cobra.Command, args []string) error {
	if len(args) == 0 {
		return e.runPopup(c)
	}
	keys := args[0]

	cand, err := e.svc.Launch(c.Context(), keys)

	log.Event("launch:launch", "open").Key(keys).ID(cand.ID).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("launch %s: %w", keys, err))
	}
	return report(cand)
}

// runPopup shows the interactive launcher. The popup runs shortcuts
// through the same handler the HTTP API uses, so use counts are kept the
// same way.
func (e *Extension) runPopup(c *cobra.Command) error {
	if !cmd.Terminal() {
		return cmd.PrintJSONError(errors.New("launch: the popup needs a terminal; pass keys instead"))
	}
	h := handler.New(e.svc.Store(), e.svc.Dispatcher(), cmd.Logger())
	defer h.Wait()

	cand, err := popup.Run(c.Context(), e.svc.Store(), h, popup.Options{})

	l := log.Event("launch:popup", "open")
	if cand != nil {
		l = l.Key(cand.Key).ID(cand.ID)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("launch: %w", err))
	}
	if cand == nil {
		return nil
	}
	return report(*cand)
}

func report(c shortcut.Candidate) error {
	if cmd.JSON() {
		return cmd.PrintJSON(c)
	}
	kind := shortcut.ActionIDOf(c.Action).String()
	if c.IsGroup() {
		kind = "group"
	}
	fmt.Fprintf(cmd.Out(), "Opened %s (%s) [%s]\n", c.Key, c.Title, kind)
	return nil
}
