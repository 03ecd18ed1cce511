// show.go implements the "shortkey show" command.

package shortcuts

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <ref>",
		Short: "Show a shortcut or group",
		Long: `Show one shortcut, or a group and its members, by id or key.

Rendered as markdown on a terminal; use --raw or a pipe for plain text.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print markdown without rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	ref := args[0]
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	snap := e.svc.Store().Snapshot()

	if r, ok := snap.Record(ref); ok {
		log.Event("shortcuts:show", "read").Key(r.Key).ID(r.ID).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(r)
		}
		cmd.PrintMarkdown(format.Markdown(r), raw)
		return nil
	}

	if g, ok := snap.Group(ref); ok {
		log.Event("shortcuts:show", "read").Key(g.Key).ID(g.ID).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(g)
		}
		return format.Groups(cmd.Out(), []shortcut.Group{g}, snap.ShortcutKeys)
	}

	err := fmt.Errorf("%w: %s", service.ErrNotFound, ref)
	log.Event("shortcuts:show", "read").Key(ref).Write(err)
	return cmd.PrintJSONError(err)
}
