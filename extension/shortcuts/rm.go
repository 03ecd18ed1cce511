// rm.go implements the "shortkey rm" command.

package shortcuts

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <ref>",
		Short: "Remove a shortcut",
		Long:  `Remove a shortcut by id or key. It is also dropped from every group.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	r, err := e.svc.RemoveRecord(c.Context(), args[0])

	log.Event("shortcuts:rm", "delete").Key(args[0]).ID(r.ID).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rm %s: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	fmt.Fprintf(cmd.Out(), "Removed %s (%s)\n", r.Key, r.Title)
	return nil
}
