// add.go implements the "shortkey add" command.

package shortcuts

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <key> <title>",
		Short: "Add a shortcut",
		Long: `Add a shortcut. The key is upper-cased; the action defaults to open-new-tab.

  shortkey add GH GitHub --url https://github.com/
  shortkey add M Mail --action jump-to-tab --url https://mail.google.com/ --tag work
  shortkey add D "Dark mode" --action run-script --script "document.body.classList.toggle('dark')"

See "shortkey guide actions" for the action list.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runAdd,
	}
	AddRecordFlags(c)
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	patch, err := RecordPatch(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add: %w", err))
	}
	patch.Key, patch.Title = &args[0], &args[1]

	ch, err := e.svc.AddRecord(c.Context(), patch)

	log.Event("shortcuts:add", "write").Key(ch.Record.Key).ID(ch.Record.ID).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add %s: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"record": ch.Record, "warnings": Warnings(ch.Issues)})
	}
	PrintWarnings(c.ErrOrStderr(), ch.Issues)
	fmt.Fprintf(cmd.Out(), "Added %s (%s)\n", ch.Record.Key, ch.Record.Title)
	return nil
}
