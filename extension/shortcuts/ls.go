// ls.go implements the "shortkey ls" command.

package shortcuts

import (
	"fmt"
	"time"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/duration"
	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List shortcuts",
		Long: `List shortcuts in key order.

  shortkey ls              # keys and titles
  shortkey ls -l           # action, uses, last use and target
  shortkey ls --tag SNS    # only shortcuts tagged SNS
  shortkey ls --tree       # grouped by tag
  shortkey ls --hidden     # include hidden shortcuts
  shortkey ls --unused 4w  # not run in the last four weeks`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format")
	c.Flags().BoolP(extension.FlagTree, "T", false, "Group by tag")
	c.Flags().StringP(extension.FlagTag, "t", "", "Only shortcuts with this tag")
	c.Flags().Bool(extension.FlagHidden, false, "Include hidden shortcuts")
	c.Flags().String(extension.FlagUnused, "", "Only shortcuts not run within this age (12h, 7d, 4w, 3m, 1y)")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	tag, _ := c.Flags().GetString(extension.FlagTag)
	hidden, _ := c.Flags().GetBool(extension.FlagHidden)

	opts := service.ListOptions{Tag: tag, Hidden: hidden}
	if age, _ := c.Flags().GetString(extension.FlagUnused); age != "" {
		d, err := duration.Parse(age)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
		}
		opts.UnusedSince = duration.Since(time.Now(), d)
	}

	records := e.svc.Records(opts)

	log.Event("shortcuts:ls", "list").Detail("tag", tag).Detail("count", len(records)).Write(nil)

	if cmd.JSON() {
		if records == nil {
			records = []shortcut.Record{}
		}
		return cmd.PrintJSON(records)
	}

	switch {
	case tree:
		return format.TagTree(cmd.Out(), records)
	case long:
		return format.Long(cmd.Out(), records)
	default:
		return format.List(cmd.Out(), records)
	}
}
