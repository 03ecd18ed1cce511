// find.go implements "shortkey find": the shortcuts and groups a key
// prefix still leaves open, which is what the key matcher chooses between.

package search

import (
	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/spf13/cobra"
)

func (e *Extension) newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <prefix>",
		Short: "List shortcuts whose key starts with a prefix",
		Long: `List shortcuts and groups whose key starts with prefix.

  shortkey find g     # GM and GS with the default shortcuts`,
		Args: cobra.ExactArgs(1),
		RunE: e.runFind,
	}
}

func (e *Extension) runFind(_ *cobra.Command, args []string) error {
	cands := e.svc.Store().Find(args[0])

	log.Event("search:find", "search").Key(args[0]).Detail("count", len(cands)).Write(nil)

	if cmd.JSON() {
		if cands == nil {
			cands = []shortcut.Candidate{}
		}
		return cmd.PrintJSON(cands)
	}
	return format.Candidates(cmd.Out(), cands)
}
