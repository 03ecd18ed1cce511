// query.go implements "shortkey search", ranked matching over keys, titles,
// aliases and tags.

package search

import (
	"strings"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search shortcuts and groups",
		Long: `Rank shortcuts and groups against a query. Matching ignores case and
width and treats hiragana and katakana alike.

  shortkey search mail
  shortkey search ゆーちゅーぶ
  shortkey search sns --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Show at most this many shortcuts (0 for all)")
	return c
}

type searchOutput struct {
	Results []search.Result      `json:"results"`
	Groups  []search.GroupResult `json:"groups"`
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	store := e.svc.Store()
	results, groups := store.Search(q), store.SearchGroups(q)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	log.Event("search:search", "search").Detail("query", q).Detail("count", len(results)).Write(nil)

	if cmd.JSON() {
		out := searchOutput{Results: results, Groups: groups}
		if out.Results == nil {
			out.Results = []search.Result{}
		}
		if out.Groups == nil {
			out.Groups = []search.GroupResult{}
		}
		return cmd.PrintJSON(out)
	}
	return format.SearchResults(cmd.Out(), results, groups)
}
