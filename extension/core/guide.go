// guide.go implements the "shortkey guide" command for documentation access.
//
// Design: Guides are embedded in the binary via the guide package, so
// documentation is always available without external files.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the shortkey usage guide",
		Long: `Outputs the shortkey guide for humans and LLMs.

  shortkey guide           # main guide
  shortkey guide keys      # how key sequences resolve
  shortkey guide install   # installation for this platform`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			topics, _ := guide.List()
			return topics, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(c *cobra.Command, args []string) error {
			raw, _ := c.Flags().GetBool(extension.FlagRaw)
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			cmd.PrintMarkdown(content, raw)
			return nil
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print markdown without rendering")
	return c
}
