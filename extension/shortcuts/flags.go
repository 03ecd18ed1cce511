// flags.go binds the record fields shared by add and edit to flags.

package shortcuts

import (
	"fmt"
	"io"

	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
	"github.com/spf13/cobra"
)

// AddRecordFlags registers the record field flags on c.
func AddRecordFlags(c *cobra.Command) {
	c.Flags().StringP(extension.FlagAction, "a", "", "Action name or id (e.g. open-new-tab, 3)")
	c.Flags().StringP(extension.FlagURL, "u", "", "Target URL")
	c.Flags().String(extension.FlagScript, "", "Script source for run-script")
	c.Flags().StringSlice(extension.FlagAlias, nil, "Alias (repeatable, comma separated)")
	c.Flags().StringSliceP(extension.FlagTag, "t", nil, "Tag (repeatable, comma separated)")
	c.Flags().Bool(extension.FlagHidden, false, "Never match this shortcut")
	c.Flags().Bool(extension.FlagHideOnPopup, false, "Leave out of the popup list")
	c.Flags().Int(extension.FlagSortOrder, 0, "Order among equal keys")

	_ = c.RegisterFlagCompletionFunc(extension.FlagAction, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, id := range shortcut.ActionIDs() {
			names = append(names, id.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// RecordPatch collects the record field flags the user set.
func RecordPatch(c *cobra.Command) (service.RecordPatch, error) {
	var p service.RecordPatch
	f := c.Flags()

	if f.Changed(extension.FlagAction) {
		s, _ := f.GetString(extension.FlagAction)
		id, err := shortcut.ParseActionID(s)
		if err != nil {
			return p, err
		}
		p.Action = &id
	}
	if f.Changed(extension.FlagURL) {
		v, _ := f.GetString(extension.FlagURL)
		p.URL = &v
	}
	if f.Changed(extension.FlagScript) {
		v, _ := f.GetString(extension.FlagScript)
		p.Script = &v
	}
	if f.Changed(extension.FlagAlias) {
		v, _ := f.GetStringSlice(extension.FlagAlias)
		p.Aliases = &v
	}
	if f.Changed(extension.FlagTag) {
		v, _ := f.GetStringSlice(extension.FlagTag)
		p.Tags = &v
	}
	if f.Changed(extension.FlagHidden) {
		v, _ := f.GetBool(extension.FlagHidden)
		p.Hidden = &v
	}
	if f.Changed(extension.FlagHideOnPopup) {
		v, _ := f.GetBool(extension.FlagHideOnPopup)
		p.HideOnPopup = &v
	}
	if f.Changed(extension.FlagSortOrder) {
		v, _ := f.GetInt(extension.FlagSortOrder)
		p.SortOrder = &v
	}
	return p, nil
}

// PrintWarnings writes validation warnings, one per line.
func PrintWarnings(w io.Writer, res validate.Result) {
	for _, i := range res.Warnings() {
		fmt.Fprintf(w, "warning: %s\n", i)
	}
}

// Warnings returns the warning texts of res.
func Warnings(res validate.Result) []string {
	var out []string
	for _, i := range res.Warnings() {
		out = append(out, i.String())
	}
	return out
}
