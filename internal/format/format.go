// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// store operations while this package handles presentation: column
// alignment (titles are often Japanese, so widths are measured in cells,
// not bytes), tag trees and the markdown used by show.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpl-au/shortkey/internal/search"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
)

// pad right-pads s to n terminal cells.
func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func keyWidth(records []shortcut.Record) int {
	n := 3 // minimum "KEY"
	for _, r := range records {
		n = max(n, lipgloss.Width(r.Key))
	}
	return n
}

// target is what a record opens or runs, shortened for a table cell.
func target(r shortcut.Record) string {
	t := r.URL()
	if t == "" {
		t = r.Script()
	}
	return truncate(t, 60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func flags(r shortcut.Record) string {
	var f []string
	if r.Hidden {
		f = append(f, "hidden")
	}
	if r.HideOnPopup {
		f = append(f, "no-popup")
	}
	if len(f) == 0 {
		return ""
	}
	return " [" + strings.Join(f, ",") + "]"
}

// List prints records in simple list format.
func List(w io.Writer, records []shortcut.Record) error {
	kw := keyWidth(records)
	for _, r := range records {
		fmt.Fprintf(w, "%s  %s%s\n", pad(r.Key, kw), r.Title, flags(r))
	}
	return nil
}

// Long prints records with action, usage and target.
//
// Fixed-width columns come first so they align; TITLE and TARGET vary and
// go last.
func Long(w io.Writer, records []shortcut.Record) error {
	if len(records) == 0 {
		return nil
	}

	kw := keyWidth(records)
	tw := 5 // minimum "TITLE"
	for _, r := range records {
		tw = max(tw, lipgloss.Width(r.Title))
	}

	fmt.Fprintf(w, "%s  %-24s  %4s  %-16s  %s  %s\n", pad("KEY", kw), "ACTION", "USES", "LAST USED", pad("TITLE", tw), "TARGET")
	for _, r := range records {
		last := "-"
		if r.LastUsedAt != nil {
			last = time.UnixMilli(*r.LastUsedAt).Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s  %-24s  %4d  %-16s  %s  %s%s\n",
			pad(r.Key, kw), shortcut.ActionIDOf(r.Action), r.UseCount, last, pad(r.Title, tw), target(r), flags(r))
	}
	return nil
}

// Groups prints groups with their resolved members.
func Groups(w io.Writer, groups []shortcut.Group, records []shortcut.Record) error {
	for _, g := range groups {
		mode := ""
		if g.OpenInTabGroup {
			mode = " (tab group)"
		}
		fmt.Fprintf(w, "%s  %s%s\n", g.Key, g.Title, mode)
		members := g.Members(records)
		for i, m := range members {
			connector := "├── "
			if i == len(members)-1 {
				connector = "└── "
			}
			fmt.Fprintf(w, "    %s%s  %s\n", connector, m.Key, m.Title)
		}
		if missing := len(g.ShortcutKeyIDs) - len(members); missing > 0 {
			fmt.Fprintf(w, "    (%d missing)\n", missing)
		}
	}
	return nil
}

// TagTree prints records grouped under their tags. Untagged records are
// listed last under "(untagged)".
func TagTree(w io.Writer, records []shortcut.Record) error {
	byTag := map[string][]shortcut.Record{}
	var untagged []shortcut.Record
	for _, r := range records {
		if len(r.Tags) == 0 {
			untagged = append(untagged, r)
			continue
		}
		for _, t := range r.Tags {
			byTag[t] = append(byTag[t], r)
		}
	}

	names := make([]string, 0, len(byTag))
	for name := range byTag {
		names = append(names, name)
	}
	sort.Strings(names)

	branch := func(label string, recs []shortcut.Record) {
		fmt.Fprintf(w, "%s/\n", label)
		for i, r := range recs {
			connector := "├── "
			if i == len(recs)-1 {
				connector = "└── "
			}
			fmt.Fprintf(w, "%s%s  %s\n", connector, r.Key, r.Title)
		}
	}
	for _, name := range names {
		branch(name, byTag[name])
	}
	if len(untagged) > 0 {
		branch("(untagged)", untagged)
	}
	return nil
}

// Tags prints tags with their colour and use count.
func Tags(w io.Writer, tags []settings.Tag) error {
	for _, t := range tags {
		src := "default"
		if t.Explicit {
			src = "set"
		}
		fmt.Fprintf(w, "%s  %-7s  %3d  %s\n", t.Color, src, t.Count, t.Name)
	}
	return nil
}

// SearchResults prints ranked results with their scores.
func SearchResults(w io.Writer, results []search.Result, groups []search.GroupResult) error {
	var recs []shortcut.Record
	for _, r := range results {
		recs = append(recs, r.Record)
	}
	kw := keyWidth(recs)
	for _, g := range groups {
		kw = max(kw, lipgloss.Width(g.Group.Key))
	}

	for _, r := range results {
		fmt.Fprintf(w, "%5d  %s  %s  %s\n", r.Score, pad(r.Record.Key, kw), r.Record.Title, target(r.Record))
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%5d  %s  %s  [group]\n", g.Score, pad(g.Group.Key, kw), g.Group.Title)
	}
	return nil
}

// Candidates prints key-match candidates.
func Candidates(w io.Writer, cands []shortcut.Candidate) error {
	for _, c := range cands {
		kind := shortcut.ActionIDOf(c.Action).String()
		if c.IsGroup() {
			kind = "group"
		}
		fmt.Fprintf(w, "%s  %s  (%s)\n", c.Key, c.Title, kind)
	}
	return nil
}

// Issues prints validation issues, errors first.
func Issues(w io.Writer, res validate.Result) error {
	for _, i := range append(res.Errors(), res.Warnings()...) {
		fmt.Fprintln(w, i)
	}
	return nil
}

// Markdown renders one record as a markdown document for show.
func Markdown(r shortcut.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s `%s`\n\n", r.Title, r.Key)
	fmt.Fprintf(&b, "- **Action:** %s\n", shortcut.ActionIDOf(r.Action))
	if u := r.URL(); u != "" {
		fmt.Fprintf(&b, "- **URL:** %s\n", u)
	}
	if len(r.Aliases) > 0 {
		fmt.Fprintf(&b, "- **Aliases:** %s\n", strings.Join(r.Aliases, ", "))
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Fprintf(&b, "- **Uses:** %d\n", r.UseCount)
	if r.LastUsedAt != nil {
		fmt.Fprintf(&b, "- **Last used:** %s\n", time.UnixMilli(*r.LastUsedAt).Format(time.RFC3339))
	}
	if r.Hidden {
		b.WriteString("- **Hidden**\n")
	}
	if r.HideOnPopup {
		b.WriteString("- **Hidden from popup**\n")
	}
	fmt.Fprintf(&b, "- **ID:** `%s`\n", r.ID)
	if s := r.Script(); s != "" {
		fmt.Fprintf(&b, "\n```js\n%s\n```\n", s)
	}
	return b.String()
}
