package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
)

var records = []shortcut.Record{
	{ID: "1", Key: "GS", Title: "Google", Tags: []string{"検索"}, Action: shortcut.OpenNewTab{URL: "https://www.google.com/"}},
	{ID: "2", Key: "T", Title: "ツイッター", Action: shortcut.JumpToTab{URL: "https://x.com/"}, HideOnPopup: true},
	{ID: "3", Key: "D", Title: "Dark", Action: shortcut.RunScript{Script: "document.body.style.filter='invert(1)'"}},
}

func TestPad_CountsCells(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "ツ  ", pad("ツ", 4))
	assert.Equal(t, "toolong", pad("toolong", 3))
}

func TestList(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, List(&b, records))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "GS   Google", lines[0])
	assert.Contains(t, lines[1], "[no-popup]")
}

func TestLong(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Long(&b, records))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "KEY"))
	assert.Contains(t, out, "open-new-tab")
	assert.Contains(t, out, "https://x.com/")
	assert.Contains(t, out, "document.body")
}

func TestGroups(t *testing.T) {
	g := shortcut.Group{Key: "W", Title: "Work", ShortcutKeyIDs: []string{"1", "gone", "2"}, OpenInTabGroup: true}
	var b bytes.Buffer
	require.NoError(t, Groups(&b, []shortcut.Group{g}, records))
	out := b.String()
	assert.Contains(t, out, "W  Work (tab group)")
	assert.Contains(t, out, "├── GS  Google")
	assert.Contains(t, out, "└── T  ツイッター")
	assert.Contains(t, out, "(1 missing)")
}

func TestTagTree(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, TagTree(&b, records))
	assert.Equal(t, "検索/\n└── GS  Google\n(untagged)/\n├── T  ツイッター\n└── D  Dark\n", b.String())
}

func TestMarkdown(t *testing.T) {
	md := Markdown(records[2])
	assert.Contains(t, md, "# Dark `D`")
	assert.Contains(t, md, "run-script")
	assert.Contains(t, md, "```js")
}

func TestIssues(t *testing.T) {
	res := validate.Record(shortcut.Record{Key: "G-", Action: shortcut.OpenNewTab{}}, nil)
	var b bytes.Buffer
	require.NoError(t, Issues(&b, res))
	out := b.String()
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "warning:")
	assert.Less(t, strings.Index(out, "error:"), strings.Index(out, "warning:"))
}
