package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordJSON struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Action   int      `json:"action"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`
	UseCount int      `json:"useCount"`
}

func (e *testEnv) records(args ...string) []recordJSON {
	e.t.Helper()
	var out []recordJSON
	require.NoError(e.t, json.Unmarshal(e.stdout(append([]string{"ls", "-o", "json"}, args...)...), &out))
	return out
}

func (e *testEnv) record(key string) recordJSON {
	e.t.Helper()
	for _, r := range e.records("--hidden") {
		if r.Key == key {
			return r
		}
	}
	e.t.Fatalf("no shortcut %s", key)
	return recordJSON{}
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("ls")
	env.contains(out, "GM")
	env.contains(out, "Gmail")
	env.contains(out, "YouTube")
}

func TestLs_JSON(t *testing.T) {
	env := newTestEnv(t)

	assert.Len(t, env.records(), 6)
}

func TestLs_Tag(t *testing.T) {
	env := newTestEnv(t)

	recs := env.records("--tag", "SNS")
	var keys []string
	for _, r := range recs {
		keys = append(keys, r.Key)
	}
	assert.ElementsMatch(t, []string{"T", "F"}, keys)
}

func TestLs_Tree(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("ls", "--tree")
	env.contains(out, "SNS/")
}

func TestLs_Long(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("ls", "-l")
	env.contains(out, "LAST USED")
	env.contains(out, "open-new-tab")
}

func TestAdd(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("add", "gh", "GitHub", "--url", "https://github.com/", "--tag", "dev", "--action", "jump-to-tab")
	env.equals(out, "Added GH (GitHub)")

	r := env.record("GH")
	assert.Equal(t, "https://github.com/", r.URL)
	assert.Equal(t, 3, r.Action)
	assert.Equal(t, []string{"dev"}, r.Tags)
}

func TestAdd_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing url", []string{"add", "Z", "Zed"}},
		{"unknown action", []string{"add", "Z", "Zed", "--url", "https://z.example/", "--action", "teleport"}},
		{"missing title", []string{"add", "Z"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.runErr(tc.args...)
			assert.Error(t, err)
		})
	}
	assert.Len(t, env.records(), 6)
}

func TestAdd_KeyCollisionWarns(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("add", "GM", "Google Maps", "--url", "https://maps.google.com/")
	env.contains(out, "warning:")
	env.contains(out, "Added GM (Google Maps)")
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t)
	env.run("add", "gh", "GitHub", "--url", "https://github.com/")

	out := env.run("edit", "GH", "--title", "GitHub Home", "--dry-run")
	env.contains(out, "+ title: GitHub Home")
	assert.Equal(t, "GitHub", env.record("GH").Title, "dry run leaves the store untouched")

	out = env.run("edit", "GH", "--title", "GitHub Home")
	env.equals(out, "Updated GH (GitHub Home)")
	assert.Equal(t, "GitHub Home", env.record("GH").Title)
}

func TestEdit_NoChanges(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("edit", "GM", "--title", "Gmail", "--dry-run")
	env.equals(out, "No changes")
}

func TestEdit_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("edit", "QQ", "--title", "x")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("show", "GM", "--raw")
	env.contains(out, "# Gmail `GM`")
	env.contains(out, "mail.google.com")
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("rm", "T")
	env.equals(out, "Removed T (Twitter)")
	assert.Len(t, env.records(), 5)

	_, err := env.runErr("rm", "T")
	assert.Error(t, err)
}

func TestLs_Unused(t *testing.T) {
	env := newTestEnv(t)
	env.run("launch", "gs")

	var keys []string
	for _, r := range env.records("--unused", "1d") {
		keys = append(keys, r.Key)
	}
	assert.NotContains(t, keys, "GS")
	assert.Contains(t, keys, "GM")

	_, err := env.runErr("ls", "--unused", "soon")
	assert.Error(t, err)
}
