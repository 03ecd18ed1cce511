package transfer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/storage"
	"github.com/jpl-au/shortkey/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *settings.Store {
	t.Helper()
	s, err := settings.Open(context.Background(), storage.NewMemory(storage.DefaultQuota()))
	require.NoError(t, err)
	return s
}

func keys(records []shortcut.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key
	}
	return out
}

const extensionExport = `[
  {"key": "GH", "title": "GitHub", "action": 1, "url": "https://github.com"},
  {"id": "fixed-id", "key": "D", "title": "Dark mode", "action": 4, "script": "javascript:alert(1)", "tags": ["tools"]}
]`

func TestImport_AppendsAndMigrates(t *testing.T) {
	s := openStore(t)
	before := len(s.Snapshot().ShortcutKeys)

	res, err := transfer.Import(context.Background(), nil, s, strings.NewReader(extensionExport), transfer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, []string{"GH", "D"}, res.Keys)

	snap := s.Snapshot()
	require.Len(t, snap.ShortcutKeys, before+2)

	gh, ok := snap.Record("GH")
	require.True(t, ok)
	assert.NotEmpty(t, gh.ID)
	assert.Equal(t, "https://github.com", gh.URL())
	assert.Equal(t, []string{}, gh.Aliases)
	assert.NotZero(t, gh.CreatedAt)

	d, ok := snap.Record("fixed-id")
	require.True(t, ok)
	assert.Equal(t, shortcut.ActionRunScript, shortcut.ActionIDOf(d.Action))
	assert.Equal(t, []string{"tools"}, d.Tags)
}

func TestImport_RejectsWholesale(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not json", `{"key":`, "invalid import"},
		{"not an array", `{"key": "A"}`, "invalid import"},
		{"missing action", `[{"key": "A", "title": "A", "url": "https://a"}, {"key": "B", "title": "B"}]`, "record 1"},
		{"missing url", `[{"key": "A", "title": "A", "action": 1, "url": "https://a"}, {"key": "B", "title": "B", "action": 1}]`, "record 2"},
		{"unknown action", `[{"key": "A", "title": "A", "action": 42}]`, "record 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openStore(t)
			want := keys(s.Snapshot().ShortcutKeys)

			_, err := transfer.Import(context.Background(), nil, s, strings.NewReader(tt.input), transfer.Options{})
			require.ErrorIs(t, err, transfer.ErrInvalidImport)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, want, keys(s.Snapshot().ShortcutKeys))
		})
	}
}

func TestImport_ClashingIDGetsFreshOne(t *testing.T) {
	s := openStore(t)
	existing := s.Snapshot().ShortcutKeys[0]

	input := `[{"id": "` + existing.ID + `", "key": "Z", "title": "Zed", "action": 1, "url": "https://z"}]`
	_, err := transfer.Import(context.Background(), nil, s, strings.NewReader(input), transfer.Options{})
	require.NoError(t, err)

	z, ok := s.Snapshot().Record("Z")
	require.True(t, ok)
	assert.NotEqual(t, existing.ID, z.ID)

	kept, ok := s.Record(existing.ID)
	require.True(t, ok)
	assert.Equal(t, existing.Key, kept.Key)
}

func TestImport_DryRun(t *testing.T) {
	s := openStore(t)
	want := keys(s.Snapshot().ShortcutKeys)

	var out bytes.Buffer
	res, err := transfer.Import(context.Background(), &out, s, strings.NewReader(extensionExport), transfer.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.False(t, res.Diff.Empty())
	assert.Contains(t, out.String(), "+ - id: fixed-id")
	assert.Contains(t, out.String(), "title: GitHub")
	assert.Equal(t, want, keys(s.Snapshot().ShortcutKeys), "dry run must not write")
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, f := range []transfer.Format{transfer.FormatJSON, transfer.FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			src := openStore(t)
			var buf bytes.Buffer
			require.NoError(t, transfer.Export(&buf, src.Snapshot().ShortcutKeys, f))

			dst, err := settings.Open(context.Background(), storage.NewMemory(storage.DefaultQuota()))
			require.NoError(t, err)
			require.NoError(t, dst.Update(context.Background(), settings.Snapshot{ShortcutKeys: []shortcut.Record{}}))

			_, err = transfer.Import(context.Background(), nil, dst, &buf, transfer.Options{Format: f})
			require.NoError(t, err)

			got := dst.Snapshot().ShortcutKeys
			orig := src.Snapshot().ShortcutKeys
			require.Equal(t, keys(orig), keys(got))
			for i := range orig {
				assert.Equal(t, orig[i].ID, got[i].ID)
				assert.Equal(t, orig[i].Aliases, got[i].Aliases)
				assert.Equal(t, orig[i].URL(), got[i].URL())
			}
		})
	}
}

func TestExport_JSONIsFlatArray(t *testing.T) {
	rec := shortcut.Record{ID: "x", Key: "A", Title: "A", Action: shortcut.OpenNewTab{URL: "https://a"}}

	var buf bytes.Buffer
	require.NoError(t, transfer.Export(&buf, []shortcut.Record{rec}, transfer.FormatJSON))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, float64(1), raw[0]["action"])
	assert.Equal(t, "https://a", raw[0]["url"])
}

func TestParseFormat(t *testing.T) {
	f, err := transfer.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, transfer.FormatYAML, f)

	_, err = transfer.ParseFormat("csv")
	assert.ErrorIs(t, err, transfer.ErrUnknownFormat)

	assert.Equal(t, transfer.FormatYAML, transfer.FormatFor("backup.yaml"))
	assert.Equal(t, transfer.FormatJSON, transfer.FormatFor(transfer.DefaultFile))
}
