package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpl-au/shortkey/internal/action"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*service.Service, *action.Recorder, string) {
	t.Helper()
	dataDir, err := repo.Init(repo.InitOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	rec := action.NewRecorder(1)
	svc, err := service.New(context.Background(), dataDir, nil, service.Options{Browser: rec})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc, rec, dataDir
}

func keys(records []shortcut.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key
	}
	return out
}

func TestNew_SeedsDefaults(t *testing.T) {
	svc, _, _ := setup(t)
	assert.Equal(t, []string{"F", "GM", "GS", "P", "T", "Y"}, keys(svc.Records(service.ListOptions{})))
}

func TestRecords_Filters(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	assert.Equal(t, []string{"F", "T"}, keys(svc.Records(service.ListOptions{Tag: "SNS"})))

	_, err := svc.EditRecord(ctx, "T", service.RecordPatch{Hidden: ptr(true)}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"F"}, keys(svc.Records(service.ListOptions{Tag: "SNS"})))
	assert.Equal(t, []string{"F", "T"}, keys(svc.Records(service.ListOptions{Tag: "SNS", Hidden: true})))
}

func TestRecords_UnusedSince(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	before := shortcut.Now()
	_, err := svc.Open(ctx, "GS")
	require.NoError(t, err)

	unused := keys(svc.Records(service.ListOptions{UnusedSince: before}))
	assert.Equal(t, []string{"F", "GM", "P", "T", "Y"}, unused)

	unused = keys(svc.Records(service.ListOptions{UnusedSince: shortcut.Now() + 1000}))
	assert.Contains(t, unused, "GS", "a use before the cutoff counts as unused")
}

func TestAddRecord(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	ch, err := svc.AddRecord(ctx, service.RecordPatch{
		Key:   ptr("yt"),
		Title: ptr("YouTube Studio"),
		URL:   ptr("https://studio.youtube.com/"),
		Tags:  ptr([]string{"動画"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "YT", ch.Record.Key)
	assert.NotEmpty(t, ch.Record.ID)
	assert.Equal(t, shortcut.OpenNewTab{URL: "https://studio.youtube.com/"}, ch.Record.Action)
	assert.NotEmpty(t, ch.Issues.Warnings(), "Y is a prefix of YT")

	r, ok := svc.Store().Record("YT")
	require.True(t, ok)
	assert.Equal(t, "YouTube Studio", r.Title)
}

func TestAddRecord_InvalidIsNotStored(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		patch service.RecordPatch
	}{
		{"missing url", service.RecordPatch{Key: ptr("X"), Title: ptr("x")}},
		{"missing title", service.RecordPatch{Key: ptr("X"), URL: ptr("https://x.example/")}},
		{"missing script", service.RecordPatch{Key: ptr("X"), Title: ptr("x"), Action: ptr(shortcut.ActionRunScript)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddRecord(ctx, tc.patch)
			require.ErrorIs(t, err, service.ErrInvalid)
			_, ok := svc.Store().Record("X")
			assert.False(t, ok)
		})
	}
}

func TestEditRecord(t *testing.T) {
	svc, _, dataDir := setup(t)
	ctx := context.Background()

	ch, err := svc.EditRecord(ctx, "gm", service.RecordPatch{Title: ptr("Mail"), Action: ptr(shortcut.ActionOpenNewTab)}, false)
	require.NoError(t, err)
	assert.Equal(t, "Mail", ch.Record.Title)
	assert.Equal(t, shortcut.OpenNewTab{URL: "https://mail.google.com/"}, ch.Record.Action)

	require.NoError(t, svc.Close())
	reopened, err := service.New(ctx, dataDir, nil, service.Options{Browser: action.NewRecorder(1)})
	require.NoError(t, err)
	defer reopened.Close()

	r, ok := reopened.Store().Record("GM")
	require.True(t, ok)
	assert.Equal(t, "Mail", r.Title)
}

func TestEditRecord_DryRun(t *testing.T) {
	svc, _, _ := setup(t)

	ch, err := svc.EditRecord(context.Background(), "GM", service.RecordPatch{Title: ptr("Mail")}, true)
	require.NoError(t, err)
	assert.False(t, ch.Diff.Empty())
	assert.Contains(t, ch.Diff.Diff, "+ title: Mail")

	r, _ := svc.Store().Record("GM")
	assert.Equal(t, "Gmail", r.Title)
}

func TestEditRecord_NotFound(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.EditRecord(context.Background(), "ZZ", service.RecordPatch{Title: ptr("x")}, false)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGroups(t *testing.T) {
	svc, rec, _ := setup(t)
	ctx := context.Background()

	ch, err := svc.AddGroup(ctx, service.GroupPatch{
		Key:     ptr("w"),
		Title:   ptr("Work"),
		Members: ptr([]string{"GM", "GS", "gm"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "W", ch.Group.Key)
	require.Len(t, ch.Group.ShortcutKeyIDs, 2)

	c, err := svc.Open(ctx, "W")
	require.NoError(t, err)
	assert.True(t, c.IsGroup())
	var urls []string
	for _, call := range rec.Calls() {
		if call.Op == "create" {
			urls = append(urls, call.URL)
		}
	}
	assert.Equal(t, []string{"https://mail.google.com/", "https://www.google.com/"}, urls)

	gm, _ := svc.Store().Record("GM")
	assert.Zero(t, gm.UseCount, "opening a group does not count member use")

	_, err = svc.RemoveRecord(ctx, "GS")
	require.NoError(t, err)
	g, ok := svc.Store().Group("W")
	require.True(t, ok)
	assert.Equal(t, []string{gm.ID}, g.ShortcutKeyIDs)

	_, err = svc.RemoveGroup(ctx, "W")
	require.NoError(t, err)
	assert.Empty(t, svc.Groups())
}

func TestAddGroup_Errors(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.AddGroup(ctx, service.GroupPatch{Key: ptr("W"), Title: ptr("Work"), Members: ptr([]string{"NOPE"})})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.AddGroup(ctx, service.GroupPatch{Key: ptr("W"), Title: ptr("Work")})
	assert.ErrorIs(t, err, service.ErrInvalid)
	assert.Empty(t, svc.Groups())
}

func TestResolve(t *testing.T) {
	svc, _, _ := setup(t)

	c, err := svc.Resolve("gm")
	require.NoError(t, err)
	assert.Equal(t, "Gmail", c.Title)

	_, err = svc.Resolve("G")
	assert.ErrorIs(t, err, service.ErrAmbiguous)

	_, err = svc.Resolve("Q")
	assert.ErrorIs(t, err, service.ErrNoMatch)
}

func TestLaunch_CountsUse(t *testing.T) {
	svc, rec, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Launch(ctx, "GS")
	require.NoError(t, err)
	require.NotEmpty(t, rec.Calls())
	assert.Equal(t, "create", rec.Calls()[0].Op)

	r, _ := svc.Store().Record("GS")
	assert.Equal(t, 1, r.UseCount)
	assert.NotNil(t, r.LastUsedAt)
}

func TestPrefs(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPref(ctx, service.PrefListColumnCount, "4"))
	require.NoError(t, svc.SetPref(ctx, service.PrefCategoryFilterPosition, "left"))
	require.NoError(t, svc.SetPref(ctx, service.PrefSyncEnabled, "false"))

	prefs := svc.Prefs()
	assert.Equal(t, "4", prefs[service.PrefListColumnCount])
	assert.Equal(t, "left", prefs[service.PrefCategoryFilterPosition])
	assert.Equal(t, "false", prefs[service.PrefSyncEnabled])

	assert.ErrorIs(t, svc.SetPref(ctx, service.PrefListColumnCount, "0"), service.ErrInvalidPref)
	assert.ErrorIs(t, svc.SetPref(ctx, service.PrefCategoryFilterPosition, "middle"), service.ErrInvalidPref)
	assert.ErrorIs(t, svc.SetPref(ctx, "colour", "x"), service.ErrUnknownPref)

	_, err := svc.Pref("colour")
	assert.ErrorIs(t, err, service.ErrUnknownPref)
}

func TestSetTagColor(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTagColor(ctx, "SNS", "#112233"))
	for _, tag := range svc.Tags() {
		if tag.Name == "SNS" {
			assert.Equal(t, "#112233", tag.Color)
			assert.True(t, tag.Explicit)
		}
	}
	assert.Error(t, svc.SetTagColor(ctx, "SNS", "red"))
}

func TestExportImport(t *testing.T) {
	src, _, _ := setup(t)
	dst, _, _ := setup(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf, transfer.FormatJSON))

	res, err := dst.Import(ctx, nil, &buf, transfer.Options{Format: transfer.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Imported)
	assert.Len(t, dst.Records(service.ListOptions{}), 12)
}

func TestUsage(t *testing.T) {
	svc, _, _ := setup(t)
	usage, err := svc.Usage(context.Background())
	require.NoError(t, err)
	assert.Positive(t, usage["local"].Items)
}
