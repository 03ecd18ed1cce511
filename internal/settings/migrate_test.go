package settings_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMigrateLegacyRecord_FillsDefaults(t *testing.T) {
	got := settings.MigrateLegacyRecord(shortcut.LegacyRecord{
		Key:    ptr("GM"),
		Title:  ptr("Gmail"),
		Action: ptr(3),
		URL:    ptr("https://mail.google.com/"),
	}, 7)

	require.NotNil(t, got.ID)
	assert.NotEmpty(t, *got.ID)
	assert.Equal(t, []string{}, got.Aliases)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, "", *got.Script)
	assert.False(t, *got.Hidden)
	assert.False(t, *got.HideOnPopup)
	assert.Equal(t, 7, *got.SortOrder)
	assert.Equal(t, 0, *got.UseCount)
	assert.Nil(t, got.LastUsedAt)
	assert.NotZero(t, *got.CreatedAt)
	assert.NotZero(t, *got.UpdatedAt)

	rec := got.Record()
	assert.Equal(t, shortcut.JumpToTab{URL: "https://mail.google.com/"}, rec.Action)
}

func TestMigrateLegacyRecord_KeepsPresentFields(t *testing.T) {
	got := settings.MigrateLegacyRecord(shortcut.LegacyRecord{
		ID:        ptr("keep"),
		SortOrder: ptr(0),
		UseCount:  ptr(4),
		CreatedAt: ptr(int64(10)),
	}, 3)
	assert.Equal(t, "keep", *got.ID)
	assert.Equal(t, 0, *got.SortOrder, "an explicit zero sort order is kept")
	assert.Equal(t, 4, *got.UseCount)
	assert.Equal(t, int64(10), *got.CreatedAt)
}

func TestMigrateLegacyRecord_EmptyIDReplaced(t *testing.T) {
	got := settings.MigrateLegacyRecord(shortcut.LegacyRecord{ID: ptr("")}, 0)
	assert.NotEmpty(t, *got.ID)
}

func TestMigrateLegacyRecord_Idempotent(t *testing.T) {
	used := int64(1700000000000)
	inputs := []shortcut.LegacyRecord{
		{},
		{Key: ptr("A")},
		{ID: ptr("x"), Key: ptr("B"), Aliases: []string{"b"}, Action: ptr(1), URL: ptr("https://b/")},
		{ID: ptr("y"), LastUsedAt: &used, Hidden: ptr(true), Action: ptr(42)},
	}
	for i, in := range inputs {
		once := settings.MigrateLegacyRecord(in, i)
		twice := settings.MigrateLegacyRecord(once, i)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("input %d: migration not idempotent (-once +twice):\n%s", i, diff)
		}
	}
}

func TestMigrateLegacyRecord_DoesNotAliasInput(t *testing.T) {
	in := shortcut.LegacyRecord{ID: ptr("x"), Aliases: []string{"a"}}
	out := settings.MigrateLegacyRecord(in, 0)
	out.Aliases[0] = "changed"
	*out.ID = "changed"
	assert.Equal(t, "a", in.Aliases[0])
	assert.Equal(t, "x", *in.ID)
}
