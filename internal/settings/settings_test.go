package settings_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStorage fails writes to one area on demand.
type flakyStorage struct {
	*storage.Memory
	failArea storage.Area
}

func (f *flakyStorage) Set(ctx context.Context, area storage.Area, items map[string]json.RawMessage) error {
	if area == f.failArea {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, area, items)
}

func openStore(t *testing.T, backend storage.Storage, opts ...settings.Option) *settings.Store {
	t.Helper()
	s, err := settings.Open(context.Background(), backend, opts...)
	require.NoError(t, err)
	return s
}

func recordKeys(records []shortcut.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key
	}
	return out
}

func getJSON(t *testing.T, backend storage.Storage, area storage.Area, key string, v any) bool {
	t.Helper()
	items, err := backend.Get(context.Background(), area, key)
	require.NoError(t, err)
	data, ok := items[key]
	if !ok {
		return false
	}
	require.NoError(t, json.Unmarshal(data, v))
	return true
}

func TestOpen_FirstRunSeedsDefaults(t *testing.T) {
	mem := storage.NewMemory(storage.DefaultQuota())
	s := openStore(t, mem, settings.WithCommands(settings.StaticCommand("Ctrl+Shift+K")))

	snap := s.Snapshot()
	assert.Equal(t, []string{"F", "GM", "GS", "P", "T", "Y"}, recordKeys(snap.ShortcutKeys), "sorted by key")
	assert.True(t, snap.Synced)
	assert.Equal(t, settings.DefaultListColumnCount, snap.ListColumnCount)
	assert.Equal(t, settings.PositionTop, snap.CategoryFilterPosition)
	assert.Equal(t, "Ctrl+Shift+K", snap.StartupCommand)
	assert.NotNil(t, snap.TagColors)

	var synced bool
	require.True(t, getJSON(t, mem, storage.AreaLocal, settings.KeySynced, &synced))
	assert.True(t, synced)

	for _, area := range []storage.Area{storage.AreaLocal, storage.AreaSync} {
		var slot []shortcut.Record
		require.True(t, getJSON(t, mem, area, settings.SlotNames[0], &slot), area)
		assert.Len(t, slot, 1)
		assert.True(t, getJSON(t, mem, area, settings.KeySettings, &map[string]any{}), area)
	}

	var cache settings.Snapshot
	require.True(t, getJSON(t, mem, storage.AreaLocal, settings.KeyCache, &cache))
	assert.Len(t, cache.ShortcutKeys, 6)
	assert.NotContains(t, mem.Keys(storage.AreaSync), settings.KeyCache, "cache stays local")
}

func TestOpen_FirstRunFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.DefaultQuota())
	require.NoError(t, mem.Set(ctx, storage.AreaLocal, map[string]json.RawMessage{
		settings.KeySettings:   json.RawMessage(`{"shortcutGroups":[],"listColumnCount":4,"categoryFilterPosition":"left"}`),
		settings.SlotNames[0]:  json.RawMessage(`[{"id":"r1","key":"Q","title":"Query","action":1,"url":"https://q/"}]`),
		settings.SlotNames[1]:  json.RawMessage(`[]`),
		"unrelated-local-item": json.RawMessage(`1`),
	}))

	snap := openStore(t, mem).Snapshot()
	require.Len(t, snap.ShortcutKeys, 1)
	assert.Equal(t, "r1", snap.ShortcutKeys[0].ID)
	assert.Equal(t, 4, snap.ListColumnCount)
	assert.Equal(t, settings.PositionLeft, snap.CategoryFilterPosition)
	assert.True(t, snap.Synced, "first run defaults to sync")
}

func TestLoad_LegacySettingsRecords(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.DefaultQuota())
	require.NoError(t, mem.Set(ctx, storage.AreaSync, map[string]json.RawMessage{
		settings.KeySettings: json.RawMessage(`{"shortcutKeys":[
			{"key":"Z","title":"Zed","action":1,"url":"https://z/"},
			{"key":"A","title":"Ay","action":4,"script":"javascript:alert(1)"}
		]}`),
	}))

	snap := openStore(t, mem).Snapshot()
	require.Len(t, snap.ShortcutKeys, 2)
	assert.Equal(t, []string{"A", "Z"}, recordKeys(snap.ShortcutKeys))
	assert.NotEmpty(t, snap.ShortcutKeys[0].ID)
	assert.Equal(t, 1, snap.ShortcutKeys[0].SortOrder, "sort order is the legacy position")
	assert.Equal(t, shortcut.RunScript{Script: "javascript:alert(1)"}, snap.ShortcutKeys[0].Action)

	// The write-back moves records into slots; the legacy list is gone.
	var stored map[string]any
	require.True(t, getJSON(t, mem, storage.AreaSync, settings.KeySettings, &stored))
	assert.NotContains(t, stored, "shortcutKeys")
	var slot []shortcut.Record
	require.True(t, getJSON(t, mem, storage.AreaSync, settings.SlotNames[1], &slot))
	require.Len(t, slot, 1)
	assert.Equal(t, "Z", slot[0].Key)
}

func TestLoad_EmptySlotsMeanNoRecords(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.DefaultQuota())
	s := openStore(t, mem)
	require.NoError(t, s.Update(ctx, settings.Snapshot{Synced: true}))

	reopened := openStore(t, mem)
	assert.Empty(t, reopened.Snapshot().ShortcutKeys, "deleting every record must not bring the defaults back")
}

func TestUpdate_SortsAndPersists(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.DefaultQuota())
	s := openStore(t, mem)

	snap := s.Snapshot()
	snap.ShortcutKeys = []shortcut.Record{
		{ID: "2", Key: "ZZ", Title: "Last", Action: shortcut.OpenNewTab{URL: "https://z/"}},
		{ID: "1", Key: "AA", Title: "First", Action: shortcut.OpenNewTab{URL: "https://a/"}},
	}
	snap.ListColumnCount = 5
	require.NoError(t, s.Update(ctx, snap))

	assert.Equal(t, []string{"AA", "ZZ"}, recordKeys(s.Snapshot().ShortcutKeys))

	reopened := openStore(t, mem)
	assert.Equal(t, []string{"AA", "ZZ"}, recordKeys(reopened.Snapshot().ShortcutKeys))
	assert.Equal(t, 5, reopened.Snapshot().ListColumnCount)
}

func TestUpdate_CallerCopyIsIsolated(t *testing.T) {
	s := openStore(t, storage.NewMemory(storage.DefaultQuota()))
	snap := s.Snapshot()
	snap.ShortcutKeys[0].Title = "mutated"
	assert.NotEqual(t, "mutated", s.Snapshot().ShortcutKeys[0].Title)
}

func TestUpdate_LocalFailureLeavesSnapshot(t *testing.T) {
	backend := &flakyStorage{Memory: storage.NewMemory(storage.DefaultQuota())}
	s := openStore(t, backend)
	before := s.Snapshot()

	backend.failArea = storage.AreaLocal
	next := s.Snapshot()
	next.ShortcutKeys = nil
	err := s.Update(context.Background(), next)
	require.Error(t, err)

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("snapshot changed after failed update (-before +after):\n%s", diff)
	}
}

func TestSyncFailureDowngrades(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStorage{Memory: storage.NewMemory(storage.DefaultQuota()), failArea: storage.AreaSync}

	var notices []error
	s := openStore(t, backend, settings.WithSyncDisabled(func(err error) { notices = append(notices, err) }))

	assert.False(t, s.Snapshot().Synced)
	require.Len(t, notices, 1)

	var synced bool
	require.True(t, getJSON(t, backend, storage.AreaLocal, settings.KeySynced, &synced))
	assert.False(t, synced)

	// Further saves stay local and do not repeat the notice.
	require.NoError(t, s.IncrementUseCount(ctx, s.Snapshot().ShortcutKeys[0].ID))
	assert.Len(t, notices, 1)

	// With the flag persisted, the next load reads the local tier.
	reopened := openStore(t, backend)
	assert.False(t, reopened.Snapshot().Synced)
	assert.Len(t, reopened.Snapshot().ShortcutKeys, 6)
}

func TestSyncQuotaDowngrades(t *testing.T) {
	mem := storage.NewMemory(storage.Quota{MaxItems: 10})
	fired := 0
	s := openStore(t, mem, settings.WithSyncDisabled(func(err error) {
		assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
		fired++
	}))
	assert.False(t, s.Snapshot().Synced)
	assert.Equal(t, 1, fired)
	assert.Empty(t, mem.Keys(storage.AreaSync), "over-quota write stores nothing")
}

func TestIncrementUseCount(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory(storage.DefaultQuota()))
	id := s.Snapshot().ShortcutKeys[0].ID

	require.NoError(t, s.IncrementUseCount(ctx, id))
	require.NoError(t, s.IncrementUseCount(ctx, id))

	rec, ok := s.Record(id)
	require.True(t, ok)
	assert.Equal(t, 2, rec.UseCount)
	require.NotNil(t, rec.LastUsedAt)
	assert.Equal(t, *rec.LastUsedAt, rec.UpdatedAt)
}

func TestIncrementUseCount_UnknownIDIsNoop(t *testing.T) {
	s := openStore(t, storage.NewMemory(storage.DefaultQuota()))
	before := s.Snapshot()

	require.NoError(t, s.IncrementUseCount(context.Background(), "no-such-id"))

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("snapshot changed (-before +after):\n%s", diff)
	}
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.DefaultQuota())
	s := openStore(t, mem)
	require.NoError(t, s.Mutate(ctx, func(snap *settings.Snapshot) error {
		snap.ListColumnCount = 2
		return nil
	}))

	// Wipe the persisted tiers: Cached must not touch them.
	require.NoError(t, mem.Remove(ctx, storage.AreaSync, mem.Keys(storage.AreaSync)...))

	cached, err := settings.Cached(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.Snapshot().ListColumnCount)
	assert.Len(t, cached.Snapshot().ShortcutKeys, 6)
}

func TestCached_NoCacheLoads(t *testing.T) {
	cached, err := settings.Cached(context.Background(), storage.NewMemory(storage.DefaultQuota()))
	require.NoError(t, err)
	assert.Len(t, cached.Snapshot().ShortcutKeys, 6)
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.DefaultQuota())
	a := openStore(t, mem)
	b := openStore(t, mem)

	require.NoError(t, a.Mutate(ctx, func(snap *settings.Snapshot) error {
		snap.ShortcutKeys = snap.ShortcutKeys[:1]
		return nil
	}))
	assert.Len(t, b.Snapshot().ShortcutKeys, 6)

	require.NoError(t, b.Reload(ctx))
	assert.Len(t, b.Snapshot().ShortcutKeys, 1)
}

func TestMutate_ErrorWritesNothing(t *testing.T) {
	s := openStore(t, storage.NewMemory(storage.DefaultQuota()))
	boom := errors.New("boom")
	err := s.Mutate(context.Background(), func(snap *settings.Snapshot) error {
		snap.ShortcutKeys = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Snapshot().ShortcutKeys, 6)
}

func TestStore_FindAndSearch(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory(storage.DefaultQuota()))
	require.NoError(t, s.Mutate(ctx, func(snap *settings.Snapshot) error {
		snap.ShortcutKeys = []shortcut.Record{
			{ID: "wsa", Key: "WSA", Title: "Work A"},
			{ID: "wsb", Key: "WSB", Title: "Work B", Hidden: true},
		}
		snap.ShortcutGroups = []shortcut.Group{{ID: "g", Key: "WS", Title: "Work", ShortcutKeyIDs: []string{"wsa"}}}
		return nil
	}))

	found := s.Find("ws")
	require.Len(t, found, 1)
	assert.True(t, found[0].IsGroup())

	found = s.Find("WSA")
	require.Len(t, found, 1)
	assert.Equal(t, "wsa", found[0].ID)

	results := s.Search("work")
	require.Len(t, results, 1)
	assert.Equal(t, "wsa", results[0].Record.ID)

	groups := s.SearchGroups("work")
	require.Len(t, groups, 1)
}

func TestSnapshot_Lookup(t *testing.T) {
	snap := settings.Snapshot{
		ShortcutKeys:   []shortcut.Record{{ID: "id-1", Key: "GM"}},
		ShortcutGroups: []shortcut.Group{{ID: "g-1", Key: "WS"}},
	}
	r, ok := snap.Record("gm")
	require.True(t, ok)
	assert.Equal(t, "id-1", r.ID)
	_, ok = snap.Record("id-1")
	assert.True(t, ok)
	_, ok = snap.Record("nope")
	assert.False(t, ok)

	g, ok := snap.Group("ws")
	require.True(t, ok)
	assert.Equal(t, "g-1", g.ID)
}
