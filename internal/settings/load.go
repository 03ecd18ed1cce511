// load.go reads the persisted snapshot.
//
// Which tier to read is decided by the "synced" flag kept in the local
// area. Its absence means first run: the sync area is tried first (another
// device may have written it) and the local area is the fallback. Every read
// failure is treated as "no data", which ends in the default records.

package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/storage"
)

// Storage keys outside the record slots.
const (
	KeySettings = "settings"
	KeySynced   = "synced"
	KeyCache    = "cache"
)

// storedSettings is the "settings" item. ShortcutKeys is only ever read:
// older versions kept every record inside this item.
type storedSettings struct {
	ShortcutKeys           []shortcut.LegacyRecord `json:"shortcutKeys,omitempty"`
	ShortcutGroups         []shortcut.Group        `json:"shortcutGroups"`
	ListColumnCount        int                     `json:"listColumnCount"`
	CategoryFilterPosition string                  `json:"categoryFilterPosition"`
	TagColors              map[string]string       `json:"tagColors,omitempty"`
}

// Open loads the persisted snapshot and writes it straight back so that
// migrated records are stored in their current shape.
func Open(ctx context.Context, backend storage.Storage, opts ...Option) (*Store, error) {
	s := newStore(backend, opts)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, s.Snapshot()); err != nil {
		return nil, err
	}
	return s, nil
}

// Cached returns a store built from the local cache item, falling back to a
// full load when there is no usable cache. Nothing is written back.
func Cached(ctx context.Context, backend storage.Storage, opts ...Option) (*Store, error) {
	s := newStore(backend, opts)

	items, err := backend.Get(ctx, storage.AreaLocal, KeyCache)
	if err == nil {
		if data, ok := items[KeyCache]; ok {
			var snap Snapshot
			decodeErr := json.Unmarshal(data, &snap)
			if decodeErr == nil {
				snap.normalise()
				s.swap(snap)
				return s, nil
			}
			s.log.Warn("ignoring unreadable settings cache", "error", decodeErr)
		}
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the live snapshot with the persisted one and refreshes the
// cache. Only a failure to write the cache is returned.
func (s *Store) Load(ctx context.Context) error {
	s.write.Lock()
	defer s.write.Unlock()

	snap := s.read(ctx)
	s.swap(snap)
	return s.writeCache(ctx, snap)
}

// Reload re-reads the persisted copy, discarding the in-memory snapshot.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *Store) read(ctx context.Context) Snapshot {
	synced, known := s.syncedFlag(ctx)

	var loaded map[string]json.RawMessage
	switch {
	case !known:
		loaded = s.getAll(ctx, storage.AreaSync)
		if len(loaded) == 0 {
			loaded = s.getAll(ctx, storage.AreaLocal)
		}
		synced = true
	case synced:
		loaded = s.getAll(ctx, storage.AreaSync)
	default:
		loaded = s.getAll(ctx, storage.AreaLocal)
	}

	var stored storedSettings
	if data, ok := loaded[KeySettings]; ok {
		if err := json.Unmarshal(data, &stored); err != nil {
			s.log.Warn("ignoring unreadable settings item", "error", err)
			stored = storedSettings{}
		}
	}

	var legacy []shortcut.LegacyRecord
	switch {
	case stored.ShortcutKeys != nil:
		legacy = stored.ShortcutKeys
	case hasKey(loaded, SlotNames[0]):
		legacy = s.mergeSlots(loaded)
	default:
		for _, r := range shortcut.DefaultRecords() {
			legacy = append(legacy, r.Legacy())
		}
	}

	records := make([]shortcut.Record, len(legacy))
	for i, l := range legacy {
		records[i] = MigrateLegacyRecord(l, i).Record()
	}

	snap := Snapshot{
		ShortcutKeys:           records,
		ShortcutGroups:         stored.ShortcutGroups,
		ListColumnCount:        stored.ListColumnCount,
		CategoryFilterPosition: stored.CategoryFilterPosition,
		Synced:                 synced,
		TagColors:              stored.TagColors,
	}
	if s.commands != nil {
		if cmd, err := s.commands.StartupCommand(ctx); err == nil {
			snap.StartupCommand = cmd
		}
	}
	snap.normalise()
	return snap
}

func (s *Store) syncedFlag(ctx context.Context) (synced, known bool) {
	items, err := s.backend.Get(ctx, storage.AreaLocal, KeySynced)
	if err != nil {
		s.log.Warn("reading sync flag", "error", err)
		return false, false
	}
	data, ok := items[KeySynced]
	if !ok {
		return false, false
	}
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil || v == nil {
		return false, false
	}
	return *v, true
}

func (s *Store) getAll(ctx context.Context, area storage.Area) map[string]json.RawMessage {
	items, err := s.backend.Get(ctx, area)
	if err != nil {
		s.log.Warn("reading storage", "area", area, "error", err)
		return nil
	}
	return items
}

func (s *Store) mergeSlots(loaded map[string]json.RawMessage) []shortcut.LegacyRecord {
	slots := make([][]shortcut.LegacyRecord, SlotCount)
	for i, name := range SlotNames {
		data, ok := loaded[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, &slots[i]); err != nil {
			s.log.Warn("ignoring unreadable record slot", "slot", name, "error", err)
			slots[i] = nil
		}
	}
	return Merge(slots)
}

func (s *Store) writeCache(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := s.backend.Set(ctx, storage.AreaLocal, map[string]json.RawMessage{KeyCache: data}); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

func hasKey(m map[string]json.RawMessage, k string) bool {
	_, ok := m[k]
	return ok
}
