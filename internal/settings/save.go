// save.go persists the snapshot.
//
// Order matters: the sync flag and the full data go to the local area first
// so that a failing sync write never leaves the device without a copy. A
// sync failure downgrades the store to local-only, records that downgrade
// locally and tells the registered listener. The cache is written last.

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/storage"
)

// ErrNotFound is returned by Mutate callbacks and lookups for a missing
// record or group.
var ErrNotFound = errors.New("not found")

// Update replaces the snapshot. Records are re-sorted by key and persisted
// before the in-memory snapshot is swapped. An error is returned only when
// the local write fails, in which case the live snapshot is unchanged. A
// failing sync write is not an error: the returned state has Synced false.
func (s *Store) Update(ctx context.Context, snap Snapshot) error {
	s.write.Lock()
	defer s.write.Unlock()
	return s.commit(ctx, snap.Clone())
}

// Mutate applies fn to a copy of the live snapshot and commits the result.
// When fn returns an error nothing is written.
func (s *Store) Mutate(ctx context.Context, fn func(*Snapshot) error) error {
	s.write.Lock()
	defer s.write.Unlock()

	snap := s.Snapshot()
	if err := fn(&snap); err != nil {
		return err
	}
	return s.commit(ctx, snap)
}

// IncrementUseCount records one execution of the record with id. Unknown
// ids are ignored.
func (s *Store) IncrementUseCount(ctx context.Context, id string) error {
	s.write.Lock()
	defer s.write.Unlock()

	snap := s.Snapshot()
	i := indexByID(snap.ShortcutKeys, id)
	if i < 0 {
		return nil
	}
	now := shortcut.Now()
	r := &snap.ShortcutKeys[i]
	r.UseCount++
	r.LastUsedAt = &now
	r.UpdatedAt = now
	return s.commit(ctx, snap)
}

// commit persists snap and swaps it in. Callers hold s.write.
func (s *Store) commit(ctx context.Context, snap Snapshot) error {
	snap.normalise()
	if err := s.persist(ctx, &snap); err != nil {
		return err
	}
	s.swap(snap)
	return s.writeCache(ctx, snap)
}

func (s *Store) persist(ctx context.Context, snap *Snapshot) error {
	if err := s.setLocal(ctx, KeySynced, snap.Synced); err != nil {
		return err
	}

	data, err := encode(*snap)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, storage.AreaLocal, data); err != nil {
		return fmt.Errorf("write local settings: %w", err)
	}

	if !snap.Synced {
		return nil
	}
	syncErr := s.backend.Set(ctx, storage.AreaSync, data)
	if syncErr == nil {
		return nil
	}

	s.log.Warn("sync write failed, falling back to local storage", "error", syncErr)
	snap.Synced = false
	if err := s.setLocal(ctx, KeySynced, false); err != nil {
		return err
	}
	if s.onSync != nil {
		s.onSync(syncErr)
	}
	return nil
}

// encode builds the items written to each area: the settings item plus
// every record slot.
func encode(snap Snapshot) (map[string]json.RawMessage, error) {
	settings, err := json.Marshal(storedSettings{
		ShortcutGroups:         snap.ShortcutGroups,
		ListColumnCount:        snap.ListColumnCount,
		CategoryFilterPosition: snap.CategoryFilterPosition,
		TagColors:              snap.TagColors,
	})
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	items := map[string]json.RawMessage{KeySettings: settings}
	for i, slot := range Split(snap.ShortcutKeys) {
		data, err := json.Marshal(slot)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", SlotNames[i], err)
		}
		items[SlotNames[i]] = data
	}
	return items, nil
}

func (s *Store) setLocal(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, storage.AreaLocal, map[string]json.RawMessage{key: data}); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func indexByID(records []shortcut.Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
