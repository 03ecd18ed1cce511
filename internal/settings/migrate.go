package settings

import (
	"slices"

	"github.com/jpl-au/shortkey/internal/shortcut"
)

// MigrateLegacyRecord fills every absent optional field of l with its
// default. A missing or empty id gets a fresh one and a missing sort order
// becomes index. Present fields are kept, so applying it twice changes
// nothing. The action is left alone: an absent action is not repairable.
func MigrateLegacyRecord(l shortcut.LegacyRecord, index int) shortcut.LegacyRecord {
	now := shortcut.Now()

	if l.ID == nil || *l.ID == "" {
		l.ID = ptr(shortcut.NewID())
	} else {
		l.ID = ptr(*l.ID)
	}
	if l.Action != nil {
		l.Action = ptr(*l.Action)
	}
	l.Key = orDefault(l.Key, "")
	l.Title = orDefault(l.Title, "")
	l.Aliases = cloneOrEmpty(l.Aliases)
	l.Tags = cloneOrEmpty(l.Tags)
	l.URL = orDefault(l.URL, "")
	l.Script = orDefault(l.Script, "")
	l.Hidden = orDefault(l.Hidden, false)
	l.HideOnPopup = orDefault(l.HideOnPopup, false)
	l.SortOrder = orDefault(l.SortOrder, index)
	l.UseCount = orDefault(l.UseCount, 0)
	if l.LastUsedAt != nil {
		l.LastUsedAt = ptr(*l.LastUsedAt)
	}
	l.CreatedAt = nonZeroOr(l.CreatedAt, now)
	l.UpdatedAt = nonZeroOr(l.UpdatedAt, now)
	return l
}

func ptr[T any](v T) *T { return &v }

// orDefault returns a fresh pointer holding *p, or def when p is nil.
func orDefault[T any](p *T, def T) *T {
	if p == nil {
		return ptr(def)
	}
	return ptr(*p)
}

func nonZeroOr(p *int64, def int64) *int64 {
	if p == nil || *p == 0 {
		return ptr(def)
	}
	return ptr(*p)
}

func cloneOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
