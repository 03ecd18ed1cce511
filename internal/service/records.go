// records.go implements record creation, editing and removal.

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/shortkey/internal/diff"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
	"gopkg.in/yaml.v3"
)

// ListOptions filters Records.
type ListOptions struct {
	Tag    string // only records carrying this tag
	Hidden bool   // include hidden records

	// UnusedSince keeps records not used at or after this time (unix
	// milliseconds). Zero disables the filter.
	UnusedSince int64
}

// Records returns the stored records in key order.
func (s *Service) Records(opts ListOptions) []shortcut.Record {
	snap := s.store.Snapshot()
	var out []shortcut.Record
	for _, r := range snap.ShortcutKeys {
		if r.Hidden && !opts.Hidden {
			continue
		}
		if opts.Tag != "" && !slices.Contains(r.Tags, opts.Tag) {
			continue
		}
		if opts.UnusedSince != 0 && r.LastUsedAt != nil && *r.LastUsedAt >= opts.UnusedSince {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RecordPatch lists the fields to change. Nil fields are left alone.
type RecordPatch struct {
	Key         *string
	Title       *string
	Action      *shortcut.ActionID
	URL         *string
	Script      *string
	Aliases     *[]string
	Tags        *[]string
	Hidden      *bool
	HideOnPopup *bool
	SortOrder   *int
}

// Apply writes the set fields into r. Changing the action, URL or script
// rebuilds the action variant from the merged payload.
func (p RecordPatch) Apply(r *shortcut.Record) {
	if p.Key != nil {
		r.Key = strings.ToUpper(strings.TrimSpace(*p.Key))
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Action != nil || p.URL != nil || p.Script != nil {
		id, url, script := shortcut.ActionIDOf(r.Action), r.URL(), r.Script()
		if p.Action != nil {
			id = *p.Action
		}
		if p.URL != nil {
			url = *p.URL
		}
		if p.Script != nil {
			script = *p.Script
		}
		r.Action = shortcut.NewAction(id, url, script)
	}
	if p.Aliases != nil {
		r.Aliases = slices.Clone(*p.Aliases)
	}
	if p.Tags != nil {
		r.Tags = slices.Clone(*p.Tags)
	}
	if p.Hidden != nil {
		r.Hidden = *p.Hidden
	}
	if p.HideOnPopup != nil {
		r.HideOnPopup = *p.HideOnPopup
	}
	if p.SortOrder != nil {
		r.SortOrder = *p.SortOrder
	}
}

// Change is the outcome of a write: the stored record plus any
// validation warnings.
type Change struct {
	Record shortcut.Record
	Issues validate.Result
	Diff   diff.Result // set by dry runs
}

// AddRecord validates and stores a new record built from patch.
func (s *Service) AddRecord(ctx context.Context, patch RecordPatch) (Change, error) {
	now := shortcut.Now()
	rec := shortcut.Record{
		ID:        shortcut.NewID(),
		Aliases:   []string{},
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if patch.Action == nil {
		id := shortcut.ActionOpenNewTab
		patch.Action = &id
	}
	patch.Apply(&rec)

	var ch Change
	err := s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		ch.Issues = validate.Record(rec, snap.ShortcutKeys, snap.ShortcutGroups...)
		if !ch.Issues.OK() {
			return fmt.Errorf("%w: %w", ErrInvalid, ch.Issues.Err())
		}
		snap.ShortcutKeys = append(snap.ShortcutKeys, rec)
		return nil
	})
	ch.Record = rec
	return ch, err
}

// EditRecord applies patch to the record named by ref. A dry run
// validates and returns the YAML diff without writing.
func (s *Service) EditRecord(ctx context.Context, ref string, patch RecordPatch, dryRun bool) (Change, error) {
	if dryRun {
		snap := s.store.Snapshot()
		old, ok := snap.Record(ref)
		if !ok {
			return Change{}, fmt.Errorf("%w: record %s", ErrNotFound, ref)
		}
		rec := old.Clone()
		patch.Apply(&rec)
		ch := Change{Record: rec, Issues: validate.Record(rec, snap.ShortcutKeys, snap.ShortcutGroups...)}
		d, err := recordDiff(old, rec)
		if err != nil {
			return ch, err
		}
		ch.Diff = d
		if !ch.Issues.OK() {
			return ch, fmt.Errorf("%w: %w", ErrInvalid, ch.Issues.Err())
		}
		return ch, nil
	}

	var ch Change
	err := s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		i := recordIndex(*snap, ref)
		if i < 0 {
			return fmt.Errorf("%w: record %s", ErrNotFound, ref)
		}
		rec := snap.ShortcutKeys[i].Clone()
		patch.Apply(&rec)
		rec.UpdatedAt = shortcut.Now()
		ch.Record = rec
		ch.Issues = validate.Record(rec, snap.ShortcutKeys, snap.ShortcutGroups...)
		if !ch.Issues.OK() {
			return fmt.Errorf("%w: %w", ErrInvalid, ch.Issues.Err())
		}
		snap.ShortcutKeys[i] = rec
		return nil
	})
	return ch, err
}

// RemoveRecord deletes the record named by ref and drops it from every
// group that lists it.
func (s *Service) RemoveRecord(ctx context.Context, ref string) (shortcut.Record, error) {
	var removed shortcut.Record
	err := s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		i := recordIndex(*snap, ref)
		if i < 0 {
			return fmt.Errorf("%w: record %s", ErrNotFound, ref)
		}
		removed = snap.ShortcutKeys[i]
		snap.ShortcutKeys = slices.Delete(snap.ShortcutKeys, i, i+1)
		for j := range snap.ShortcutGroups {
			g := &snap.ShortcutGroups[j]
			g.ShortcutKeyIDs = slices.DeleteFunc(g.ShortcutKeyIDs, func(id string) bool {
				return id == removed.ID
			})
		}
		return nil
	})
	return removed, err
}

// recordIndex finds ref by id, then by key ignoring case.
func recordIndex(snap settings.Snapshot, ref string) int {
	r, ok := snap.Record(ref)
	if !ok {
		return -1
	}
	return slices.IndexFunc(snap.ShortcutKeys, func(o shortcut.Record) bool { return o.ID == r.ID })
}

func recordDiff(old, updated shortcut.Record) (diff.Result, error) {
	a, err := yaml.Marshal(old.Legacy())
	if err != nil {
		return diff.Result{}, err
	}
	b, err := yaml.Marshal(updated.Legacy())
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(string(a), string(b), "current", "edited"), nil
}
