// groups.go implements group creation, editing and removal. Members are
// given as record ids or keys and stored as ids.

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
)

// GroupPatch lists the group fields to change. Nil fields are left alone.
type GroupPatch struct {
	Key            *string
	Title          *string
	Members        *[]string // record ids or keys
	OpenInTabGroup *bool
}

// GroupChange is the outcome of a group write.
type GroupChange struct {
	Group  shortcut.Group
	Issues validate.Result
}

// Groups returns the stored groups.
func (s *Service) Groups() []shortcut.Group {
	return s.store.Snapshot().ShortcutGroups
}

func (p GroupPatch) apply(g *shortcut.Group, snap settings.Snapshot) error {
	if p.Key != nil {
		g.Key = strings.ToUpper(strings.TrimSpace(*p.Key))
	}
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.OpenInTabGroup != nil {
		g.OpenInTabGroup = *p.OpenInTabGroup
	}
	if p.Members != nil {
		ids := make([]string, 0, len(*p.Members))
		for _, ref := range *p.Members {
			r, ok := snap.Record(ref)
			if !ok {
				return fmt.Errorf("%w: member %s", ErrNotFound, ref)
			}
			if !slices.Contains(ids, r.ID) {
				ids = append(ids, r.ID)
			}
		}
		g.ShortcutKeyIDs = ids
	}
	return nil
}

// AddGroup validates and stores a new group.
func (s *Service) AddGroup(ctx context.Context, patch GroupPatch) (GroupChange, error) {
	now := shortcut.Now()
	g := shortcut.Group{ID: shortcut.NewID(), ShortcutKeyIDs: []string{}, CreatedAt: now, UpdatedAt: now}

	var ch GroupChange
	err := s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		if err := patch.apply(&g, *snap); err != nil {
			return err
		}
		ch.Issues = validate.Group(g, snap.ShortcutKeys, snap.ShortcutGroups)
		if !ch.Issues.OK() {
			return fmt.Errorf("%w: %w", ErrInvalid, ch.Issues.Err())
		}
		snap.ShortcutGroups = append(snap.ShortcutGroups, g)
		return nil
	})
	ch.Group = g
	return ch, err
}

// EditGroup applies patch to the group named by ref.
func (s *Service) EditGroup(ctx context.Context, ref string, patch GroupPatch) (GroupChange, error) {
	var ch GroupChange
	err := s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		i := groupIndex(*snap, ref)
		if i < 0 {
			return fmt.Errorf("%w: group %s", ErrNotFound, ref)
		}
		g := snap.ShortcutGroups[i].Clone()
		if err := patch.apply(&g, *snap); err != nil {
			return err
		}
		g.UpdatedAt = shortcut.Now()
		ch.Group = g
		ch.Issues = validate.Group(g, snap.ShortcutKeys, snap.ShortcutGroups)
		if !ch.Issues.OK() {
			return fmt.Errorf("%w: %w", ErrInvalid, ch.Issues.Err())
		}
		snap.ShortcutGroups[i] = g
		return nil
	})
	return ch, err
}

// RemoveGroup deletes the group named by ref. Its members are untouched.
func (s *Service) RemoveGroup(ctx context.Context, ref string) (shortcut.Group, error) {
	var removed shortcut.Group
	err := s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		i := groupIndex(*snap, ref)
		if i < 0 {
			return fmt.Errorf("%w: group %s", ErrNotFound, ref)
		}
		removed = snap.ShortcutGroups[i]
		snap.ShortcutGroups = slices.Delete(snap.ShortcutGroups, i, i+1)
		return nil
	})
	return removed, err
}

func groupIndex(snap settings.Snapshot, ref string) int {
	g, ok := snap.Group(ref)
	if !ok {
		return -1
	}
	return slices.IndexFunc(snap.ShortcutGroups, func(o shortcut.Group) bool { return o.ID == g.ID })
}
