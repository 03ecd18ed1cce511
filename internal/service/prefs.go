// prefs.go exposes the snapshot's display and sync preferences, and tag
// colours, as key/value pairs.

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/validate"
)

// Preference keys.
const (
	PrefListColumnCount        = "listColumnCount"
	PrefCategoryFilterPosition = "categoryFilterPosition"
	PrefSyncEnabled            = "sync.enabled"
)

// MaxListColumnCount bounds listColumnCount.
const MaxListColumnCount = 10

var (
	// ErrUnknownPref is returned for a key outside PrefKeys.
	ErrUnknownPref = errors.New("unknown preference")
	// ErrInvalidPref is returned when a value does not fit its key.
	ErrInvalidPref = errors.New("invalid preference value")
)

// PrefKeys lists the preference keys in display order.
func PrefKeys() []string {
	return []string{PrefListColumnCount, PrefCategoryFilterPosition, PrefSyncEnabled}
}

// Prefs returns every preference as a string.
func (s *Service) Prefs() map[string]string {
	snap := s.store.Snapshot()
	return map[string]string{
		PrefListColumnCount:        strconv.Itoa(snap.ListColumnCount),
		PrefCategoryFilterPosition: snap.CategoryFilterPosition,
		PrefSyncEnabled:            strconv.FormatBool(snap.Synced),
	}
}

// Pref returns one preference.
func (s *Service) Pref(key string) (string, error) {
	v, ok := s.Prefs()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s (valid: %s)", ErrUnknownPref, key, strings.Join(PrefKeys(), ", "))
	}
	return v, nil
}

// SetPref parses value for key and persists it. Re-enabling sync writes
// the whole snapshot to the sync area again.
func (s *Service) SetPref(ctx context.Context, key, value string) error {
	return s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		switch key {
		case PrefListColumnCount:
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > MaxListColumnCount {
				return fmt.Errorf("%w: %s must be 1-%d", ErrInvalidPref, key, MaxListColumnCount)
			}
			snap.ListColumnCount = n
		case PrefCategoryFilterPosition:
			if !slices.Contains(settings.Positions(), value) {
				return fmt.Errorf("%w: %s must be one of %s", ErrInvalidPref, key, strings.Join(settings.Positions(), ", "))
			}
			snap.CategoryFilterPosition = value
		case PrefSyncEnabled:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %s must be true or false", ErrInvalidPref, key)
			}
			snap.Synced = b
		default:
			return fmt.Errorf("%w: %s (valid: %s)", ErrUnknownPref, key, strings.Join(PrefKeys(), ", "))
		}
		return nil
	})
}

// Tags returns every tag in use with its colour and count.
func (s *Service) Tags() []settings.Tag {
	return s.store.Snapshot().Tags()
}

// SetTagColor stores the colour for tag. An empty colour restores the
// default palette colour.
func (s *Service) SetTagColor(ctx context.Context, tag, color string) error {
	if err := validate.Tag(tag); err != nil {
		return err
	}
	return s.store.Mutate(ctx, func(snap *settings.Snapshot) error {
		return snap.SetTagColor(tag, color)
	})
}
