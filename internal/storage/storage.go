// Package storage defines the two-tier key-value store that settings are
// persisted to. The "sync" area models storage replicated across devices and
// enforces quotas; the "local" area is unbounded and device-specific.
// Values are JSON documents stored verbatim.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Area names one storage tier.
type Area string

const (
	AreaSync  Area = "sync"
	AreaLocal Area = "local"
)

var (
	// ErrQuotaExceeded is returned when a sync write would exceed a quota.
	// The write is rejected as a whole; nothing is stored.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrUnknownArea is returned for an area other than sync or local.
	ErrUnknownArea = errors.New("unknown storage area")
)

// Storage is the key-value collaborator consumed by the settings store.
type Storage interface {
	// Get returns the stored values for keys. Missing keys are absent from
	// the result. With no keys, every item in the area is returned.
	Get(ctx context.Context, area Area, keys ...string) (map[string]json.RawMessage, error)

	// Set writes items in one all-or-nothing operation.
	Set(ctx context.Context, area Area, items map[string]json.RawMessage) error

	// Remove deletes keys. Missing keys are ignored.
	Remove(ctx context.Context, area Area, keys ...string) error
}

// Quota bounds the sync area. Zero fields are unlimited.
type Quota struct {
	BytesPerItem int `json:"bytesPerItem"` // key length + value length of a single item
	Bytes        int `json:"bytes"`        // sum over every item in the area
	MaxItems     int `json:"maxItems"`     // number of items in the area
}

// Default sync quotas, matching browser sync storage.
const (
	DefaultQuotaBytesPerItem = 8192
	DefaultQuotaBytes        = 102400
	DefaultMaxItems          = 512
)

// DefaultQuota returns the default sync quota.
func DefaultQuota() Quota {
	return Quota{BytesPerItem: DefaultQuotaBytesPerItem, Bytes: DefaultQuotaBytes, MaxItems: DefaultMaxItems}
}

// Usage reports how much of an area is in use.
type Usage struct {
	Items int `json:"items"`
	Bytes int `json:"bytes"`
}

func validArea(a Area) error {
	if a != AreaSync && a != AreaLocal {
		return fmt.Errorf("%w: %q", ErrUnknownArea, a)
	}
	return nil
}

func itemSize(key string, value []byte) int {
	return len(key) + len(value)
}

// checkQuota verifies that writing items over an area currently holding
// existing (key -> item size) stays within q.
func checkQuota(q Quota, existing map[string]int, items map[string]json.RawMessage) error {
	total := 0
	for _, n := range existing {
		total += n
	}
	count := len(existing)

	for k, v := range items {
		n := itemSize(k, v)
		if q.BytesPerItem > 0 && n > q.BytesPerItem {
			return fmt.Errorf("%w: item %q is %d bytes (limit %d)", ErrQuotaExceeded, k, n, q.BytesPerItem)
		}
		if old, ok := existing[k]; ok {
			total -= old
		} else {
			count++
		}
		total += n
	}

	if q.Bytes > 0 && total > q.Bytes {
		return fmt.Errorf("%w: %d bytes total (limit %d)", ErrQuotaExceeded, total, q.Bytes)
	}
	if q.MaxItems > 0 && count > q.MaxItems {
		return fmt.Errorf("%w: %d items (limit %d)", ErrQuotaExceeded, count, q.MaxItems)
	}
	return nil
}
