package storage

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"
)

// Memory is an in-process Storage used by tests and ephemeral sessions.
type Memory struct {
	mu    sync.Mutex
	quota Quota
	areas map[Area]map[string]json.RawMessage
}

var _ Storage = (*Memory)(nil)

// NewMemory returns an empty store enforcing q on the sync area.
func NewMemory(q Quota) *Memory {
	return &Memory{
		quota: q,
		areas: map[Area]map[string]json.RawMessage{
			AreaSync:  {},
			AreaLocal: {},
		},
	}
}

// Get implements Storage.
func (m *Memory) Get(_ context.Context, area Area, keys ...string) (map[string]json.RawMessage, error) {
	if err := validArea(area); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.areas[area]
	out := make(map[string]json.RawMessage)
	if len(keys) == 0 {
		for k, v := range items {
			out[k] = slices.Clone(v)
		}
		return out, nil
	}
	for _, k := range keys {
		if v, ok := items[k]; ok {
			out[k] = slices.Clone(v)
		}
	}
	return out, nil
}

// Set implements Storage.
func (m *Memory) Set(_ context.Context, area Area, items map[string]json.RawMessage) error {
	if err := validArea(area); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if area == AreaSync {
		existing := make(map[string]int, len(m.areas[area]))
		for k, v := range m.areas[area] {
			existing[k] = itemSize(k, v)
		}
		if err := checkQuota(m.quota, existing, items); err != nil {
			return err
		}
	}
	for k, v := range items {
		m.areas[area][k] = slices.Clone(v)
	}
	return nil
}

// Remove implements Storage.
func (m *Memory) Remove(_ context.Context, area Area, keys ...string) error {
	if err := validArea(area); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.areas[area], k)
	}
	return nil
}

// Keys returns the sorted keys held in area.
func (m *Memory) Keys(area Area) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.areas[area]))
}

// Usage reports item count and byte size of area.
func (m *Memory) Usage(_ context.Context, area Area) (Usage, error) {
	if err := validArea(area); err != nil {
		return Usage{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var u Usage
	for k, v := range m.areas[area] {
		u.Items++
		u.Bytes += itemSize(k, v)
	}
	return u, nil
}
