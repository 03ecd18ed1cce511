// wire.go implements the flat persisted form of records.
//
// Stored and exported records are flat objects carrying the integer action
// id next to optional url and script fields, the shape every existing export
// file uses. Older data may omit any field, so the wire type uses pointers
// to tell "absent" from "zero" during migration.

package shortcut

import (
	"encoding/json"
	"slices"
)

// LegacyRecord is a record as found in storage or an import file, with
// every field optional.
type LegacyRecord struct {
	ID          *string  `json:"id,omitempty" yaml:"id,omitempty"`
	Key         *string  `json:"key,omitempty" yaml:"key,omitempty"`
	Title       *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Action      *int     `json:"action,omitempty" yaml:"action,omitempty"`
	URL         *string  `json:"url,omitempty" yaml:"url,omitempty"`
	Script      *string  `json:"script,omitempty" yaml:"script,omitempty"`
	Hidden      *bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	HideOnPopup *bool    `json:"hideOnPopup,omitempty" yaml:"hideOnPopup,omitempty"`
	SortOrder   *int     `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
	UseCount    *int     `json:"useCount,omitempty" yaml:"useCount,omitempty"`
	LastUsedAt  *int64   `json:"lastUsedAt,omitempty" yaml:"lastUsedAt,omitempty"`
	CreatedAt   *int64   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   *int64   `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// wireRecord is the fully populated flat form written by this program.
type wireRecord struct {
	ID          string   `json:"id"`
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Aliases     []string `json:"aliases"`
	Tags        []string `json:"tags"`
	Action      int      `json:"action"`
	URL         string   `json:"url"`
	Script      string   `json:"script"`
	Hidden      bool     `json:"hidden"`
	HideOnPopup bool     `json:"hideOnPopup"`
	SortOrder   int      `json:"sortOrder"`
	UseCount    int      `json:"useCount"`
	LastUsedAt  *int64   `json:"lastUsedAt"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Record converts l to a Record, using zero values for absent fields.
func (l LegacyRecord) Record() Record {
	r := Record{
		ID:          deref(l.ID),
		Key:         deref(l.Key),
		Title:       deref(l.Title),
		Aliases:     nonNil(l.Aliases),
		Tags:        nonNil(l.Tags),
		Action:      NewAction(ActionID(deref(l.Action)), deref(l.URL), deref(l.Script)),
		Hidden:      deref(l.Hidden),
		HideOnPopup: deref(l.HideOnPopup),
		SortOrder:   deref(l.SortOrder),
		UseCount:    deref(l.UseCount),
		CreatedAt:   deref(l.CreatedAt),
		UpdatedAt:   deref(l.UpdatedAt),
	}
	if l.LastUsedAt != nil {
		v := *l.LastUsedAt
		r.LastUsedAt = &v
	}
	return r
}

// Legacy converts r to its fully populated wire form.
func (r Record) Legacy() LegacyRecord {
	r = r.Clone()
	action := int(ActionIDOf(r.Action))
	url, script := r.URL(), r.Script()
	return LegacyRecord{
		ID:          &r.ID,
		Key:         &r.Key,
		Title:       &r.Title,
		Aliases:     nonNil(r.Aliases),
		Tags:        nonNil(r.Tags),
		Action:      &action,
		URL:         &url,
		Script:      &script,
		Hidden:      &r.Hidden,
		HideOnPopup: &r.HideOnPopup,
		SortOrder:   &r.SortOrder,
		UseCount:    &r.UseCount,
		LastUsedAt:  r.LastUsedAt,
		CreatedAt:   &r.CreatedAt,
		UpdatedAt:   &r.UpdatedAt,
	}
}

// MarshalJSON writes the flat wire form.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		ID:          r.ID,
		Key:         r.Key,
		Title:       r.Title,
		Aliases:     nonNil(r.Aliases),
		Tags:        nonNil(r.Tags),
		Action:      int(ActionIDOf(r.Action)),
		URL:         r.URL(),
		Script:      r.Script(),
		Hidden:      r.Hidden,
		HideOnPopup: r.HideOnPopup,
		SortOrder:   r.SortOrder,
		UseCount:    r.UseCount,
		LastUsedAt:  r.LastUsedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	})
}

// UnmarshalJSON reads the flat wire form. Missing fields decode to zero
// values; unknown action ids decode to UnknownAction.
func (r *Record) UnmarshalJSON(data []byte) error {
	var l LegacyRecord
	if err := json.Unmarshal(data, &l); err != nil {
		return err
	}
	*r = l.Record()
	return nil
}

// MarshalJSON adds the action id and the payload URL so API clients can
// render a candidate without a second lookup.
func (c Candidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string `json:"id"`
		Key     string `json:"key"`
		Title   string `json:"title"`
		Action  int    `json:"action"`
		URL     string `json:"url,omitempty"`
		IsGroup bool   `json:"isGroup"`
	}{
		ID:      c.ID,
		Key:     c.Key,
		Title:   c.Title,
		Action:  int(ActionIDOf(c.Action)),
		URL:     ActionURL(c.Action),
		IsGroup: c.IsGroup(),
	})
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
