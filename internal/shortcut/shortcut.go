// Package shortcut defines the launcher's data model: shortcut records,
// groups of records, and the candidates a key sequence resolves to.
// Everything above this package (search, matching, persistence, execution)
// speaks in these types.
package shortcut

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Record is a user-defined trigger bound to one action.
type Record struct {
	ID          string   // Stable identifier, immutable once created
	Key         string   // Uppercase alphanumeric trigger (e.g. "GM")
	Title       string   // Display name
	Aliases     []string // Search synonyms
	Tags        []string // Category labels
	Action      Action   // What the shortcut does
	Hidden      bool     // Excluded from search and matching
	HideOnPopup bool     // Excluded from the popup list only
	SortOrder   int      // Secondary sort key
	UseCount    int      // Times executed
	LastUsedAt  *int64   // Unix millis of last execution, nil if never
	CreatedAt   int64    // Unix millis
	UpdatedAt   int64    // Unix millis
}

// Group is a named collection of records reachable through its own key.
type Group struct {
	ID             string   `json:"id" yaml:"id"`
	Key            string   `json:"key" yaml:"key"`
	Title          string   `json:"title" yaml:"title"`
	ShortcutKeyIDs []string `json:"shortcutKeyIds" yaml:"shortcutKeyIds"`
	OpenInTabGroup bool     `json:"openInTabGroup" yaml:"openInTabGroup"`
	CreatedAt      int64    `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt      int64    `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// NewID returns a fresh record or group identifier.
func NewID() string {
	return uuid.NewString()
}

// Now returns the current time in the unix millis used by timestamps.
func Now() int64 {
	return time.Now().UnixMilli()
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	r.Aliases = slices.Clone(r.Aliases)
	r.Tags = slices.Clone(r.Tags)
	if r.LastUsedAt != nil {
		v := *r.LastUsedAt
		r.LastUsedAt = &v
	}
	return r
}

// URL returns the record's URL payload, if its action has one.
func (r Record) URL() string { return ActionURL(r.Action) }

// Script returns the record's script payload, if its action has one.
func (r Record) Script() string { return ActionScript(r.Action) }

// Clone returns a deep copy of g.
func (g Group) Clone() Group {
	g.ShortcutKeyIDs = slices.Clone(g.ShortcutKeyIDs)
	return g
}

// HasMember reports whether id is listed as a member of g.
func (g Group) HasMember(id string) bool {
	return slices.Contains(g.ShortcutKeyIDs, id)
}

// Members resolves g's member ids against records in member order.
// Dangling ids are skipped.
func (g Group) Members(records []Record) []Record {
	byID := make(map[string]int, len(records))
	for i, r := range records {
		byID[r.ID] = i
	}
	var out []Record
	for _, id := range g.ShortcutKeyIDs {
		if i, ok := byID[id]; ok {
			out = append(out, records[i])
		}
	}
	return out
}

// Candidate is what a key sequence or click resolves to. Exactly one of
// Record and Group is set; groups carry Action OpenGroup{}.
type Candidate struct {
	ID     string
	Key    string
	Title  string
	Action Action
	Record *Record
	Group  *Group
}

// RecordCandidate wraps a record as a candidate.
func RecordCandidate(r Record) Candidate {
	return Candidate{ID: r.ID, Key: r.Key, Title: r.Title, Action: r.Action, Record: &r}
}

// GroupCandidate wraps a group as an open-group pseudo-record.
func GroupCandidate(g Group) Candidate {
	return Candidate{ID: g.ID, Key: g.Key, Title: g.Title, Action: OpenGroup{}, Group: &g}
}

// IsGroup reports whether the candidate stands for a group.
func (c Candidate) IsGroup() bool { return c.Group != nil }
