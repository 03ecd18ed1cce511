// Package settings owns the live settings snapshot: shortcut records,
// groups and display preferences. It loads and migrates the persisted copy,
// answers key-prefix and search queries over it, and writes every change
// back to the two-tier storage.
//
// The persisted copy is the source of truth. Surfaces running in other
// processes (the popup, the HTTP server, one-shot CLI commands) never merge
// their views; they call Reload.
package settings

import (
	"cmp"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jpl-au/shortkey/internal/keymatch"
	"github.com/jpl-au/shortkey/internal/search"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/storage"
)

// Category filter positions.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
	PositionLeft   = "left"
	PositionRight  = "right"
)

// DefaultListColumnCount is the popup column count when none is stored.
const DefaultListColumnCount = 3

// Positions lists the valid category filter positions.
func Positions() []string {
	return []string{PositionTop, PositionBottom, PositionLeft, PositionRight}
}

// Snapshot is the unit that is loaded, migrated and persisted.
type Snapshot struct {
	ShortcutKeys           []shortcut.Record `json:"shortcutKeys"`
	ShortcutGroups         []shortcut.Group  `json:"shortcutGroups"`
	ListColumnCount        int               `json:"listColumnCount"`
	CategoryFilterPosition string            `json:"categoryFilterPosition"`
	Synced                 bool              `json:"synced"`
	TagColors              map[string]string `json:"tagColors"`
	StartupCommand         string            `json:"startupCommand,omitempty"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.ShortcutKeys = make([]shortcut.Record, len(s.ShortcutKeys))
	for i, r := range s.ShortcutKeys {
		out.ShortcutKeys[i] = r.Clone()
	}
	out.ShortcutGroups = make([]shortcut.Group, len(s.ShortcutGroups))
	for i, g := range s.ShortcutGroups {
		out.ShortcutGroups[i] = g.Clone()
	}
	out.TagColors = maps.Clone(s.TagColors)
	if out.TagColors == nil {
		out.TagColors = map[string]string{}
	}
	return out
}

// normalise applies defaults and the key ordering every stored snapshot has.
func (s *Snapshot) normalise() {
	if s.ShortcutKeys == nil {
		s.ShortcutKeys = []shortcut.Record{}
	}
	if s.ShortcutGroups == nil {
		s.ShortcutGroups = []shortcut.Group{}
	}
	if s.ListColumnCount < 1 {
		s.ListColumnCount = DefaultListColumnCount
	}
	if !slices.Contains(Positions(), s.CategoryFilterPosition) {
		s.CategoryFilterPosition = PositionTop
	}
	if s.TagColors == nil {
		s.TagColors = map[string]string{}
	}
	SortByKey(s.ShortcutKeys)
}

// SortByKey orders records by key, byte-wise, keeping the input order of
// equal keys.
func SortByKey(records []shortcut.Record) {
	slices.SortStableFunc(records, func(a, b shortcut.Record) int {
		return cmp.Compare(a.Key, b.Key)
	})
}

// Record returns the record with the given id, or failing that the first
// record whose key equals ref ignoring case.
func (s Snapshot) Record(ref string) (shortcut.Record, bool) {
	for _, r := range s.ShortcutKeys {
		if r.ID == ref {
			return r, true
		}
	}
	for _, r := range s.ShortcutKeys {
		if r.Key != "" && strings.EqualFold(r.Key, ref) {
			return r, true
		}
	}
	return shortcut.Record{}, false
}

// Group returns the group with the given id or key.
func (s Snapshot) Group(ref string) (shortcut.Group, bool) {
	for _, g := range s.ShortcutGroups {
		if g.ID == ref {
			return g, true
		}
	}
	for _, g := range s.ShortcutGroups {
		if g.Key != "" && strings.EqualFold(g.Key, ref) {
			return g, true
		}
	}
	return shortcut.Group{}, false
}

// Store owns the live snapshot. It is safe for concurrent use.
type Store struct {
	backend  storage.Storage
	commands CommandSource
	onSync   func(error)
	log      *slog.Logger

	write sync.Mutex // serialises load/persist cycles
	mu    sync.RWMutex
	snap  Snapshot
}

var _ keymatch.Source = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithCommands sets the collaborator that describes the startup keybinding.
func WithCommands(c CommandSource) Option {
	return func(s *Store) { s.commands = c }
}

// WithSyncDisabled registers fn to be told, once per downgrade, that a sync
// write failed and the store fell back to local-only persistence.
func WithSyncDisabled(fn func(error)) Option {
	return func(s *Store) { s.onSync = fn }
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func newStore(backend storage.Storage, opts []Option) *Store {
	s := &Store{backend: backend, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the live snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Record looks up a record by id or key.
func (s *Store) Record(ref string) (shortcut.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.snap.Record(ref)
	return r.Clone(), ok
}

// Group looks up a group by id or key.
func (s *Store) Group(ref string) (shortcut.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.snap.Group(ref)
	return g.Clone(), ok
}

// Find returns the key-prefix candidates for prefix, with the same group
// rule the key matcher uses.
func (s *Store) Find(prefix string) []shortcut.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return keymatch.Candidates(prefix, s.snap.ShortcutKeys, s.snap.ShortcutGroups)
}

// Search ranks the records against query.
func (s *Store) Search(query string) []search.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search.Search(query, s.snap.ShortcutKeys)
}

// SearchGroups ranks the groups against query.
func (s *Store) SearchGroups(query string) []search.GroupResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search.Groups(query, s.snap.ShortcutGroups)
}

func (s *Store) swap(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}
