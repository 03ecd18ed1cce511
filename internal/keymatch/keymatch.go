// Package keymatch resolves physical keystrokes to a shortcut.
//
// A Matcher accumulates an uppercase buffer one key at a time and narrows
// the candidate set by exact key prefix. It resolves as soon as the buffer
// names exactly one candidate, and abandons the buffer when nothing starts
// with it. There is no fuzzy matching here: the point is to resolve after
// the fewest keystrokes with no ambiguity.
//
// A Matcher is not safe for concurrent use. Each surface owns one and feeds
// it keystrokes in arrival order.
package keymatch

import (
	"strings"

	"github.com/jpl-au/shortkey/internal/shortcut"
)

// Source supplies the candidates whose key starts with prefix.
// settings.Store implements it over its live snapshot.
type Source interface {
	Find(prefix string) []shortcut.Candidate
}

// Outcome classifies the result of one keystroke.
type Outcome int

const (
	// Ignored means the key produced no buffer character; state is untouched.
	Ignored Outcome = iota
	// Pending means more keystrokes are needed.
	Pending
	// Resolved means the buffer named exactly one candidate.
	Resolved
	// NoMatch means nothing starts with the buffer; it has been cleared.
	NoMatch
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case NoMatch:
		return "no-match"
	}
	return "unknown"
}

// Step reports what one keystroke did.
type Step struct {
	Outcome    Outcome
	Buffer     string               // Buffer after the keystroke (empty once reset)
	Candidates []shortcut.Candidate // Remaining candidates when Pending
	Match      *shortcut.Candidate  // Set when Resolved
}

// KeyEvent is a keydown as reported by a keyboard surface.
type KeyEvent struct {
	Code string // Physical key code, e.g. "KeyA", "Digit1"
	Key  string // Produced key value, e.g. "a", "Shift", "あ"
	Ctrl bool
	Alt  bool
	Meta bool
}

// Matcher is the incremental key-matching state machine.
type Matcher struct {
	src    Source
	buffer string
}

// New returns a Matcher reading candidates from src.
func New(src Source) *Matcher {
	return &Matcher{src: src}
}

// Buffer returns the keys accumulated so far.
func (m *Matcher) Buffer() string { return m.buffer }

// Reset discards any in-progress sequence.
func (m *Matcher) Reset() { m.buffer = "" }

// Press feeds a keyboard event. Chords with Ctrl, Alt or Meta, modifier-only
// presses and keys that produce no letter or digit are ignored.
func (m *Matcher) Press(e KeyEvent) Step {
	if e.Ctrl || e.Alt || e.Meta {
		return m.ignored()
	}
	c, ok := KeyFromEvent(e.Code, e.Key)
	if !ok {
		return m.ignored()
	}
	return m.Type(c)
}

// Type feeds a single character.
func (m *Matcher) Type(c rune) Step {
	c, ok := normalizeKey(c)
	if !ok {
		return m.ignored()
	}
	m.buffer += string(c)

	candidates := m.src.Find(m.buffer)
	switch {
	case len(candidates) == 0:
		m.buffer = ""
		return Step{Outcome: NoMatch}
	case len(candidates) == 1 && strings.EqualFold(candidates[0].Key, m.buffer):
		m.buffer = ""
		match := candidates[0]
		return Step{Outcome: Resolved, Match: &match}
	default:
		return Step{Outcome: Pending, Buffer: m.buffer, Candidates: candidates}
	}
}

func (m *Matcher) ignored() Step {
	return Step{Outcome: Ignored, Buffer: m.buffer}
}

// KeyFromEvent maps a key event to its buffer character. The physical code
// wins so that an active IME ("KeyA" producing "あ") still yields 'A'.
func KeyFromEvent(code, key string) (rune, bool) {
	if rest, ok := strings.CutPrefix(code, "Key"); ok && len(rest) == 1 {
		return normalizeKey(rune(rest[0]))
	}
	if rest, ok := strings.CutPrefix(code, "Digit"); ok && len(rest) == 1 {
		return normalizeKey(rune(rest[0]))
	}
	if len(key) == 1 {
		return normalizeKey(rune(key[0]))
	}
	return 0, false
}

func normalizeKey(c rune) (rune, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', true
	case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return c, true
	}
	return 0, false
}

// Candidates returns the non-hidden records whose key starts with buffer,
// followed by the groups whose key starts with buffer. Members of a group
// whose key equals buffer exactly are left out, so typing a group's key
// opens the group rather than waiting on its members.
func Candidates(buffer string, records []shortcut.Record, groups []shortcut.Group) []shortcut.Candidate {
	buffer = strings.ToUpper(buffer)

	var matched []shortcut.Group
	excluded := make(map[string]bool)
	for _, g := range groups {
		key := strings.ToUpper(g.Key)
		if key == "" || !strings.HasPrefix(key, buffer) {
			continue
		}
		matched = append(matched, g)
		if key == buffer {
			for _, id := range g.ShortcutKeyIDs {
				excluded[id] = true
			}
		}
	}

	var out []shortcut.Candidate
	for _, r := range records {
		if r.Hidden || excluded[r.ID] || r.Key == "" {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(r.Key), buffer) {
			out = append(out, shortcut.RecordCandidate(r))
		}
	}
	for _, g := range matched {
		out = append(out, shortcut.GroupCandidate(g))
	}
	return out
}

// Static is a Source over a fixed record set.
type Static struct {
	Records []shortcut.Record
	Groups  []shortcut.Group
}

// Find implements Source.
func (s Static) Find(prefix string) []shortcut.Candidate {
	return Candidates(prefix, s.Records, s.Groups)
}
