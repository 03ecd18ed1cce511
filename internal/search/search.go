// Package search ranks shortcut records against a typed query.
//
// Ranking is rule-based rather than fuzzy: each record gets the highest
// score of a fixed rule table (exact key beats key prefix beats title or
// alias prefix, and so on). Rules never stack, so a record matching on
// several fields scores the same as one matching on its best field.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jpl-au/shortkey/internal/normalize"
	"github.com/jpl-au/shortkey/internal/shortcut"
)

// Scores awarded by each rule.
const (
	ScoreExactKey      = 1000
	ScoreKeyPrefix     = 800
	ScoreTitlePrefix   = 500
	ScoreAliasPrefix   = 500
	ScoreTitleContains = 200
	ScoreAliasContains = 200
	ScoreTagContains   = 100
	ScoreURLContains   = 50
)

// Result pairs a record with its score. Score is 0 for blank queries.
type Result struct {
	Record shortcut.Record `json:"record"`
	Score  int             `json:"score"`
}

// GroupResult pairs a group with its score.
type GroupResult struct {
	Group shortcut.Group `json:"group"`
	Score int            `json:"score"`
}

// Search returns the non-hidden records matching query, best first.
// A blank query returns every non-hidden record ordered by use.
func Search(query string, records []shortcut.Record) []Result {
	q := normalize.String(query)

	var out []Result
	for _, r := range records {
		if r.Hidden {
			continue
		}
		if q == "" {
			out = append(out, Result{Record: r})
			continue
		}
		if s := Score(q, r); s > 0 {
			out = append(out, Result{Record: r, Score: s})
		}
	}

	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(b.Record.UseCount, a.Record.UseCount),
			cmp.Compare(a.Record.SortOrder, b.Record.SortOrder),
		)
	})
	return out
}

// Score returns the best rule score of r for an already normalised query.
func Score(q string, r shortcut.Record) int {
	if r.Key != "" {
		key := normalize.String(r.Key)
		if key == q {
			return ScoreExactKey
		}
		if strings.HasPrefix(key, q) {
			return ScoreKeyPrefix
		}
	}

	if r.Title != "" && normalize.HasPrefixFolded(r.Title, q) {
		return ScoreTitlePrefix
	}
	if anyMatch(r.Aliases, q, normalize.HasPrefixFolded) {
		return ScoreAliasPrefix
	}
	if r.Title != "" && normalize.ContainsFolded(r.Title, q) {
		return ScoreTitleContains
	}
	if anyMatch(r.Aliases, q, normalize.ContainsFolded) {
		return ScoreAliasContains
	}
	if anyMatch(r.Tags, q, normalize.ContainsFolded) {
		return ScoreTagContains
	}
	if u := r.URL(); u != "" && strings.Contains(normalize.String(u), q) {
		return ScoreURLContains
	}
	return 0
}

// Groups scores groups by key and title using the record rules for those
// fields. A blank query returns every group in input order.
func Groups(query string, groups []shortcut.Group) []GroupResult {
	q := normalize.String(query)

	var out []GroupResult
	for _, g := range groups {
		if q == "" {
			out = append(out, GroupResult{Group: g})
			continue
		}
		if s := Score(q, shortcut.Record{Key: g.Key, Title: g.Title}); s > 0 {
			out = append(out, GroupResult{Group: g, Score: s})
		}
	}
	slices.SortStableFunc(out, func(a, b GroupResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// FindByKeyPrefix returns records whose key starts with key, ignoring case,
// in input order. No scoring and no hidden filtering.
func FindByKeyPrefix(key string, records []shortcut.Record) []shortcut.Record {
	prefix := strings.ToUpper(key)
	var out []shortcut.Record
	for _, r := range records {
		if r.Key != "" && strings.HasPrefix(strings.ToUpper(r.Key), prefix) {
			out = append(out, r)
		}
	}
	return out
}

func anyMatch(values []string, q string, match func(text, query string) bool) bool {
	for _, v := range values {
		if v != "" && match(v, q) {
			return true
		}
	}
	return false
}
