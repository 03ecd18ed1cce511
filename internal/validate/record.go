// record.go validates shortcut records and groups.
//
// Field requirements follow the action: URL-based actions need a URL, the
// script action needs a script, and every record needs a key and a title.

package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/shortkey/internal/shortcut"
)

// Record checks rec against the other stored records and, optionally, the
// stored groups. rec itself may appear in others; entries with its ID are
// skipped.
func Record(rec shortcut.Record, others []shortcut.Record, groups ...shortcut.Group) Result {
	var res Result

	if strings.TrimSpace(rec.Title) == "" {
		res.fail("title", fmt.Errorf("%w: title", ErrRequired))
	}
	checkKey(&res, rec.Key)

	id := shortcut.ActionIDOf(rec.Action)
	switch {
	case rec.Action == nil:
		res.fail("action", fmt.Errorf("%w: action", ErrRequired))
	case !id.Known() || id == shortcut.ActionOpenGroup:
		res.fail("action", fmt.Errorf("%w: %d", ErrUnknownAction, id))
	default:
		if shortcut.NeedsURL(id) && strings.TrimSpace(rec.URL()) == "" {
			res.fail("url", fmt.Errorf("%w: url is required for %s", ErrRequired, id))
		}
		if shortcut.NeedsScript(id) && strings.TrimSpace(rec.Script()) == "" {
			res.fail("script", fmt.Errorf("%w: script is required for %s", ErrRequired, id))
		}
	}

	for _, t := range rec.Tags {
		if err := Tag(t); err != nil {
			res.fail("tags", err)
		}
	}

	if rec.Key != "" {
		for _, o := range others {
			if o.ID != rec.ID && collides(rec.Key, o.Key) {
				res.warn("key", fmt.Errorf("%w: %q and record %q (%s)", ErrKeyCollision, rec.Key, o.Key, o.Title))
			}
		}
		for _, g := range groups {
			if collides(rec.Key, g.Key) {
				res.warn("key", fmt.Errorf("%w: %q and group %q (%s)", ErrKeyCollision, rec.Key, g.Key, g.Title))
			}
		}
	}
	return res
}

// Group checks g against the stored records and groups. Members must be
// non-empty; members that do not exist are warnings since dangling ids
// are skipped when the group opens.
func Group(g shortcut.Group, records []shortcut.Record, groups []shortcut.Group) Result {
	var res Result

	if strings.TrimSpace(g.Title) == "" {
		res.fail("title", fmt.Errorf("%w: title", ErrRequired))
	}
	checkKey(&res, g.Key)

	if len(g.ShortcutKeyIDs) == 0 {
		res.fail("shortcutKeyIds", ErrNoMembers)
	}
	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[r.ID] = true
	}
	for _, id := range g.ShortcutKeyIDs {
		if !known[id] {
			res.warn("shortcutKeyIds", fmt.Errorf("%w: %s", ErrMissingMember, id))
		}
	}

	if g.Key != "" {
		for _, r := range records {
			if collides(g.Key, r.Key) {
				res.warn("key", fmt.Errorf("%w: %q and record %q (%s)", ErrKeyCollision, g.Key, r.Key, r.Title))
			}
		}
		for _, o := range groups {
			if o.ID != g.ID && collides(g.Key, o.Key) {
				res.warn("key", fmt.Errorf("%w: %q and group %q (%s)", ErrKeyCollision, g.Key, o.Key, o.Title))
			}
		}
	}
	return res
}

func checkKey(res *Result, key string) {
	if key == "" {
		res.fail("key", fmt.Errorf("%w: key", ErrRequired))
		return
	}
	for _, c := range key {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			res.warn("key", fmt.Errorf("%w: %q contains %q", ErrUnreachableKey, key, c))
			return
		}
	}
}

// collides reports whether one key is a prefix of the other, ignoring case.
func collides(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
