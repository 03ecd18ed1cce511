package keymatch_test

import (
	"testing"

	"github.com/jpl-au/shortkey/internal/keymatch"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(keys ...string) []shortcut.Record {
	out := make([]shortcut.Record, len(keys))
	for i, k := range keys {
		out[i] = shortcut.Record{ID: "id-" + k, Key: k, Title: k}
	}
	return out
}

func candidateKeys(cs []shortcut.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key
	}
	return out
}

func TestMatcher_NarrowsThenResolves(t *testing.T) {
	m := keymatch.New(keymatch.Static{Records: records("A", "AB", "ABC")})

	step := m.Type('a')
	assert.Equal(t, keymatch.Pending, step.Outcome)
	assert.Len(t, step.Candidates, 3)
	assert.Equal(t, "A", step.Buffer)

	step = m.Type('B')
	assert.Equal(t, keymatch.Pending, step.Outcome)
	assert.Equal(t, []string{"AB", "ABC"}, candidateKeys(step.Candidates))

	step = m.Type('C')
	require.Equal(t, keymatch.Resolved, step.Outcome)
	require.NotNil(t, step.Match)
	assert.Equal(t, "ABC", step.Match.Key)
	assert.Empty(t, m.Buffer())
}

func TestMatcher_NoMatchResetsImmediately(t *testing.T) {
	m := keymatch.New(keymatch.Static{Records: records("A", "B")})

	step := m.Type('Z')
	assert.Equal(t, keymatch.NoMatch, step.Outcome)
	assert.Empty(t, m.Buffer())

	step = m.Type('B')
	require.Equal(t, keymatch.Resolved, step.Outcome, "Z must not carry over")
	assert.Equal(t, "B", step.Match.Key)
}

func TestMatcher_SinglePrefixCandidateStaysPending(t *testing.T) {
	m := keymatch.New(keymatch.Static{Records: records("GMX")})

	step := m.Type('G')
	assert.Equal(t, keymatch.Pending, step.Outcome)
	step = m.Type('M')
	assert.Equal(t, keymatch.Pending, step.Outcome)
	step = m.Type('X')
	assert.Equal(t, keymatch.Resolved, step.Outcome)
}

func TestMatcher_HiddenRecordsNeverMatch(t *testing.T) {
	recs := records("H", "HA")
	recs[1].Hidden = true
	recs[0].HideOnPopup = true
	m := keymatch.New(keymatch.Static{Records: recs})

	step := m.Type('H')
	require.Equal(t, keymatch.Resolved, step.Outcome, "hideOnPopup records stay reachable by keystroke")
	assert.Equal(t, "id-H", step.Match.ID)
}

func TestMatcher_GroupKeyExcludesMembers(t *testing.T) {
	recs := records("WSA", "WSB")
	group := shortcut.Group{ID: "g", Key: "WS", Title: "Work", ShortcutKeyIDs: []string{"id-WSA"}}
	src := keymatch.Static{Records: recs, Groups: []shortcut.Group{group}}

	// Exactly "WS": the member WSA is excluded, the non-member WSB is not.
	assert.Equal(t, []string{"WSB", "WS"}, candidateKeys(src.Find("WS")))

	// "WSA": the group key is now a strict prefix, so no exclusion applies.
	found := src.Find("WSA")
	require.Len(t, found, 1)
	assert.Equal(t, "id-WSA", found[0].ID)
	assert.False(t, found[0].IsGroup())

	m := keymatch.New(src)
	for _, c := range "WSA" {
		step := m.Type(c)
		if c != 'A' {
			assert.Equal(t, keymatch.Pending, step.Outcome)
			continue
		}
		require.Equal(t, keymatch.Resolved, step.Outcome)
		assert.Equal(t, "WSA", step.Match.Key)
	}
}

func TestMatcher_GroupResolvesOnExactKey(t *testing.T) {
	recs := records("WSA")
	group := shortcut.Group{ID: "g", Key: "WS", Title: "Work", ShortcutKeyIDs: []string{"id-WSA"}}
	m := keymatch.New(keymatch.Static{Records: recs, Groups: []shortcut.Group{group}})

	assert.Equal(t, keymatch.Pending, m.Type('W').Outcome)
	step := m.Type('S')
	require.Equal(t, keymatch.Resolved, step.Outcome)
	assert.True(t, step.Match.IsGroup())
	assert.Equal(t, shortcut.OpenGroup{}, step.Match.Action)
}

func TestMatcher_IgnoredKeysLeaveState(t *testing.T) {
	m := keymatch.New(keymatch.Static{Records: records("AB")})
	m.Type('A')

	for _, e := range []keymatch.KeyEvent{
		{Code: "ShiftLeft", Key: "Shift"},
		{Code: "ControlLeft", Key: "Control"},
		{Code: "KeyB", Key: "b", Ctrl: true},
		{Code: "Slash", Key: "/"},
		{Code: "F1", Key: "F1"},
	} {
		step := m.Press(e)
		assert.Equal(t, keymatch.Ignored, step.Outcome, "event %+v", e)
		assert.Equal(t, "A", m.Buffer())
	}

	step := m.Press(keymatch.KeyEvent{Code: "KeyB", Key: "こ"})
	assert.Equal(t, keymatch.Resolved, step.Outcome, "physical code wins over IME output")
}

func TestMatcher_Reset(t *testing.T) {
	m := keymatch.New(keymatch.Static{Records: records("AB")})
	m.Type('A')
	m.Reset()
	assert.Empty(t, m.Buffer())
	assert.Equal(t, keymatch.NoMatch, m.Type('B').Outcome)
}

func TestKeyFromEvent(t *testing.T) {
	tests := []struct {
		code, key string
		want      rune
		ok        bool
	}{
		{"KeyA", "a", 'A', true},
		{"KeyQ", "た", 'Q', true},
		{"Digit7", "7", '7', true},
		{"Digit7", "&", '7', true},
		{"", "z", 'Z', true},
		{"", "5", '5', true},
		{"Space", " ", 0, false},
		{"Enter", "Enter", 0, false},
		{"", "あ", 0, false},
	}
	for _, tt := range tests {
		got, ok := keymatch.KeyFromEvent(tt.code, tt.key)
		assert.Equal(t, tt.ok, ok, "%q/%q", tt.code, tt.key)
		assert.Equal(t, tt.want, got, "%q/%q", tt.code, tt.key)
	}
}
