package validate_test

import (
	"testing"

	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() shortcut.Record {
	return shortcut.Record{ID: "1", Key: "GM", Title: "Gmail", Action: shortcut.JumpToTab{URL: "https://mail.google.com/"}}
}

func TestRecord_Valid(t *testing.T) {
	res := validate.Record(valid(), nil)
	assert.True(t, res.OK())
	assert.Empty(t, res.Issues)
	assert.NoError(t, res.Err())
}

func TestRecord_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*shortcut.Record)
		field string
	}{
		{"title", func(r *shortcut.Record) { r.Title = "  " }, "title"},
		{"key", func(r *shortcut.Record) { r.Key = "" }, "key"},
		{"action", func(r *shortcut.Record) { r.Action = nil }, "action"},
		{"url for new tab", func(r *shortcut.Record) { r.Action = shortcut.OpenNewTab{} }, "url"},
		{"url for current tab", func(r *shortcut.Record) { r.Action = shortcut.OpenCurrentTab{} }, "url"},
		{"url for jump", func(r *shortcut.Record) { r.Action = shortcut.JumpToTab{Script: "x"} }, "url"},
		{"url for jump all windows", func(r *shortcut.Record) { r.Action = shortcut.JumpToTabAllWindows{} }, "url"},
		{"url for private window", func(r *shortcut.Record) { r.Action = shortcut.OpenPrivateWindow{} }, "url"},
		{"script for run script", func(r *shortcut.Record) { r.Action = shortcut.RunScript{} }, "script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid()
			tt.edit(&rec)
			res := validate.Record(rec, nil)
			require.False(t, res.OK())
			require.Len(t, res.Errors(), 1)
			assert.Equal(t, tt.field, res.Errors()[0].Field)
			assert.ErrorIs(t, res.Err(), validate.ErrRequired)
		})
	}
}

func TestRecord_PayloadFreeActions(t *testing.T) {
	rec := valid()
	rec.Action = shortcut.OpenCurrentInPrivate{}
	assert.True(t, validate.Record(rec, nil).OK())
}

func TestRecord_UnknownAction(t *testing.T) {
	for _, a := range []shortcut.Action{shortcut.UnknownAction{Raw: 42}, shortcut.OpenGroup{}} {
		rec := valid()
		rec.Action = a
		assert.ErrorIs(t, validate.Record(rec, nil).Err(), validate.ErrUnknownAction)
	}
}

func TestRecord_KeyCollisionIsWarning(t *testing.T) {
	others := []shortcut.Record{
		valid(),
		{ID: "2", Key: "G", Title: "Google"},
		{ID: "3", Key: "gmx", Title: "Mail X"},
		{ID: "4", Key: "T", Title: "Twitter"},
	}
	groups := []shortcut.Group{{ID: "g", Key: "GMW", Title: "Work mail"}}

	res := validate.Record(valid(), others, groups...)
	assert.True(t, res.OK(), "collisions never block")
	assert.Len(t, res.Warnings(), 3, "G, gmx and the GMW group; not itself, not T")
	for _, w := range res.Warnings() {
		assert.ErrorIs(t, w.Err, validate.ErrKeyCollision)
	}
}

func TestRecord_UnreachableKeyIsWarning(t *testing.T) {
	rec := valid()
	rec.Key = "G-1"
	res := validate.Record(rec, nil)
	assert.True(t, res.OK())
	require.Len(t, res.Warnings(), 1)
	assert.ErrorIs(t, res.Warnings()[0].Err, validate.ErrUnreachableKey)
}

func TestRecord_Tags(t *testing.T) {
	rec := valid()
	rec.Tags = []string{"仕事", "", " pad"}
	res := validate.Record(rec, nil)
	assert.Len(t, res.Errors(), 2)
	assert.ErrorIs(t, res.Err(), validate.ErrInvalidTag)
}

func TestGroup(t *testing.T) {
	records := []shortcut.Record{valid(), {ID: "2", Key: "WSA", Title: "Work A"}}

	res := validate.Group(shortcut.Group{ID: "g", Key: "WS", Title: "Work", ShortcutKeyIDs: []string{"2"}}, records, nil)
	assert.True(t, res.OK())
	require.Len(t, res.Warnings(), 1)
	assert.ErrorIs(t, res.Warnings()[0].Err, validate.ErrKeyCollision)

	res = validate.Group(shortcut.Group{ID: "g", Key: "WS", Title: "Work"}, records, nil)
	assert.ErrorIs(t, res.Err(), validate.ErrNoMembers)

	res = validate.Group(shortcut.Group{ID: "g", Title: "Work", ShortcutKeyIDs: []string{"gone"}}, records, nil)
	assert.ErrorIs(t, res.Err(), validate.ErrRequired)
	require.Len(t, res.Warnings(), 1)
	assert.ErrorIs(t, res.Warnings()[0].Err, validate.ErrMissingMember)

	others := []shortcut.Group{{ID: "g", Key: "XY"}, {ID: "h", Key: "X", Title: "Other"}}
	res = validate.Group(shortcut.Group{ID: "g", Key: "XY", Title: "Self", ShortcutKeyIDs: []string{"1"}}, records, others)
	require.Len(t, res.Warnings(), 1, "collides with X, not with itself")
}

func TestTag(t *testing.T) {
	assert.NoError(t, validate.Tag("SNS"))
	assert.ErrorIs(t, validate.Tag(""), validate.ErrInvalidTag)
	assert.ErrorIs(t, validate.Tag("a\x00b"), validate.ErrInvalidTag)
	assert.ErrorIs(t, validate.Tag("x "), validate.ErrInvalidTag)
}
