package settings_test

import (
	"testing"

	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTagColor(t *testing.T) {
	assert.Equal(t, "#3b82f6", settings.DefaultTagColor(""))
	assert.Equal(t, "#10b981", settings.DefaultTagColor("a"))
	assert.Equal(t, "#3b82f6", settings.DefaultTagColor("SNS"))
	assert.Equal(t, settings.DefaultTagColor("仕事"), settings.DefaultTagColor("仕事"))
	assert.Contains(t, settings.TagPalette, settings.DefaultTagColor("a fairly long tag name that wraps the hash"))
}

func TestSnapshot_Tags(t *testing.T) {
	snap := settings.Snapshot{
		ShortcutKeys: []shortcut.Record{
			{Tags: []string{"SNS", "work"}},
			{Tags: []string{"SNS"}},
		},
		TagColors: map[string]string{"work": "#000000"},
	}
	tags := snap.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, settings.Tag{Name: "SNS", Color: "#3b82f6", Count: 2}, tags[0])
	assert.Equal(t, settings.Tag{Name: "work", Color: "#000000", Explicit: true, Count: 1}, tags[1])
}

func TestSnapshot_SetTagColor(t *testing.T) {
	var snap settings.Snapshot
	require.NoError(t, snap.SetTagColor("work", "#AbCdEf"))
	assert.Equal(t, "#AbCdEf", snap.TagColor("work"))

	assert.ErrorIs(t, snap.SetTagColor("work", "red"), settings.ErrInvalidColor)

	require.NoError(t, snap.SetTagColor("work", ""))
	assert.Equal(t, settings.DefaultTagColor("work"), snap.TagColor("work"))
}
