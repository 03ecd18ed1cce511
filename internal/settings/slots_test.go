package settings_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotNames(t *testing.T) {
	require.Len(t, settings.SlotNames, settings.SlotCount)
	assert.Equal(t, "shortcutKeys001", settings.SlotNames[0])
	assert.Equal(t, "shortcutKeys100", settings.SlotNames[99])
}

func TestSplit_RoundRobin(t *testing.T) {
	items := make([]int, 205)
	for i := range items {
		items[i] = i
	}
	slots := settings.Split(items)
	require.Len(t, slots, settings.SlotCount)
	assert.Equal(t, []int{0, 100, 200}, slots[0])
	assert.Equal(t, []int{4, 104, 204}, slots[4])
	assert.Equal(t, []int{5, 105}, slots[5])
	assert.Equal(t, []int{99, 199}, slots[99])
}

func TestSplit_EmptyProducesEverySlot(t *testing.T) {
	slots := settings.Split[string](nil)
	require.Len(t, slots, settings.SlotCount)
	for _, s := range slots {
		assert.NotNil(t, s)
		assert.Empty(t, s)
	}
}

func TestMergeSplit_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 99, 100, 101, 150, 199, 200, 201, 350} {
		items := make([]string, n)
		for i := range items {
			items[i] = string(rune('a'+i%26)) + string(rune('0'+i%10))
		}
		got := settings.Merge(settings.Split(items))
		if diff := cmp.Diff(items, got); diff != "" {
			t.Errorf("n=%d: Merge(Split(x)) mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestMerge_ToleratesMissingSlots(t *testing.T) {
	slots := make([][]int, settings.SlotCount)
	slots[0] = []int{1}
	slots[2] = []int{3}
	assert.Equal(t, []int{1, 3}, settings.Merge(slots))
}
