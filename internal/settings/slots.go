// slots.go shards the record list across fixed storage slots.
//
// A single sync item is capped at a few KiB, far less than a realistic
// record list, so records are spread round-robin over SlotCount named items.
// Merge reads the slots back round by round, which makes Merge the exact
// inverse of Split for every list length, including lists longer than
// SlotCount.

package settings

import "fmt"

// SlotCount is the number of storage slots records are sharded into.
const SlotCount = 100

// SlotNames are the storage keys of the record slots, in slot order.
var SlotNames = func() []string {
	names := make([]string, SlotCount)
	for i := range names {
		names[i] = fmt.Sprintf("shortcutKeys%03d", i+1)
	}
	return names
}()

// Split distributes items round-robin by index into SlotCount slots.
// Every slot is present, possibly empty, so stale slots are overwritten.
func Split[T any](items []T) [][]T {
	slots := make([][]T, SlotCount)
	for i := range slots {
		slots[i] = []T{}
	}
	for i, item := range items {
		slots[i%SlotCount] = append(slots[i%SlotCount], item)
	}
	return slots
}

// Merge reassembles slots written by Split, taking one item from each slot
// per round in slot order.
func Merge[T any](slots [][]T) []T {
	longest, total := 0, 0
	for _, s := range slots {
		longest = max(longest, len(s))
		total += len(s)
	}
	out := make([]T, 0, total)
	for round := range longest {
		for _, s := range slots {
			if round < len(s) {
				out = append(out, s[round])
			}
		}
	}
	return out
}
