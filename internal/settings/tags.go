package settings

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf16"
)

// ErrInvalidColor is returned for a tag colour that is not #rrggbb.
var ErrInvalidColor = errors.New("invalid colour (want #rrggbb)")

// TagPalette holds the colours assigned to tags without an explicit colour.
var TagPalette = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#06b6d4", "#84cc16",
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag describes one tag in use.
type Tag struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Explicit bool   `json:"explicit"`
	Count    int    `json:"count"`
}

// Tags lists every tag used by a record, sorted by name, with its colour
// and the number of records carrying it.
func (s Snapshot) Tags() []Tag {
	counts := map[string]int{}
	for _, r := range s.ShortcutKeys {
		for _, t := range r.Tags {
			counts[t]++
		}
	}
	out := make([]Tag, 0, len(counts))
	for name, n := range counts {
		c, explicit := s.TagColors[name]
		if !explicit {
			c = DefaultTagColor(name)
		}
		out = append(out, Tag{Name: name, Color: c, Explicit: explicit, Count: n})
	}
	slices.SortFunc(out, func(a, b Tag) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// TagColor returns the explicit colour of tag, or its default colour.
func (s Snapshot) TagColor(tag string) string {
	if c, ok := s.TagColors[tag]; ok {
		return c
	}
	return DefaultTagColor(tag)
}

// SetTagColor sets or, with an empty colour, clears the colour of tag.
func (s *Snapshot) SetTagColor(tag, color string) error {
	if color == "" {
		delete(s.TagColors, tag)
		return nil
	}
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	if s.TagColors == nil {
		s.TagColors = map[string]string{}
	}
	s.TagColors[tag] = color
	return nil
}

// DefaultTagColor picks a palette colour from the classic times-31 string
// hash over the tag's UTF-16 code units, evaluated with 32-bit shifts.
func DefaultTagColor(tag string) string {
	var h float64
	for _, c := range utf16.Encode([]rune(tag)) {
		h = float64(c) + (float64(toInt32(h)<<5) - h)
	}
	return TagPalette[int(math.Mod(math.Abs(h), float64(len(TagPalette))))]
}

// toInt32 converts an integral float to int32 with wrap-around.
func toInt32(f float64) int32 {
	return int32(uint32(int64(f)))
}
