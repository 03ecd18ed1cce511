// Package duration parses the short ages used by "ls --unused": 12h, 7d,
// 4w, 3m or 1y.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`^(\d+)([hdwmy])$`)

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"h": time.Hour,
	"d": day,
	"w": 7 * day,
	"m": 30 * day,
	"y": 365 * day,
}

// Parse converts an age such as "4w" into a time.Duration. Months are 30
// days and years 365.
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (use 12h, 7d, 4w, 3m or 1y)", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", s)
	}
	return time.Duration(n) * units[m[2]], nil
}

// Since returns the unix millisecond timestamp age before now.
func Since(now time.Time, age time.Duration) int64 {
	return now.Add(-age).UnixMilli()
}
