package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"12h", 12 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"4w", 28 * 24 * time.Hour},
		{"3m", 90 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "7", "d", "7s", "-1d", "0d", "1.5d", " 7d"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestSince(t *testing.T) {
	now := time.UnixMilli(10 * 24 * 3600 * 1000)
	assert.Equal(t, int64(3*24*3600*1000), Since(now, 7*24*time.Hour))
}
