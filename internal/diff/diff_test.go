package diff

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		old, new  string
		wantEmpty bool
		contains  []string
	}{
		{
			name:      "identical",
			old:       "GS\nGM\n",
			new:       "GS\nGM\n",
			wantEmpty: true,
		},
		{
			name:     "appended line",
			old:      "GS\nGM\n",
			new:      "GS\nGM\nT\n",
			contains: []string{"  GS", "  GM", "+ T"},
		},
		{
			name:     "changed line",
			old:      "key: GS\ntitle: Search\n",
			new:      "key: GS\ntitle: Google\n",
			contains: []string{"- title: Search", "+ title: Google"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "current", "imported")
			if r.Empty() != tt.wantEmpty {
				t.Errorf("Empty() = %v, want %v\n%s", r.Empty(), tt.wantEmpty, r.Diff)
			}
			for _, c := range tt.contains {
				if !strings.Contains(r.Diff, c) {
					t.Errorf("diff missing %q:\n%s", c, r.Diff)
				}
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	var old strings.Builder
	for i := range 10 {
		old.WriteString(strings.Repeat("x", i+1) + "\n")
	}
	r := Compute(old.String(), old.String()+"new\n", "a", "b")
	if !strings.Contains(r.Diff, "  ...") {
		t.Errorf("long equal run not collapsed:\n%s", r.Diff)
	}
}

func TestWrite(t *testing.T) {
	r := Compute("a\n", "b\n", "old", "new")

	var plain bytes.Buffer
	if err := Write(&plain, r, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(plain.String(), "--- old\n+++ new\n") {
		t.Errorf("missing header: %q", plain.String())
	}

	var colour bytes.Buffer
	if err := Write(&colour, r, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colour.String(), "\033[32m+ b") {
		t.Errorf("insert not coloured: %q", colour.String())
	}
}
