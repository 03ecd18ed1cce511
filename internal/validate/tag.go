// tag.go implements tag string validation.
//
// Design: Minimal validation. Tags are user-defined labels, often
// Japanese; only clearly broken inputs (empty, null bytes, surrounding
// whitespace that would make two tags look identical) are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string.
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if strings.TrimSpace(t) != t {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidTag, t)
	}
	return nil
}
