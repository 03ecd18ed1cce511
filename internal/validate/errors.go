// errors.go defines sentinel errors for validation failures.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrRequired       = errors.New("required field missing")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidTag     = errors.New("invalid tag")
	ErrNoMembers      = errors.New("group has no members")
	ErrKeyCollision   = errors.New("key collides with another key")
	ErrUnreachableKey = errors.New("key cannot be typed")
	ErrMissingMember  = errors.New("member does not exist")
)
