// Package validate checks shortcut records and groups before they are
// stored.
//
// Checks are split into errors, which block a save, and warnings, which an
// editor shows but lets the user override. Key prefix collisions are
// warnings: "A" next to "AB" is legal, it just means "A" only resolves once
// nothing else starts with it.
//
// # Error Handling
//
// Every issue wraps one of the sentinel errors defined in errors.go. Use
// errors.Is() on Result.Err() or on an Issue's Err:
//
//	if errors.Is(res.Err(), validate.ErrRequired) {
//	    // a required field is missing
//	}
package validate
