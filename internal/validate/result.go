package validate

import (
	"errors"
	"fmt"
)

// Severity ranks an Issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Issue is one finding about one field.
type Issue struct {
	Field    string
	Severity Severity
	Err      error // wraps one of the sentinel errors
}

// String renders the issue for display.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %v", i.Severity, i.Field, i.Err)
}

// Result collects the issues found by a check.
type Result struct {
	Issues []Issue
}

// OK reports whether there are no errors. Warnings do not count.
func (r Result) OK() bool {
	return len(r.Errors()) == 0
}

// Errors returns the blocking issues.
func (r Result) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the non-blocking issues.
func (r Result) Warnings() []Issue { return r.filter(SeverityWarning) }

// Err joins the blocking issues into one error, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, i := range r.Errors() {
		errs = append(errs, fmt.Errorf("%s: %w", i.Field, i.Err))
	}
	return errors.Join(errs...)
}

func (r Result) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

func (r *Result) fail(field string, err error) {
	r.Issues = append(r.Issues, Issue{Field: field, Severity: SeverityError, Err: err})
}

func (r *Result) warn(field string, err error) {
	r.Issues = append(r.Issues, Issue{Field: field, Severity: SeverityWarning, Err: err})
}
