// open.go resolves references and key sequences to candidates and runs
// them.

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/shortkey/internal/keymatch"
	"github.com/jpl-au/shortkey/internal/shortcut"
)

var (
	// ErrAmbiguous is returned when a key sequence ends with several
	// candidates still open.
	ErrAmbiguous = errors.New("ambiguous key sequence")
	// ErrNoMatch is returned when nothing starts with a key sequence.
	ErrNoMatch = errors.New("no shortcut matches")
)

// Candidate returns the record or group named by ref (id or key). Records
// win over groups.
func (s *Service) Candidate(ref string) (shortcut.Candidate, error) {
	if r, ok := s.store.Record(ref); ok {
		return shortcut.RecordCandidate(r), nil
	}
	if g, ok := s.store.Group(ref); ok {
		return shortcut.GroupCandidate(g), nil
	}
	return shortcut.Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Resolve feeds keys through a fresh matcher, one character at a time,
// and returns the candidate they name.
func (s *Service) Resolve(keys string) (shortcut.Candidate, error) {
	m := keymatch.New(s.store)
	var last keymatch.Step
	for _, c := range keys {
		last = m.Type(c)
		switch last.Outcome {
		case keymatch.Resolved:
			return *last.Match, nil
		case keymatch.NoMatch:
			return shortcut.Candidate{}, fmt.Errorf("%w: %q", ErrNoMatch, keys)
		}
	}
	if last.Outcome == keymatch.Pending {
		return shortcut.Candidate{}, fmt.Errorf("%w: %q matches %d shortcuts", ErrAmbiguous, keys, len(last.Candidates))
	}
	return shortcut.Candidate{}, fmt.Errorf("%w: %q", ErrNoMatch, keys)
}

// Execute runs c and counts the use of a record. Opening a group does not
// count as a use of its members.
func (s *Service) Execute(ctx context.Context, c shortcut.Candidate) error {
	if err := s.dispatch.Dispatch(ctx, c); err != nil {
		return err
	}
	if c.IsGroup() {
		return nil
	}
	return s.store.IncrementUseCount(ctx, c.ID)
}

// Open executes the record or group named by ref.
func (s *Service) Open(ctx context.Context, ref string) (shortcut.Candidate, error) {
	c, err := s.Candidate(ref)
	if err != nil {
		return c, err
	}
	return c, s.Execute(ctx, c)
}

// Launch executes the candidate a key sequence resolves to.
func (s *Service) Launch(ctx context.Context, keys string) (shortcut.Candidate, error) {
	c, err := s.Resolve(keys)
	if err != nil {
		return c, err
	}
	return c, s.Execute(ctx, c)
}
