// Package transfer moves the shortcut record list in and out of files.
//
// The JSON format is the one the browser extension writes to
// shortcutkeys.json: a bare array of flat records. YAML carries the same
// fields. Imports are all-or-nothing: one malformed record rejects the
// whole file and nothing is written. Accepted records are appended to the
// existing list.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/shortkey/internal/diff"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
	"github.com/jpl-au/shortkey/internal/validate"
)

// DefaultFile is the file name the extension exports to.
const DefaultFile = "shortcutkeys.json"

// Format selects the encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrInvalidImport rejects a whole import.
	ErrInvalidImport = errors.New("invalid import")
	// ErrUnknownFormat is returned for a format other than json or yaml.
	ErrUnknownFormat = errors.New("unknown format")
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFor picks the format from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Export writes records to w.
func Export(w io.Writer, records []shortcut.Record, f Format) error {
	if records == nil {
		records = []shortcut.Record{}
	}
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)
	case FormatYAML:
		legacy := make([]shortcut.LegacyRecord, len(records))
		for i, r := range records {
			legacy[i] = r.Legacy()
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(legacy); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode parses and checks an import file. Every record is migrated and
// validated against the existing records and the ones before it in the
// file. The first record that does not decode or has a blocking issue
// fails the whole file.
func Decode(r io.Reader, f Format, existing []shortcut.Record, groups []shortcut.Group) ([]shortcut.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var legacy []shortcut.LegacyRecord
	switch f {
	case FormatJSON, "":
		err = json.Unmarshal(data, &legacy)
	case FormatYAML:
		err = yaml.Unmarshal(data, &legacy)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	taken := make(map[string]bool, len(existing))
	for _, rec := range existing {
		taken[rec.ID] = true
	}
	seen := append([]shortcut.Record(nil), existing...)

	out := make([]shortcut.Record, 0, len(legacy))
	for i, l := range legacy {
		if l.Action == nil {
			return nil, fmt.Errorf("%w: record %d: action is required", ErrInvalidImport, i+1)
		}
		rec := settings.MigrateLegacyRecord(l, len(existing)+i).Record()
		if taken[rec.ID] {
			rec.ID = shortcut.NewID()
		}
		if res := validate.Record(rec, seen, groups...); !res.OK() {
			return nil, fmt.Errorf("%w: record %d (%s): %w", ErrInvalidImport, i+1, rec.Key, res.Err())
		}
		taken[rec.ID] = true
		seen = append(seen, rec)
		out = append(out, rec)
	}
	return out, nil
}

// Options configures an import.
type Options struct {
	Format Format
	DryRun bool // compute the diff without writing
	Colour bool // colour the dry-run diff
}

// Result contains the outcome of an import.
type Result struct {
	Imported int      // records appended (or that would be)
	Keys     []string // keys of the imported records
	Diff     diff.Result
}

// Import decodes r and appends its records to the store. With DryRun the
// diff between the current and resulting list is written to w instead.
func Import(ctx context.Context, w io.Writer, store *settings.Store, r io.Reader, opts Options) (Result, error) {
	var result Result

	snap := store.Snapshot()
	records, err := Decode(r, opts.Format, snap.ShortcutKeys, snap.ShortcutGroups)
	if err != nil {
		return result, err
	}
	result.Imported = len(records)
	for _, rec := range records {
		result.Keys = append(result.Keys, rec.Key)
	}

	if opts.DryRun {
		before, after, err := render(snap.ShortcutKeys, records)
		if err != nil {
			return result, err
		}
		result.Diff = diff.Compute(before, after, "current", "imported")
		if w != nil {
			if err := diff.Write(w, result.Diff, opts.Colour); err != nil {
				return result, err
			}
		}
		return result, nil
	}

	err = store.Mutate(ctx, func(s *settings.Snapshot) error {
		s.ShortcutKeys = append(s.ShortcutKeys, records...)
		return nil
	})
	return result, err
}

// render encodes the list before and after the import as YAML, in the
// order the store will keep it.
func render(current, imported []shortcut.Record) (string, string, error) {
	var before, after bytes.Buffer
	if err := Export(&before, current, FormatYAML); err != nil {
		return "", "", err
	}
	merged := append(append([]shortcut.Record(nil), current...), imported...)
	settings.SortByKey(merged)
	if err := Export(&after, merged, FormatYAML); err != nil {
		return "", "", err
	}
	return before.String(), after.String(), nil
}
