// Package log provides centralised audit logging for shortkey operations.
// Logs are stored in ~/.shortkey/log/shortkey-log.db and record every CLI
// command, MCP tool call and HTTP-triggered execution across data
// directories.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("shortcut:add", "write").
//		Key(rec.Key).
//		ID(rec.ID).
//		Write(err)
//
//	log.Event("shortcut:search", "search").
//		Detail("query", query).
//		Detail("count", len(results)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "shortcut:open",
// "group:add", "mcp:shortkey_resolve".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "shortcut:open", "mcp:shortkey_use"
	Action string // verb: read, write, delete, open, search, etc.
	Key    string // input: shortcut key or reference requested
	ID     string // output: id of the record or group acted on

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "shortcut:add", "group:rm")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:shortkey_search")
//
// The action describes what operation was performed:
//   - "read", "write", "delete", "list", "search", "open", "import", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Key sets the shortcut key, or the id/key reference, the caller gave.
//
// Example:
//
//	log.Event("shortcut:show", "read").Key(ref)
func (b *Builder) Key(key string) *Builder {
	b.entry.Key = key
	return b
}

// ID sets the id of the record or group the operation resolved to.
//
// Set it after the lookup succeeds, so failed lookups log only the key.
func (b *Builder) ID(id string) *Builder {
	b.entry.ID = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, result counts, action ids, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// Example:
//
//	rec, err := store.Record(ref)
//	log.Event("shortcut:show", "read").Key(ref).ID(rec.ID).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the data directory identifier for subsequent entries.
// The dir should be the absolute path to the .shortkey directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
