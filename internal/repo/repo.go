// Package repo provides data directory initialisation and discovery for
// shortkey.
//
// A data directory is a .shortkey directory holding shortkey.db, the
// SQLite file behind both storage areas. This package handles:
//   - Initialising a new data directory (creating .shortkey/ and the database)
//   - Discovering the directory to use for a command
//   - Controlling git visibility of the database via .gitignore
//
// Discovery order is: an explicit directory (the --dir flag), then the
// SHORTKEY_DIR environment variable, then a walk up from the working
// directory as git does, then ~/.shortkey.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/shortkey/internal/storage"
)

const (
	// Dir is the directory name for a shortkey data directory.
	Dir = ".shortkey"
	// DBFile is the database filename.
	DBFile = "shortkey.db"
	// EnvDir names the environment variable that selects a data directory.
	EnvDir = "SHORTKEY_DIR"
)

// ErrNotInitialised is returned when no data directory is found.
var ErrNotInitialised = errors.New("shortkey not initialised (run 'shortkey init')")

// InitOptions configures Init.
type InitOptions struct {
	Dir   string // parent directory; empty for the current directory
	Force bool   // reinitialise an existing database
	Local bool   // add the database to .gitignore
}

// Init creates a data directory and its database and returns the path of
// the .shortkey directory. Records are seeded on first open, not here.
func Init(opts InitOptions) (string, error) {
	parent := opts.Dir
	if parent == "" {
		parent = "."
	}
	dataDir, err := filepath.Abs(filepath.Join(parent, Dir))
	if err != nil {
		return "", err
	}
	dbPath := filepath.Join(dataDir, DBFile)

	if _, err := os.Stat(dbPath); err == nil {
		if !opts.Force {
			return "", fmt.Errorf("database %s already exists (use --force to reinitialise)", dbPath)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := storage.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open storage: %w", err)
	}
	if err := s.Close(); err != nil {
		return "", fmt.Errorf("close storage: %w", err)
	}

	// Only written on first init so custom entries survive a --force.
	gitignore := filepath.Join(dataDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# shortkey - ignore SQLite side files and local config
*.db-wal
*.db-shm
config.yaml
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return "", fmt.Errorf("write gitignore: %w", err)
		}
	}

	if opts.Local {
		if err := IgnoreDB(dataDir); err != nil {
			return "", fmt.Errorf("ignore database: %w", err)
		}
	}
	return dataDir, nil
}

// Resolve returns the data directory to use. explicit, when set, must
// already hold a database.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return checkDir(explicit)
	}
	if env := os.Getenv(EnvDir); env != "" {
		return checkDir(env)
	}
	if dir, err := DiscoverDir(); err == nil {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNotInitialised
	}
	return checkDir(filepath.Join(home, Dir))
}

// checkDir accepts either a .shortkey directory or its parent.
func checkDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for _, d := range []string{abs, filepath.Join(abs, Dir)} {
		if _, err := os.Stat(filepath.Join(d, DBFile)); err == nil {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: no %s in %s", ErrNotInitialised, DBFile, abs)
}

// DiscoverDir walks up from the working directory looking for a
// .shortkey directory holding a database.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dataDir := filepath.Join(dir, Dir)
		if _, err := os.Stat(filepath.Join(dataDir, DBFile)); err == nil {
			return dataDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBPath returns the database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}
