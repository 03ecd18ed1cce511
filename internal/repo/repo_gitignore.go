// repo_gitignore.go manages the .gitignore entry that keeps the database
// out of version control.
//
// A data directory inside a dotfiles repository can share its shortcuts by
// committing shortkey.db, or keep them private with init --local.
//
// Design: Existing gitignore content and formatting are preserved; only the
// database line and its header are added.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local database (not committed)"

// parseGitignore reads a gitignore file and returns its lines (trimmed).
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// IgnoreDB adds the database to the data directory's gitignore.
func IgnoreDB(dataDir string) error {
	gitignore := filepath.Join(dataDir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}
	if slices.Contains(lines, DBFile) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)
	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	s += DBFile + "\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// IsIgnored reports whether the database is in the gitignore.
func IsIgnored(dataDir string) (bool, error) {
	lines, err := parseGitignore(filepath.Join(dataDir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, DBFile), nil
}
