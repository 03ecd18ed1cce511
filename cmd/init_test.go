package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Basic(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("init")
	env.contains(out, "Initialised shortkey store in")

	_, err := os.Stat(filepath.Join(env.dir, ".shortkey", "shortkey.db"))
	require.NoError(t, err, "database should exist")
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("init")
	require.Error(t, err)
	env.contains(out, "already exists")
}

func TestInit_Force(t *testing.T) {
	env := newTestEnv(t)
	env.run("add", "gh", "GitHub", "--url", "https://github.com/")

	env.run("init", "--force")

	_, err := env.runErr("show", "GH")
	assert.Error(t, err, "reinitialising drops added shortcuts")
}

func TestInit_Local(t *testing.T) {
	env := newBareEnv(t)

	env.run("init", "--local")

	data, err := os.ReadFile(filepath.Join(env.dir, ".shortkey", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "shortkey.db")
}

func TestInit_LocalWithDir(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("init", "--local", "--dir", t.TempDir())
	require.Error(t, err)
	env.contains(out, "cannot use --local with --dir")
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("ls")
	require.Error(t, err)
	env.contains(out, "not initialised")
}

func TestDir_Flag(t *testing.T) {
	env := newBareEnv(t)
	other := t.TempDir()

	env.run("init", "--dir", other)
	out := env.run("--dir", other, "ls")
	env.contains(out, "Gmail")
}
