package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	parent := t.TempDir()

	dir, err := Init(InitOptions{Dir: parent})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, Dir), dir)
	assert.FileExists(t, DBPath(dir))
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))

	ignored, err := IsIgnored(dir)
	require.NoError(t, err)
	assert.False(t, ignored)

	_, err = Init(InitOptions{Dir: parent})
	assert.ErrorContains(t, err, "already exists")

	_, err = Init(InitOptions{Dir: parent, Force: true, Local: true})
	require.NoError(t, err)
	ignored, err = IsIgnored(dir)
	require.NoError(t, err)
	assert.True(t, ignored)
}

func TestIgnoreDB_Idempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("config.yaml\n"), 0644))

	require.NoError(t, IgnoreDB(dir))
	require.NoError(t, IgnoreDB(dir))

	lines, err := parseGitignore(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	count := 0
	for _, l := range lines {
		if l == DBFile {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, lines, "config.yaml")
}

func TestResolve(t *testing.T) {
	parent := t.TempDir()
	dir, err := Init(InitOptions{Dir: parent})
	require.NoError(t, err)

	t.Run("explicit parent or data dir", func(t *testing.T) {
		got, err := Resolve(parent)
		require.NoError(t, err)
		assert.Equal(t, dir, got)

		got, err = Resolve(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("explicit without database", func(t *testing.T) {
		_, err := Resolve(t.TempDir())
		assert.ErrorIs(t, err, ErrNotInitialised)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvDir, parent)
		t.Chdir(t.TempDir())
		got, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("walk up", func(t *testing.T) {
		t.Setenv(EnvDir, "")
		nested := filepath.Join(parent, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0755))
		t.Chdir(nested)
		got, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})
}
