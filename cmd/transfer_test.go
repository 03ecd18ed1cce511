package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_Stdout(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("export", "--format", "yaml")
	env.contains(out, "title: Gmail")
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "backup.json")

	out := env.run("export", path)
	env.equals(out, "Exported to "+path)

	out = env.run("import", path)
	env.contains(out, "Imported 6 shortcuts")
	assert.Len(t, env.records(), 12)
}

func TestImport_DryRun(t *testing.T) {
	env := newTestEnv(t)
	content := `[{"key":"GH","title":"GitHub","action":1,"url":"https://github.com/"}]`

	out := env.runStdin(content, "import", "--dry-run")
	env.contains(out, "GitHub")
	assert.Len(t, env.records(), 6)

	out = env.runStdin(content, "import")
	env.contains(out, "Imported 1 shortcuts")
	assert.Len(t, env.records(), 7)
}

func TestImport_InvalidRejected(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- key: OK\n  title: ok\n  action: 1\n  url: https://ok.example/\n- key: X\n"), 0o644))

	_, err := env.runErr("import", path)
	require.Error(t, err)
	assert.Len(t, env.records(), 6, "a bad file imports nothing")
}
