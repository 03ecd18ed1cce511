package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("config")
	env.contains(out, "launch.opener: true")
	env.contains(out, "server.http_addr:")

	out = env.run("config", "storage.max_items", "100")
	env.equals(out, "storage.max_items = 100 (global)")

	out = env.run("config", "storage.max_items")
	env.equals(out, "100")

	_, err := env.runErr("config", "no.such.key", "1")
	assert.Error(t, err)
}

func TestGuide(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("guide", "--raw")
	env.contains(out, "shortkey")

	out = env.run("guide", "keys", "--raw")
	env.contains(out, "exactly one shortcut")

	out, err := env.runErr("guide", "no-such-topic")
	require.Error(t, err)
	env.contains(out, "Available:")
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag:")

	var info map[string]any
	require.NoError(t, json.Unmarshal(env.stdout("version", "-o", "json"), &info))
	assert.NotEmpty(t, info)
}

func TestDB(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("db")
	env.contains(out, "path:")
	env.contains(out, "storage: sync")
	env.contains(out, "sync:    ")
}

func TestOutput_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("ls", "-o", "xml")
	assert.Error(t, err)
}
