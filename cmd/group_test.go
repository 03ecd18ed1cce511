package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("group", "add", "W", "Work", "GM", "GS")
	env.contains(out, "Added group W (Work) with 2 members")

	out = env.run("group", "ls")
	env.contains(out, "Work")
	env.contains(out, "Gmail")
	env.contains(out, "Google")

	out = env.run("group", "edit", "W", "--members", "GM")
	env.contains(out, "group W (Work) with 1 members")

	out = env.run("group", "rm", "W")
	env.equals(out, "Removed group W (Work)")

	_, err := env.runErr("group", "rm", "W")
	assert.Error(t, err)
}

func TestGroup_RemovedMember(t *testing.T) {
	env := newTestEnv(t)

	env.run("group", "add", "W", "Work", "GM", "GS")
	env.run("rm", "GS")

	out := env.run("group", "ls")
	env.contains(out, "Gmail")
	assert.NotContains(t, out, "Google")
}
