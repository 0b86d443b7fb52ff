package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateGoto_RejectsBadVersion(t *testing.T) {
	rootCmd.SetArgs([]string{"migrate", "goto", "latest"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid version "latest"`)
}

func TestMigrateGoto_RequiresVersion(t *testing.T) {
	rootCmd.SetArgs([]string{"migrate", "goto"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	assert.Error(t, rootCmd.Execute())
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])

	sub := map[string]bool{}
	for _, c := range migrateCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, name := range []string{"up", "down", "goto", "version"} {
		assert.True(t, sub[name], "missing migrate %s", name)
	}
}
