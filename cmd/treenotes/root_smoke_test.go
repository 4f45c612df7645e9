package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTUIWithoutTerminalReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	err = runTUI(f, f, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestRootHelpDoesNotError(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--help"})
	assert.NoError(t, root.Execute())
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"login", "notes", "tree", "serve"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestIsInteractiveTerminal(t *testing.T) {
	assert.False(t, isInteractiveTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "plain")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isInteractiveTerminal(f))
}
