package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Help_ListsCommandGroups(t *testing.T) {
	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	err := root.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Setup Commands:")
	assert.Contains(t, out, "Build Commands:")
	assert.Contains(t, out, "Plugin Commands:")
	for _, name := range []string{
		"install", "config", "build", "run", "validate", "init",
		"console", "inspect", "fix", "hcl2upgrade", "version", "plugin",
	} {
		assert.Contains(t, out, name)
	}
}

func TestNewRootCommand_VersionFlag(t *testing.T) {
	root := NewRootCommand(nil, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	err := root.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	container, _ := newTestContainer(t)
	container.AppConfig.Warnings = []string{"unknown section: surprise"}

	out, err := execute(t, container, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: unknown section: surprise")
}

func TestNewRootCommand_UnknownCommand(t *testing.T) {
	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"frobnicate"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}
