package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/kazedev/packerctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConfigTestContainer creates an app.Container with real config
// infrastructure rooted in a temp project directory. Global config and cache
// locations are isolated via environment variables.
func newConfigTestContainer(t *testing.T) *app.Container {
	t.Helper()

	projectDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	container, err := app.New(projectDir)
	require.NoError(t, err)
	return container
}

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	container := newConfigTestContainer(t)

	out, err := execute(t, container, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "init")
}

func TestConfigShowCommand_DisplaysEffectiveConfig(t *testing.T) {
	container := newConfigTestContainer(t)

	out, err := execute(t, container, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, domain.DefaultPackerVersion)
}

func TestConfigShowCommand_ProjectOverridesGlobal(t *testing.T) {
	projectDir := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	globalDir := domain.GlobalConfigDir(configHome)
	require.NoError(t, os.MkdirAll(globalDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName),
		[]byte("[packer]\nversion = \"1.8.5\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, domain.ProjectConfigName),
		[]byte("[packer]\nversion = \"1.9.0\"\n"), 0o600))

	container, err := app.New(projectDir)
	require.NoError(t, err)

	out, err := execute(t, container, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "1.9.0")
	assert.NotContains(t, out, "1.8.5")
	assert.NotContains(t, out, "(not found)")
}

func TestConfigShowCommand_WarnsOnUnknownKeys(t *testing.T) {
	projectDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, domain.ProjectConfigName),
		[]byte("[packer]\ncolour = true\n"), 0o600))

	container, err := app.New(projectDir)
	require.NoError(t, err)

	out, err := execute(t, container, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: unknown key in [packer]: colour")
}

func TestConfigTemplateCommand_OutputsTemplate(t *testing.T) {
	container := newConfigTestContainer(t)

	out, err := execute(t, container, "config", "template")

	require.NoError(t, err)
	assert.Contains(t, out, "[packer]")
	assert.Contains(t, out, "[log]")

	// Just the template content, no metadata headers
	assert.NotContains(t, out, "[Loaded from]")
	assert.NotContains(t, out, "[Effective Config]")
}

func TestConfigInitCommand_CreatesProjectConfig(t *testing.T) {
	container := newConfigTestContainer(t)

	out, err := execute(t, container, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Created config file:")

	info := container.ConfigManager.GetProjectConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "[packer]")
}

func TestConfigInitCommand_WithGlobalFlag(t *testing.T) {
	container := newConfigTestContainer(t)

	out, err := execute(t, container, "config", "init", "--global")

	require.NoError(t, err)
	assert.Contains(t, out, "Created config file:")

	info := container.ConfigManager.GetGlobalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "[packer]")
}

func TestConfigInitCommand_ErrorIfFileExists(t *testing.T) {
	container := newConfigTestContainer(t)

	_, err := execute(t, container, "config", "init")
	require.NoError(t, err)

	_, err = execute(t, container, "config", "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
