package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest writes a manifest file into a temp dir and returns its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "builds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunCommand_AllBuildsSucceed(t *testing.T) {
	container, exec := newTestContainer(t)
	manifest := writeManifest(t, `
builds:
  - name: base
    template: base.pkr.hcl
  - name: app
    template: app.pkr.hcl
    vars:
      - env=prod
`)

	out, err := execute(t, container, "run", manifest)

	require.NoError(t, err)
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "app")
	assert.Contains(t, out, "2 builds succeeded")

	require.Len(t, exec.RunCommands, 2)
	assert.Equal(t, []string{"build", "base.pkr.hcl"}, exec.RunCommands[0].Args)
	assert.Equal(t, []string{"build", "-var=env=prod", "app.pkr.hcl"}, exec.RunCommands[1].Args)
}

func TestRunCommand_FailureStopsRun(t *testing.T) {
	container, exec := newTestContainer(t)
	exec.RunResults = []domain.ExecResult{{ExitCode: 1}}
	manifest := writeManifest(t, `
builds:
  - name: base
    template: base.pkr.hcl
  - name: app
    template: app.pkr.hcl
`)

	out, err := execute(t, container, "run", manifest)

	require.Error(t, err)
	assert.EqualError(t, err, "1 of 1 builds failed")
	assert.Contains(t, out, "base")
	assert.NotContains(t, out, "app.pkr.hcl")
	assert.Len(t, exec.RunCommands, 1)
}

func TestRunCommand_ContinueOnError(t *testing.T) {
	container, exec := newTestContainer(t)
	exec.RunResults = []domain.ExecResult{{ExitCode: 1}, {}}
	manifest := writeManifest(t, `
continue_on_error: true
builds:
  - name: base
    template: base.pkr.hcl
  - name: app
    template: app.pkr.hcl
`)

	out, err := execute(t, container, "run", manifest)

	require.Error(t, err)
	assert.EqualError(t, err, "1 of 2 builds failed")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "app")
	assert.Len(t, exec.RunCommands, 2)
}

func TestRunCommand_WorkingDirApplied(t *testing.T) {
	container, exec := newTestContainer(t)
	manifest := writeManifest(t, `
working_dir: /srv/images
builds:
  - name: base
    template: base.pkr.hcl
`)

	_, err := execute(t, container, "run", manifest)

	require.NoError(t, err)
	require.Len(t, exec.RunCommands, 1)
	assert.Equal(t, "/srv/images", exec.RunCommands[0].Dir)
}

func TestRunCommand_InvalidManifest(t *testing.T) {
	container, exec := newTestContainer(t)
	manifest := writeManifest(t, `builds: []`)

	_, err := execute(t, container, "run", manifest)

	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, exec.RunCommands)
}

func TestRunCommand_MissingManifest(t *testing.T) {
	container, exec := newTestContainer(t)

	_, err := execute(t, container, "run", filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
	assert.Empty(t, exec.RunCommands)

	items := container.Templates.(*testutil.MockTemplateSource)
	assert.Empty(t, items.ResolveCalls)
}
