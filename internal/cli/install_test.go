package cli

import (
	"errors"
	"testing"

	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConfirm replaces the interactive confirmation for the duration of the
// test and records the prompt message.
func stubConfirm(t *testing.T, answer bool, err error) *string {
	t.Helper()

	var message string
	original := confirmInstallFunc
	confirmInstallFunc = func(msg string) (bool, error) {
		message = msg
		return answer, err
	}
	t.Cleanup(func() { confirmInstallFunc = original })
	return &message
}

func TestInstallCommand_InstallsConfiguredVersion(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)
	installer.EnsureInstalled = true
	installer.ExecPath = "/opt/packer/packer"

	out, err := execute(t, container, "install", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Installed packer "+domain.DefaultPackerVersion)
	assert.Contains(t, out, "/opt/packer/packer")
	assert.Equal(t, []string{domain.DefaultPackerVersion}, installer.EnsureCalls)
	assert.Empty(t, installer.InstallCalls)
}

func TestInstallCommand_VersionArgument(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)
	installer.EnsureInstalled = true

	_, err := execute(t, container, "install", "1.9.4", "--yes")

	require.NoError(t, err)
	assert.Equal(t, []string{"1.9.4"}, installer.EnsureCalls)
}

func TestInstallCommand_AlreadyInstalled(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)
	installer.EnsureInstalled = false // Ensure reports no install was needed

	out, err := execute(t, container, "install", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "already installed")
}

func TestInstallCommand_ForceReinstalls(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)

	_, err := execute(t, container, "install", "--yes", "--force")

	require.NoError(t, err)
	assert.Equal(t, []string{domain.DefaultPackerVersion}, installer.InstallCalls)
	assert.Empty(t, installer.EnsureCalls)
}

func TestInstallCommand_ConfirmAccepted(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)
	installer.EnsureInstalled = true
	installer.DirPath = "/opt/packer"
	message := stubConfirm(t, true, nil)

	_, err := execute(t, container, "install")

	require.NoError(t, err)
	assert.Contains(t, *message, domain.DefaultPackerVersion)
	assert.Contains(t, *message, "/opt/packer")
	assert.Len(t, installer.EnsureCalls, 1)
}

func TestInstallCommand_ConfirmDeclined(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)
	stubConfirm(t, false, nil)

	out, err := execute(t, container, "install")

	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Empty(t, installer.EnsureCalls)
	assert.Empty(t, installer.InstallCalls)
}

func TestInstallCommand_InstallError(t *testing.T) {
	container, _ := newTestContainer(t)
	installer := container.Installer.(*testutil.MockInstaller)
	installer.EnsureErr = errors.New("checksum mismatch")

	_, err := execute(t, container, "install", "--yes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}
