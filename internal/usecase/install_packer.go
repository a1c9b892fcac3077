// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/kazedev/packerctl/internal/domain"
)

// InstallPackerInput contains the input for the InstallPacker use case.
type InstallPackerInput struct {
	Version string // Packer version to install; empty means the default
	Force   bool   // Reinstall even when a suitable binary is present
}

// InstallPackerOutput contains the output of the InstallPacker use case.
type InstallPackerOutput struct {
	Version          string // Version that was requested
	Path             string // Path the binary lives at
	AlreadyInstalled bool   // True when no install was needed
}

// InstallPacker provisions the packer binary.
type InstallPacker struct {
	installer domain.BinaryInstaller
	logger    domain.Logger
}

// NewInstallPacker creates a new InstallPacker use case.
func NewInstallPacker(installer domain.BinaryInstaller, logger domain.Logger) *InstallPacker {
	return &InstallPacker{
		installer: installer,
		logger:    logger,
	}
}

// Execute installs the requested packer version unless a suitable binary is
// already present. Force always reinstalls.
func (uc *InstallPacker) Execute(ctx context.Context, in InstallPackerInput) (*InstallPackerOutput, error) {
	version := in.Version
	if version == "" {
		version = domain.DefaultPackerVersion
	}

	out := &InstallPackerOutput{
		Version: version,
		Path:    uc.installer.ExecutablePath(),
	}

	if in.Force {
		uc.logger.Info("install", fmt.Sprintf("installing packer %s into %s", version, uc.installer.Dir()))
		if err := uc.installer.Install(ctx, version); err != nil {
			return nil, fmt.Errorf("install packer: %w", err)
		}
		return out, nil
	}

	installed, err := uc.installer.Ensure(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("install packer: %w", err)
	}
	if installed {
		uc.logger.Info("install", fmt.Sprintf("installed packer %s into %s", version, uc.installer.Dir()))
	}
	out.AlreadyInstalled = !installed
	return out, nil
}
