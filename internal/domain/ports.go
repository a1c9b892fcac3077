package domain

import (
	"context"
	"time"
)

// CommandExecutor spawns external commands synchronously. Both methods
// block until the child exits. A non-zero exit is reported through
// ExecResult.ExitCode with a nil error; the error is non-nil only when the
// process could not be spawned or its streams could not be read.
type CommandExecutor interface {
	// Run spawns the command with the caller's stdin/stdout/stderr attached.
	Run(ctx context.Context, cmd ExecCommand) (ExecResult, error)

	// Output spawns the command with stdout and stderr captured.
	Output(ctx context.Context, cmd ExecCommand) (ExecResult, error)
}

// Packer is the typed facade over the packer binary. Every operation blocks
// until the spawned process exits. Operations returning only an error
// inherit the caller's stdio; operations returning a string capture and
// return the child's standard output.
//
// A child that exits non-zero surfaces as *ExecutionError; a child that
// could not be spawned surfaces as a wrapped I/O error, never as
// *ExecutionError.
type Packer interface {
	// WithWorkingDir returns a copy of the facade whose spawned processes
	// run in dir. Repeated calls replace the override.
	WithWorkingDir(dir string) Packer

	// ExecutablePath returns the resolved path of the wrapped binary.
	ExecutablePath() string

	Build(ctx context.Context, template string, opts BuildOptions) error
	Init(ctx context.Context, template string) error
	Validate(ctx context.Context, template string) error
	Console(ctx context.Context, template string) error
	PluginInstall(ctx context.Context, name string) error
	PluginRemove(ctx context.Context, name string) error

	Inspect(ctx context.Context, template string) (string, error)
	Fix(ctx context.Context, template string) (string, error)
	Version(ctx context.Context) (string, error)
	PluginList(ctx context.Context) (string, error)
	HCL2Upgrade(ctx context.Context, template string) (string, error)
}

// BinaryInstaller provisions the packer binary the facade's discovery
// contract depends on.
type BinaryInstaller interface {
	// Installed reports whether the binary answers `--version` with a zero
	// exit.
	Installed(ctx context.Context) bool

	// InstalledVersion returns the semantic version the binary reports.
	InstalledVersion(ctx context.Context) (string, error)

	// Install downloads, verifies, and extracts the given packer release
	// into the install directory.
	Install(ctx context.Context, version string) error

	// Ensure installs the given version unless a binary at least that new
	// already answers. It reports whether an install was performed.
	Ensure(ctx context.Context, version string) (bool, error)

	// Dir returns the install directory.
	Dir() string

	// ExecutablePath returns the path the binary is installed at.
	ExecutablePath() string
}

// TemplateSource resolves template references onto local paths.
type TemplateSource interface {
	// ResolveTemplate returns the local path for template. With an empty
	// source the template path passes through unchanged; otherwise source
	// is a git URL (optionally suffixed `@ref`) that is cloned into the
	// checkout cache, and template is resolved inside the checkout.
	ResolveTemplate(ctx context.Context, source, template string) (string, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + project).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration with selected
	// sources ignored.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitProjectConfig creates the project config file from the template.
	InitProjectConfig() error

	// InitGlobalConfig creates the global config file from the template.
	InitGlobalConfig() error
}

// Logger writes leveled, categorized diagnostics. Implementations must be
// safe for concurrent use; a nil or disabled logger drops everything.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
