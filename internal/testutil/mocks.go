// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/kazedev/packerctl/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockExecutor is a test double for domain.CommandExecutor. It records every
// command and replays queued results in order; once a queue is exhausted the
// zero result is returned.
type MockExecutor struct {
	RunErr         error
	OutputErr      error
	RunResults     []domain.ExecResult
	OutputResults  []domain.ExecResult
	RunCommands    []domain.ExecCommand
	OutputCommands []domain.ExecCommand
}

// Ensure MockExecutor implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*MockExecutor)(nil)

// Run records the command and replays the next queued run result.
func (m *MockExecutor) Run(_ context.Context, cmd domain.ExecCommand) (domain.ExecResult, error) {
	m.RunCommands = append(m.RunCommands, cmd)
	if m.RunErr != nil {
		return domain.ExecResult{}, m.RunErr
	}
	return dequeue(&m.RunResults), nil
}

// Output records the command and replays the next queued output result.
func (m *MockExecutor) Output(_ context.Context, cmd domain.ExecCommand) (domain.ExecResult, error) {
	m.OutputCommands = append(m.OutputCommands, cmd)
	if m.OutputErr != nil {
		return domain.ExecResult{}, m.OutputErr
	}
	return dequeue(&m.OutputResults), nil
}

func dequeue(queue *[]domain.ExecResult) domain.ExecResult {
	if len(*queue) == 0 {
		return domain.ExecResult{}
	}
	res := (*queue)[0]
	*queue = (*queue)[1:]
	return res
}

// BuildCall records one MockPacker.Build invocation.
type BuildCall struct {
	Template string
	Options  domain.BuildOptions
}

// MockPacker is a test double for domain.Packer.
// Fields are ordered to minimize memory padding.
type MockPacker struct {
	BuildErr         error
	InitErr          error
	ValidateErr      error
	ConsoleErr       error
	PluginInstallErr error
	PluginRemoveErr  error
	InspectErr       error
	FixErr           error
	VersionErr       error
	PluginListErr    error
	HCL2UpgradeErr   error

	InspectOutput     string
	FixOutput         string
	VersionOutput     string
	PluginListOutput  string
	HCL2UpgradeOutput string
	Path              string

	BuildCalls  []BuildCall
	WorkingDirs []string
	InitCalls   []string
	BuildErrs   []error
}

// Ensure MockPacker implements domain.Packer interface.
var _ domain.Packer = (*MockPacker)(nil)

// WithWorkingDir records the directory and returns the same mock.
func (m *MockPacker) WithWorkingDir(dir string) domain.Packer {
	m.WorkingDirs = append(m.WorkingDirs, dir)
	return m
}

// ExecutablePath returns the configured path.
func (m *MockPacker) ExecutablePath() string {
	return m.Path
}

// Build records the call and replays queued per-call errors, falling back to
// BuildErr.
func (m *MockPacker) Build(_ context.Context, template string, opts domain.BuildOptions) error {
	m.BuildCalls = append(m.BuildCalls, BuildCall{Template: template, Options: opts})
	if len(m.BuildErrs) > 0 {
		err := m.BuildErrs[0]
		m.BuildErrs = m.BuildErrs[1:]
		return err
	}
	return m.BuildErr
}

// Init records the call and returns the configured error.
func (m *MockPacker) Init(_ context.Context, template string) error {
	m.InitCalls = append(m.InitCalls, template)
	return m.InitErr
}

// Validate returns the configured error.
func (m *MockPacker) Validate(_ context.Context, _ string) error {
	return m.ValidateErr
}

// Console returns the configured error.
func (m *MockPacker) Console(_ context.Context, _ string) error {
	return m.ConsoleErr
}

// PluginInstall returns the configured error.
func (m *MockPacker) PluginInstall(_ context.Context, _ string) error {
	return m.PluginInstallErr
}

// PluginRemove returns the configured error.
func (m *MockPacker) PluginRemove(_ context.Context, _ string) error {
	return m.PluginRemoveErr
}

// Inspect returns the configured output or error.
func (m *MockPacker) Inspect(_ context.Context, _ string) (string, error) {
	return m.InspectOutput, m.InspectErr
}

// Fix returns the configured output or error.
func (m *MockPacker) Fix(_ context.Context, _ string) (string, error) {
	return m.FixOutput, m.FixErr
}

// Version returns the configured output or error.
func (m *MockPacker) Version(_ context.Context) (string, error) {
	return m.VersionOutput, m.VersionErr
}

// PluginList returns the configured output or error.
func (m *MockPacker) PluginList(_ context.Context) (string, error) {
	return m.PluginListOutput, m.PluginListErr
}

// HCL2Upgrade returns the configured output or error.
func (m *MockPacker) HCL2Upgrade(_ context.Context, _ string) (string, error) {
	return m.HCL2UpgradeOutput, m.HCL2UpgradeErr
}

// MockInstaller is a test double for domain.BinaryInstaller.
// Fields are ordered to minimize memory padding.
type MockInstaller struct {
	InstallErr        error
	EnsureErr         error
	VersionErr        error
	InstalledVersions string
	DirPath           string
	ExecPath          string
	InstallCalls      []string
	EnsureCalls       []string
	IsInstalled       bool
	EnsureInstalled   bool
}

// Ensure MockInstaller implements domain.BinaryInstaller interface.
var _ domain.BinaryInstaller = (*MockInstaller)(nil)

// Installed returns the configured flag.
func (m *MockInstaller) Installed(_ context.Context) bool {
	return m.IsInstalled
}

// InstalledVersion returns the configured version or error.
func (m *MockInstaller) InstalledVersion(_ context.Context) (string, error) {
	if m.VersionErr != nil {
		return "", m.VersionErr
	}
	return m.InstalledVersions, nil
}

// Install records the call and returns the configured error.
func (m *MockInstaller) Install(_ context.Context, version string) error {
	m.InstallCalls = append(m.InstallCalls, version)
	return m.InstallErr
}

// Ensure records the call and returns the configured result.
func (m *MockInstaller) Ensure(_ context.Context, version string) (bool, error) {
	m.EnsureCalls = append(m.EnsureCalls, version)
	if m.EnsureErr != nil {
		return false, m.EnsureErr
	}
	return m.EnsureInstalled, nil
}

// Dir returns the configured install directory.
func (m *MockInstaller) Dir() string {
	return m.DirPath
}

// ExecutablePath returns the configured executable path.
func (m *MockInstaller) ExecutablePath() string {
	return m.ExecPath
}

// ResolveCall records one MockTemplateSource.ResolveTemplate invocation.
type ResolveCall struct {
	Source   string
	Template string
}

// MockTemplateSource is a test double for domain.TemplateSource.
type MockTemplateSource struct {
	ResolveErr   error
	ResolvedPath string
	ResolveCalls []ResolveCall
}

// Ensure MockTemplateSource implements domain.TemplateSource interface.
var _ domain.TemplateSource = (*MockTemplateSource)(nil)

// ResolveTemplate records the call and returns the configured path. When no
// path is configured the template passes through unchanged.
func (m *MockTemplateSource) ResolveTemplate(_ context.Context, source, template string) (string, error) {
	m.ResolveCalls = append(m.ResolveCalls, ResolveCall{Source: source, Template: template})
	if m.ResolveErr != nil {
		return "", m.ResolveErr
	}
	if m.ResolvedPath != "" {
		return m.ResolvedPath, nil
	}
	return template, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadWithOptions returns the configured config or error.
func (m *MockConfigLoader) LoadWithOptions(_ domain.LoadConfigOptions) (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/test/packerctl.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/packerctl/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig() error {
	m.InitProjectCalled = true
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// LogEntry records one MockLogger call.
type LogEntry struct {
	Level    string
	Category string
	Message  string
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.log("DEBUG", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.log("INFO", category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(category, msg string) { m.log("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.log("ERROR", category, msg) }

func (m *MockLogger) log(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Message: msg})
}
