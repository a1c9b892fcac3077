// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/infra/config"
	"github.com/kazedev/packerctl/internal/infra/executor"
	"github.com/kazedev/packerctl/internal/infra/install"
	"github.com/kazedev/packerctl/internal/infra/logging"
	"github.com/kazedev/packerctl/internal/infra/packer"
	"github.com/kazedev/packerctl/internal/infra/templates"
	"github.com/kazedev/packerctl/internal/usecase"
)

// Config holds the application directory layout.
type Config struct {
	WorkDir    string // Directory packerctl was invoked from
	InstallDir string // Directory holding the packer binary
	CacheDir   string // Checkout cache for git template sources
}

// newConfig derives the directory layout from the invocation directory and
// the loaded configuration.
func newConfig(dir string, appConfig *domain.Config) Config {
	installDir := appConfig.Packer.InstallDir
	if installDir == "" {
		installDir = "."
	}
	if !filepath.IsAbs(installDir) {
		installDir = filepath.Join(dir, installDir)
	}

	cacheDir := appConfig.Templates.CacheDir
	if cacheDir == "" {
		cacheDir = defaultCacheDir()
	}

	return Config{
		WorkDir:    dir,
		InstallDir: installDir,
		CacheDir:   cacheDir,
	}
}

// defaultCacheDir returns the default template checkout cache directory.
func defaultCacheDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return domain.TemplateCacheDir(".cache")
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return domain.TemplateCacheDir(cacheHome)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Executor      domain.CommandExecutor
	Installer     domain.BinaryInstaller
	Templates     domain.TemplateSource
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Clock         domain.Clock
	Logger        domain.Logger

	// Loaded application configuration (defaults when no file exists)
	AppConfig *domain.Config

	// Configuration
	Config Config
}

// New creates a new Container rooted at the given directory.
func New(dir string) (*Container, error) {
	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// A broken config file must not brick the CLI; `config show`
		// surfaces the parse error.
		appConfig = domain.NewDefaultConfig()
	}

	cfg := newConfig(dir, appConfig)
	exec := executor.NewClient()

	return &Container{
		Executor:      exec,
		Installer:     install.New(cfg.InstallDir, exec),
		Templates:     templates.NewResolver(cfg.CacheDir),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Clock:         domain.RealClock{},
		Logger:        logging.New(appConfig.Log.File, logging.ParseLevel(appConfig.Log.Level)),
		AppConfig:     appConfig,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	cfg Config,
	appConfig *domain.Config,
	exec domain.CommandExecutor,
	installer domain.BinaryInstaller,
	tmpl domain.TemplateSource,
	loader domain.ConfigLoader,
	manager domain.ConfigManager,
	clock domain.Clock,
	logger domain.Logger,
) *Container {
	return &Container{
		Executor:      exec,
		Installer:     installer,
		Templates:     tmpl,
		ConfigLoader:  loader,
		ConfigManager: manager,
		Clock:         clock,
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
	}
}

// Packer resolves the packer facade against the install directory. When the
// binary is missing and auto_install is configured, it is installed first.
// The configured working_dir override is applied to the returned facade.
func (c *Container) Packer(ctx context.Context) (domain.Packer, error) {
	client, err := packer.NewClientIn(c.Config.InstallDir, c.Executor)
	if err != nil && errors.Is(err, domain.ErrPackerNotFound) && c.AppConfig.Packer.AutoInstall {
		c.Logger.Info("install", fmt.Sprintf("packer missing, auto-installing %s", c.AppConfig.Packer.Version))
		if installErr := c.Installer.Install(ctx, c.AppConfig.Packer.Version); installErr != nil {
			return nil, fmt.Errorf("auto-install packer: %w", installErr)
		}
		client, err = packer.NewClientIn(c.Config.InstallDir, c.Executor)
	}
	if err != nil {
		return nil, err
	}
	if c.AppConfig.Packer.WorkingDir != "" {
		return client.WithWorkingDir(c.AppConfig.Packer.WorkingDir), nil
	}
	return client, nil
}

// UseCase factory methods

// InstallPackerUseCase returns a new InstallPacker use case.
func (c *Container) InstallPackerUseCase() *usecase.InstallPacker {
	return usecase.NewInstallPacker(c.Installer, c.Logger)
}

// RunBuildUseCase returns a new RunBuild use case bound to the resolved
// packer facade.
func (c *Container) RunBuildUseCase(ctx context.Context) (*usecase.RunBuild, error) {
	p, err := c.Packer(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewRunBuild(p, c.Templates, c.Clock, c.Logger), nil
}

// RunManifestUseCase returns a new RunManifest use case bound to the
// resolved packer facade.
func (c *Container) RunManifestUseCase(ctx context.Context) (*usecase.RunManifest, error) {
	p, err := c.Packer(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewRunManifest(p, c.Templates, c.Clock, c.Logger), nil
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}
