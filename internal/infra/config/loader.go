// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/kazedev/packerctl/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Directory holding the project config (usually the cwd)
	globalConfDir string // Path to global config directory (e.g., ~/.config/packerctl)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (global + project).
// Project config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions returns the merged configuration with options to ignore
// sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	var global, project *domain.Config
	var err error

	if !opts.IgnoreGlobal {
		global, err = l.loadGlobal()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if !opts.IgnoreProject {
		project, err = l.loadProject()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Merge: default <- global <- project (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}
	return base, nil
}

// loadGlobal returns only the global configuration.
func (l *Loader) loadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadProject returns only the project configuration.
func (l *Loader) loadProject() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.projectDir, domain.ProjectConfigName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and
// collects warnings for unknown keys.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "packer":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "version":
						if s, ok := v.(string); ok {
							res.Packer.Version = s
						}
					case "install_dir":
						if s, ok := v.(string); ok {
							res.Packer.InstallDir = s
						}
					case "working_dir":
						if s, ok := v.(string); ok {
							res.Packer.WorkingDir = s
						}
					case "auto_install":
						if b, ok := v.(bool); ok {
							res.Packer.AutoInstall = b
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [packer]: %s", k))
					}
				}
			}
		case "templates":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "cache_dir":
						if s, ok := v.(string); ok {
							res.Templates.CacheDir = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [templates]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					case "file":
						if s, ok := v.(string); ok {
							res.Log.File = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Packer:    base.Packer,
		Templates: base.Templates,
		Log:       base.Log,
		Warnings:  append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Packer.Version != "" {
		result.Packer.Version = override.Packer.Version
	}
	if override.Packer.InstallDir != "" {
		result.Packer.InstallDir = override.Packer.InstallDir
	}
	if override.Packer.WorkingDir != "" {
		result.Packer.WorkingDir = override.Packer.WorkingDir
	}
	if override.Packer.AutoInstall {
		result.Packer.AutoInstall = override.Packer.AutoInstall
	}
	if override.Templates.CacheDir != "" {
		result.Templates.CacheDir = override.Templates.CacheDir
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}

	return result
}
