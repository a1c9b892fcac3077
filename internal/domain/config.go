package domain

import (
	_ "embed"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration merged from the global
// and project files.
type Config struct {
	Packer    PackerConfig    `toml:"packer"`
	Templates TemplatesConfig `toml:"templates"`
	Log       LogConfig       `toml:"log"`
	Warnings  []string        `toml:"-"`
}

// PackerConfig holds settings for the wrapped packer binary from the
// [packer] section.
type PackerConfig struct {
	Version     string `toml:"version,omitempty"`      // pinned packer version (default 1.7.8)
	InstallDir  string `toml:"install_dir,omitempty"`  // directory holding the packer binary (default ".")
	WorkingDir  string `toml:"working_dir,omitempty"`  // working directory for spawned packer processes
	AutoInstall bool   `toml:"auto_install,omitempty"` // install the binary automatically when missing
}

// TemplatesConfig holds settings for template sources from the [templates]
// section.
type TemplatesConfig struct {
	CacheDir string `toml:"cache_dir,omitempty"` // checkout cache for git template sources
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	File  string `toml:"file,omitempty"`  // log file path; empty disables logging
}

// NewDefaultConfig returns the configuration used when no config file
// exists.
func NewDefaultConfig() *Config {
	return &Config{
		Packer: PackerConfig{
			Version:    DefaultPackerVersion,
			InstallDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigTemplate returns the commented config file template written by
// `packerctl config init`.
func ConfigTemplate() string {
	return configTemplateContent
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// LoadConfigOptions controls which sources the loader merges.
type LoadConfigOptions struct {
	IgnoreGlobal  bool
	IgnoreProject bool
}
