package domain

import (
	"path/filepath"
	"runtime"
)

const (
	// DefaultPackerVersion is the packer release installed when the
	// configuration pins no other version.
	DefaultPackerVersion = "1.7.8"

	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.toml"

	// ProjectConfigName is the name of the per-project configuration file,
	// looked up in the working directory.
	ProjectConfigName = "packerctl.toml"
)

// ExecutableName returns the platform-appropriate packer binary name.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "packer.exe"
	}
	return "packer"
}

// GlobalConfigDir returns the packerctl config directory under the given
// config home (typically $XDG_CONFIG_HOME or ~/.config).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "packerctl")
}

// TemplateCacheDir returns the template checkout cache under the given
// cache home (typically $XDG_CACHE_HOME or ~/.cache).
func TemplateCacheDir(cacheHome string) string {
	return filepath.Join(cacheHome, "packerctl", "templates")
}
