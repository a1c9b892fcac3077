package domain

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes a batch of packer builds run sequentially by
// `packerctl run`.
type Manifest struct {
	// WorkingDir is applied to every build in the manifest.
	WorkingDir string `yaml:"working_dir,omitempty"`

	// ContinueOnError keeps the run going after a failed build instead of
	// stopping at the first failure.
	ContinueOnError bool `yaml:"continue_on_error,omitempty"`

	Builds []ManifestBuild `yaml:"builds"`
}

// ManifestBuild is a single build entry. Vars hold ordered "key=value"
// strings; duplicate keys are passed through to packer unchanged.
type ManifestBuild struct {
	Name           string   `yaml:"name"`
	Template       string   `yaml:"template"`
	Source         string   `yaml:"source,omitempty"` // optional git template source
	ParallelBuilds *int     `yaml:"parallel_builds,omitempty"`
	Color          *bool    `yaml:"color,omitempty"` // omitted means true
	Vars           []string `yaml:"vars,omitempty"`
	VarFiles       []string `yaml:"var_files,omitempty"`
	Debug          bool     `yaml:"debug,omitempty"`
	Force          bool     `yaml:"force,omitempty"`
	TimestampUI    bool     `yaml:"timestamp_ui,omitempty"`
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, NewConfigError("parse manifest: %v", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems. All failures are
// *ConfigError.
func (m *Manifest) Validate() error {
	if len(m.Builds) == 0 {
		return NewConfigError("manifest contains no builds")
	}
	for i, b := range m.Builds {
		if b.Name == "" {
			return NewConfigError("build %d: name is required", i+1)
		}
		if b.Template == "" {
			return NewConfigError("build %q: template is required", b.Name)
		}
		for _, v := range b.Vars {
			if _, err := ParseVar(v); err != nil {
				var cfgErr *ConfigError
				if errors.As(err, &cfgErr) {
					return NewConfigError("build %q: %s", b.Name, cfgErr.Msg)
				}
				return err
			}
		}
	}
	return nil
}

// Options converts the entry into a fully-defaulted BuildOptions value.
func (b *ManifestBuild) Options() (BuildOptions, error) {
	var opts []BuildOption
	if b.Debug {
		opts = append(opts, WithDebug())
	}
	if b.Force {
		opts = append(opts, WithForce())
	}
	if b.TimestampUI {
		opts = append(opts, WithTimestampUI())
	}
	if b.Color != nil {
		opts = append(opts, WithColor(*b.Color))
	}
	if b.ParallelBuilds != nil {
		opts = append(opts, WithParallelBuilds(*b.ParallelBuilds))
	}
	for _, raw := range b.Vars {
		v, err := ParseVar(raw)
		if err != nil {
			return BuildOptions{}, err
		}
		opts = append(opts, WithVar(v.Key, v.Value))
	}
	opts = append(opts, WithVarFiles(b.VarFiles))
	return NewBuildOptions(opts...), nil
}

// ParseVar splits a "key=value" variable override. The value may contain
// further "=" characters; the key may not be empty.
func ParseVar(s string) (Var, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return Var{}, NewConfigError("variable %q is not in key=value form", s)
	}
	return Var{Key: key, Value: value}, nil
}
