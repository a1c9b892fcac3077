package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
working_dir: ./images
continue_on_error: true
builds:
  - name: base
    template: base.pkr.hcl
    source: https://github.com/acme/images@v2
    parallel_builds: 2
    color: false
    debug: true
    force: true
    timestamp_ui: true
    vars:
      - env=prod
      - region=us-east-1
    var_files:
      - base.pkrvars.hcl
  - name: app
    template: app.pkr.hcl
`)

	m, err := ParseManifest(data)

	require.NoError(t, err)
	assert.Equal(t, "./images", m.WorkingDir)
	assert.True(t, m.ContinueOnError)
	require.Len(t, m.Builds, 2)

	base := m.Builds[0]
	assert.Equal(t, "base", base.Name)
	assert.Equal(t, "base.pkr.hcl", base.Template)
	assert.Equal(t, "https://github.com/acme/images@v2", base.Source)
	require.NotNil(t, base.ParallelBuilds)
	assert.Equal(t, 2, *base.ParallelBuilds)
	require.NotNil(t, base.Color)
	assert.False(t, *base.Color)
	assert.Equal(t, []string{"env=prod", "region=us-east-1"}, base.Vars)
	assert.Equal(t, []string{"base.pkrvars.hcl"}, base.VarFiles)

	app := m.Builds[1]
	assert.Equal(t, "app", app.Name)
	assert.Nil(t, app.Color)
	assert.Nil(t, app.ParallelBuilds)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{
			name:    "not yaml",
			data:    "builds: [",
			wantMsg: "parse manifest",
		},
		{
			name:    "no builds",
			data:    "builds: []",
			wantMsg: "manifest contains no builds",
		},
		{
			name:    "missing name",
			data:    "builds:\n  - template: t.pkr.hcl",
			wantMsg: "name is required",
		},
		{
			name:    "missing template",
			data:    "builds:\n  - name: base",
			wantMsg: `build "base": template is required`,
		},
		{
			name:    "malformed var",
			data:    "builds:\n  - name: base\n    template: t.pkr.hcl\n    vars:\n      - noequals",
			wantMsg: "not in key=value form",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))

			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestManifestBuild_Options(t *testing.T) {
	two := 2
	off := false
	b := ManifestBuild{
		Name:           "base",
		Template:       "base.pkr.hcl",
		ParallelBuilds: &two,
		Color:          &off,
		Vars:           []string{"env=prod", "env=stage"},
		VarFiles:       []string{"f1", "f2"},
		Debug:          true,
		Force:          true,
		TimestampUI:    true,
	}

	opts, err := b.Options()

	require.NoError(t, err)
	assert.True(t, opts.Debug)
	assert.True(t, opts.Force)
	assert.True(t, opts.TimestampUI)
	assert.False(t, opts.Color)
	require.NotNil(t, opts.ParallelBuilds)
	assert.Equal(t, 2, *opts.ParallelBuilds)
	assert.Equal(t, []Var{{Key: "env", Value: "prod"}, {Key: "env", Value: "stage"}}, opts.Vars)
	assert.Equal(t, []string{"f1", "f2"}, opts.VarFiles)
}

func TestManifestBuild_Options_ColorDefaultsTrue(t *testing.T) {
	b := ManifestBuild{Name: "base", Template: "base.pkr.hcl"}

	opts, err := b.Options()

	require.NoError(t, err)
	assert.True(t, opts.Color)
	assert.Equal(t, DefaultBuildOptions(), opts)
}

func TestParseVar(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Var
		wantErr bool
	}{
		{"simple", "env=prod", Var{Key: "env", Value: "prod"}, false},
		{"value contains equals", "flag=a=b", Var{Key: "flag", Value: "a=b"}, false},
		{"empty value", "env=", Var{Key: "env", Value: ""}, false},
		{"no equals", "noequals", Var{}, true},
		{"empty key", "=value", Var{}, true},
		{"empty string", "", Var{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVar(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
