package domain

// Var is a single key/value variable override passed to packer build.
// Duplicate keys are allowed and passed through in order; packer's own
// precedence rules decide which value wins.
type Var struct {
	Key   string
	Value string
}

// BuildOptions describes the flags and variables for a packer build
// invocation. The zero value is not a valid default (Color defaults to
// true); construct values with NewBuildOptions or DefaultBuildOptions.
type BuildOptions struct {
	ParallelBuilds *int     // nil means no cap
	Vars           []Var    // ordered, duplicates preserved
	VarFiles       []string // ordered
	Debug          bool
	Force          bool
	TimestampUI    bool
	Color          bool // defaults to true
}

// DefaultBuildOptions returns the documented defaults: all flags off,
// color on, no parallelism cap, empty variable lists.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Color: true}
}

// BuildOption mutates a BuildOptions value under construction.
type BuildOption func(*BuildOptions)

// NewBuildOptions produces a fully-populated options value, starting from
// the defaults and applying the given options in order. Each call returns a
// fresh value; option funcs copy caller-supplied slices, so values produced
// earlier are never mutated.
func NewBuildOptions(opts ...BuildOption) BuildOptions {
	o := DefaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithParallelBuilds caps the number of builds packer runs concurrently.
func WithParallelBuilds(n int) BuildOption {
	return func(o *BuildOptions) {
		o.ParallelBuilds = &n
	}
}

// WithDebug enables packer's single-step debug mode.
func WithDebug() BuildOption {
	return func(o *BuildOptions) {
		o.Debug = true
	}
}

// WithForce forces a build to continue even when artifacts exist.
func WithForce() BuildOption {
	return func(o *BuildOptions) {
		o.Force = true
	}
}

// WithTimestampUI prefixes packer's UI output with timestamps.
func WithTimestampUI() BuildOption {
	return func(o *BuildOptions) {
		o.TimestampUI = true
	}
}

// WithColor enables or disables colored packer output.
func WithColor(enabled bool) BuildOption {
	return func(o *BuildOptions) {
		o.Color = enabled
	}
}

// WithVar appends a single key/value variable override.
func WithVar(key, value string) BuildOption {
	return func(o *BuildOptions) {
		o.Vars = append(o.Vars, Var{Key: key, Value: value})
	}
}

// WithVars appends variable overrides in the given order. The slice is
// copied so the caller may reuse it.
func WithVars(vars []Var) BuildOption {
	return func(o *BuildOptions) {
		o.Vars = append(o.Vars, vars...)
	}
}

// WithVarFile appends a variable-file path.
func WithVarFile(path string) BuildOption {
	return func(o *BuildOptions) {
		o.VarFiles = append(o.VarFiles, path)
	}
}

// WithVarFiles appends variable-file paths in the given order. The slice is
// copied so the caller may reuse it.
func WithVarFiles(paths []string) BuildOption {
	return func(o *BuildOptions) {
		o.VarFiles = append(o.VarFiles, paths...)
	}
}
