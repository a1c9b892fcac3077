// Package packer wraps a packer binary behind typed operations.
package packer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kazedev/packerctl/internal/domain"
)

// Client invokes a resolved packer executable. The executable path is fixed
// at construction; WithWorkingDir only changes where the child runs.
type Client struct {
	executor   domain.CommandExecutor
	executable string
	workingDir string
}

// NewClient resolves the packer executable in the current directory.
func NewClient(executor domain.CommandExecutor) (*Client, error) {
	return NewClientIn(".", executor)
}

// NewClientIn resolves the packer executable in the given directory. The
// path is made absolute so later working-directory overrides never change
// which binary runs.
func NewClientIn(dir string, executor domain.CommandExecutor) (*Client, error) {
	path := filepath.Join(dir, domain.ExecutableName())
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve packer path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", abs, domain.ErrPackerNotFound)
		}
		return nil, fmt.Errorf("stat packer executable: %w", err)
	}
	return &Client{executor: executor, executable: abs}, nil
}

// Ensure Client implements domain.Packer interface.
var _ domain.Packer = (*Client)(nil)

// WithWorkingDir returns a copy of the client that runs packer in dir.
// Repeated calls replace the directory rather than nesting.
func (c *Client) WithWorkingDir(dir string) domain.Packer {
	clone := *c
	clone.workingDir = dir
	return &clone
}

// ExecutablePath returns the absolute path of the wrapped binary.
func (c *Client) ExecutablePath() string {
	return c.executable
}

// Build runs "packer build" for the template with the given options.
// The child's stdio is inherited, so build output streams to the terminal.
func (c *Client) Build(ctx context.Context, template string, opts domain.BuildOptions) error {
	return c.run(ctx, buildArgs(template, opts)...)
}

// Init runs "packer init" for the template.
func (c *Client) Init(ctx context.Context, template string) error {
	return c.run(ctx, "init", template)
}

// Validate runs "packer validate" for the template.
func (c *Client) Validate(ctx context.Context, template string) error {
	return c.run(ctx, "validate", template)
}

// Console starts an interactive "packer console" session for the template.
func (c *Client) Console(ctx context.Context, template string) error {
	return c.run(ctx, "console", template)
}

// PluginInstall runs "packer plugin install" for the named plugin.
func (c *Client) PluginInstall(ctx context.Context, name string) error {
	return c.run(ctx, "plugin", "install", name)
}

// PluginRemove runs "packer plugin remove" for the named plugin.
func (c *Client) PluginRemove(ctx context.Context, name string) error {
	return c.run(ctx, "plugin", "remove", name)
}

// Inspect returns the output of "packer inspect" for the template.
func (c *Client) Inspect(ctx context.Context, template string) (string, error) {
	return c.output(ctx, "inspect", template)
}

// Fix returns the template rewritten by "packer fix".
func (c *Client) Fix(ctx context.Context, template string) (string, error) {
	return c.output(ctx, "fix", template)
}

// HCL2Upgrade returns the output of "packer hcl2_upgrade" for the template.
func (c *Client) HCL2Upgrade(ctx context.Context, template string) (string, error) {
	return c.output(ctx, "hcl2_upgrade", template)
}

// PluginList returns the output of "packer plugin list".
func (c *Client) PluginList(ctx context.Context) (string, error) {
	return c.output(ctx, "plugin", "list")
}

// Version returns the output of "packer version".
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.output(ctx, "version")
}

// run executes packer with inherited stdio and maps a non-zero exit to an
// ExecutionError. The child's own output already went to the terminal, so
// the error carries only the exit code.
func (c *Client) run(ctx context.Context, args ...string) error {
	res, err := c.executor.Run(ctx, c.command(args))
	if err != nil {
		return fmt.Errorf("run packer: %w", err)
	}
	if res.ExitCode != 0 {
		return &domain.ExecutionError{ExitCode: res.ExitCode}
	}
	return nil
}

// output executes packer with captured stdio and returns stdout decoded as
// lossy UTF-8. A non-zero exit yields an ExecutionError carrying stderr.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	res, err := c.executor.Output(ctx, c.command(args))
	if err != nil {
		return "", fmt.Errorf("run packer: %w", err)
	}
	if res.ExitCode != 0 {
		return "", &domain.ExecutionError{Stderr: lossyString(res.Stderr), ExitCode: res.ExitCode}
	}
	return lossyString(res.Stdout), nil
}

func (c *Client) command(args []string) domain.ExecCommand {
	return domain.ExecCommand{Program: c.executable, Dir: c.workingDir, Args: args}
}

// buildArgs renders build options into argv. Token order is fixed so that
// identical options always produce identical invocations.
func buildArgs(template string, opts domain.BuildOptions) []string {
	args := []string{"build"}
	if opts.Debug {
		args = append(args, "-debug")
	}
	if opts.Force {
		args = append(args, "-force")
	}
	if opts.ParallelBuilds != nil {
		args = append(args, "-parallel-builds="+strconv.Itoa(*opts.ParallelBuilds))
	}
	if !opts.Color {
		args = append(args, "-color=false")
	}
	if opts.TimestampUI {
		args = append(args, "-timestamp-ui")
	}
	for _, v := range opts.Vars {
		args = append(args, "-var="+v.Key+"="+v.Value)
	}
	for _, f := range opts.VarFiles {
		args = append(args, "-var-file="+f)
	}
	return append(args, template)
}

// lossyString decodes bytes as UTF-8, replacing invalid sequences with the
// Unicode replacement character.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
