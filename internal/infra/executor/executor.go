// Package executor provides command execution functionality.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/kazedev/packerctl/internal/domain"
)

// Client implements domain.CommandExecutor using os/exec.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Run spawns the command with the caller's stdin/stdout/stderr attached and
// blocks until it exits. A non-zero exit is reported via ExitCode with a
// nil error; the error is non-nil only when the process could not run.
func (c *Client) Run(ctx context.Context, cmd domain.ExecCommand) (domain.ExecResult, error) {
	// #nosec G204 - cmd.Program and cmd.Args come from trusted callers
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	return translate(domain.ExecResult{}, execCmd.Run())
}

// Output spawns the command with stdout and stderr captured and blocks
// until it exits. Stream contents are returned raw; decoding is left to the
// caller.
func (c *Client) Output(ctx context.Context, cmd domain.ExecCommand) (domain.ExecResult, error) {
	// #nosec G204 - cmd.Program and cmd.Args come from trusted callers
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	res, err := translate(domain.ExecResult{}, execCmd.Run())
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	return res, err
}

// translate folds a non-zero exit into the result and passes every other
// failure through as a spawn/I-O error.
func translate(res domain.ExecResult, err error) (domain.ExecResult, error) {
	if err == nil {
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}
