package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrPackerNotFound      = errors.New("packer executable not found")
	ErrConfigExists        = errors.New("config file already exists")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ExecutionError reports a packer child process that ran and exited with a
// non-zero status. Stderr holds the captured standard-error text when the
// operation captured output; it is empty for operations that inherit the
// caller's stdio, in which case Error synthesizes an exit-code message.
type ExecutionError struct {
	Stderr   string
	ExitCode int
}

// Error returns the captured stderr text, or a synthesized exit-code message
// when no stderr was captured.
func (e *ExecutionError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("packer command failed with exit code %d", e.ExitCode)
}

// ConfigError reports an invalid option, flag, or manifest combination.
// The packer facade itself never raises it; validation layers do.
type ConfigError struct {
	Msg string
}

// Error returns the validation message.
func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Msg
}

// NewConfigError builds a *ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
