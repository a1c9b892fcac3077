package domain

// ExecCommand represents an external command to be executed.
// It is consumed immediately by the executor and never persisted.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// ExecResult holds the exit status and captured streams of a finished child
// process. Stdout and Stderr are nil for invocations that inherit the
// caller's stdio.
type ExecResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}
