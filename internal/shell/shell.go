// Package shell wraps the filesystem and subprocess primitives the rest of
// the system treats as collaborators: shallow file discovery, directory
// management, and blocking command execution.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FSError reports a failed filesystem operation.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error {
	return e.Err
}

// ExecError reports a subprocess that could not be started or exited
// non-zero.
type ExecError struct {
	Cmd  string
	Code int
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Mkdir creates path and any missing parents.
func Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &FSError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// Rmrf removes path and everything below it. A missing path is not an
// error.
func Rmrf(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return &FSError{Op: "rm", Path: path, Err: err}
	}
	return nil
}

// Exec runs a command to completion, inheriting stdio. It blocks until the
// process exits; a non-zero exit is returned as an ExecError and never
// retried.
func Exec(ctx context.Context, name string, args ...string) error {
	return ExecEnv(ctx, nil, name, args...)
}

// ExecEnv is Exec with extra environment entries appended to the child's
// environment. The parent environment is never mutated.
func ExecEnv(ctx context.Context, extraEnv []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ExecError{
			Cmd:  strings.Join(append([]string{name}, args...), " "),
			Code: code,
			Err:  err,
		}
	}
	return nil
}
