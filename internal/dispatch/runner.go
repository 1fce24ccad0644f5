package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// Command is one child process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Output is what a child process printed.
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes commands. A missing binary must be reported as
// ErrToolNotInstalled; any other failure returns the captured output along
// with the error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands with os/exec and no timeout.
type ExecRunner struct {
	// Env is the child environment; nil inherits the current process's.
	Env []string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = r.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		// *exec.Error covers a failed PATH lookup; ErrNotExist covers a
		// binary configured as a path that does not exist.
		var execErr *exec.Error
		if errors.As(err, &execErr) || (cmd.Process == nil && errors.Is(err, fs.ErrNotExist)) {
			return out, fmt.Errorf("%w: %s", ErrToolNotInstalled, c.Name)
		}
		return out, err
	}
	return out, nil
}
