package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/taskboard/internal/output"
)

// Run executes a git command in the current directory and returns trimmed
// stdout.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext is Run with a context.
func RunContext(ctx context.Context, args ...string) (string, error) {
	return RunIn(ctx, "", args...)
}

// RunIn executes a git command in dir ("" means the current directory).
func RunIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RepoRoot returns the top level of the repository containing the current
// directory.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// CurrentBranch returns the branch checked out in dir.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	branch, err := RunIn(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}
