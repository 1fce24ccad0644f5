package git

import (
	"context"
)

// SafeCommit stages paths in the repository at dir and commits them with
// message. When staging leaves no difference for those paths it returns
// false without committing.
func SafeCommit(ctx context.Context, dir string, paths []string, message string) (bool, error) {
	if len(paths) == 0 {
		return false, nil
	}

	addArgs := append([]string{"add", "--"}, paths...)
	if _, err := RunIn(ctx, dir, addArgs...); err != nil {
		return false, err
	}

	diffArgs := append([]string{"diff", "--cached", "--name-only", "--"}, paths...)
	staged, err := RunIn(ctx, dir, diffArgs...)
	if err != nil {
		return false, err
	}
	if staged == "" {
		return false, nil
	}

	commitArgs := append([]string{"commit", "-m", message, "--"}, paths...)
	if _, err := RunIn(ctx, dir, commitArgs...); err != nil {
		return false, err
	}
	return true, nil
}
