package repository

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// runGit executes a git command, capturing its combined output. If dir
// is non-empty the command runs against that repository via -C.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}

	logrus.Debugf("Running git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s (exit status %d): %s",
			args[0], exitStatus(err), strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}

// exitStatus extracts the exit status from an exec error, -1 when the
// process did not run or was killed.
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func gitClone(ctx context.Context, url, dest string) error {
	_, err := runGit(ctx, "", "clone", url, dest)
	return err
}

// gitIsDirty reports whether the working tree at dir has staged or
// unstaged differences against its last commit. Untracked files do not
// count as dirty.
func gitIsDirty(ctx context.Context, dir string) (bool, error) {
	for _, args := range [][]string{
		{"diff", "--quiet"},
		{"diff", "--cached", "--quiet"},
	} {
		cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
		if err := cmd.Run(); err != nil {
			// Exit status 1 means differences were found; anything
			// else is a real failure.
			if exitStatus(err) == 1 {
				return true, nil
			}
			return false, fmt.Errorf("git %s failed in %s: %w", strings.Join(args, " "), dir, err)
		}
	}

	return false, nil
}

func gitPullFFOnly(ctx context.Context, dir string) error {
	_, err := runGit(ctx, dir, "pull", "--ff-only")
	return err
}
