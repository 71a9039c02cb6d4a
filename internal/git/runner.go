package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"stepwise.dev/stepwise/internal/errors"
)

// DefaultCommandTimeout bounds captured git commands whose context has no deadline
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner shells out to the git binary inside a working directory
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a CommandRunner; an empty dir means the process cwd
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// Run executes git and returns its stdout without surrounding whitespace
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	out, err := r.capture(ctx, nil, args)
	return strings.TrimSpace(out), err
}

// RunRaw executes git and returns its stdout untouched. Diffs need this
// since trailing context lines may end in whitespace.
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.capture(ctx, nil, args)
}

// RunWithEnv is Run with extra KEY=VALUE environment entries
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	out, err := r.capture(ctx, env, args)
	return strings.TrimSpace(out), err
}

// RunAttached executes git with stdin, stdout and stderr connected to the
// terminal. Interactive rebases run this way so that stops for editing and
// conflicts reach the user. No timeout is applied.
func (r *CommandRunner) RunAttached(ctx context.Context, env []string, args ...string) error {
	cmd := r.command(ctx, env, args)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.NewGitCommandError("git", args, "", "", err)
	}
	return nil
}

func (r *CommandRunner) capture(ctx context.Context, env []string, args []string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, env, args)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", errors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return stdout.String(), nil
}

func (r *CommandRunner) command(ctx context.Context, env []string, args []string) *exec.Cmd {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.workingDir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd
}
