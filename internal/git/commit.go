package git

import (
	"context"
)

// AmendOptions contains options for amending HEAD
type AmendOptions struct {
	// Message replaces the commit message when set
	Message string
	// NoVerify skips the pre-commit and commit-msg hooks
	NoVerify bool
}

// Amend amends HEAD without opening an editor
func (r *Repository) Amend(ctx context.Context, opts AmendOptions) error {
	args := []string{"commit", "--amend", "--allow-empty"}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	} else {
		args = append(args, "--no-edit")
	}
	_, err := r.runner.RunWithEnv(ctx, []string{"GIT_EDITOR=true"}, args...)
	return err
}

// CherryPick applies a commit on top of HEAD, keeping it even when it turns
// out empty
func (r *Repository) CherryPick(ctx context.Context, hash string) error {
	_, err := r.runner.RunWithEnv(ctx, []string{"GIT_EDITOR=true"},
		"cherry-pick", "--allow-empty", "--keep-redundant-commits", hash)
	return err
}

// Add stages every change under the given paths, deletions included
func (r *Repository) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

// Move renames a tracked path
func (r *Repository) Move(ctx context.Context, from, to string) error {
	_, err := r.runner.Run(ctx, "mv", from, to)
	return err
}

// IsTracked reports whether path is tracked in the index
func (r *Repository) IsTracked(ctx context.Context, path string) bool {
	_, err := r.runner.Run(ctx, "ls-files", "--error-unmatch", "--", path)
	return err == nil
}
