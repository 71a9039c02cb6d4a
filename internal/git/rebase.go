package git

import (
	"context"
	"os"
	"path/filepath"
)

// IsRebaseInProgress checks if a rebase is currently in progress
func (r *Repository) IsRebaseInProgress() bool {
	// Check for .git/rebase-merge or .git/rebase-apply directories
	// This is more reliable than checking REBASE_HEAD which can persist after rebase
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(r.gitDir, dir)); err == nil {
			return true
		}
	}
	return false
}

// InteractiveRebaseOptions configures an interactive rebase
type InteractiveRebaseOptions struct {
	// Base is the revision to rebase onto. Empty rebases from the root commit.
	Base string
	// SequenceEditor replaces the todo editor, e.g. "stepwise editor edit".
	SequenceEditor string
}

// InteractiveRebase starts `git rebase -i` attached to the terminal. git
// stops for edits and conflicts; the rebase then continues in the user's
// shell, so returning without error does not mean the rebase finished.
func (r *Repository) InteractiveRebase(ctx context.Context, opts InteractiveRebaseOptions) error {
	args := []string{"rebase", "-i"}
	if opts.Base == "" {
		args = append(args, "--root")
	} else {
		args = append(args, opts.Base)
	}

	env := []string{}
	if opts.SequenceEditor != "" {
		env = append(env, "GIT_SEQUENCE_EDITOR="+opts.SequenceEditor)
	}
	return r.runner.RunAttached(ctx, env, args...)
}
