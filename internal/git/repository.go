package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Repository wraps a go-git repository together with a git CLI runner
// rooted at its worktree.
type Repository struct {
	*gogit.Repository
	root   string
	gitDir string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing path
func OpenRepository(ctx context.Context, path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	runner := NewCommandRunner(root)
	// rebase-merge, hooks and stepwise state live in the per-worktree git dir
	gitDir, err := runner.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to locate git directory: %w", err)
	}

	return &Repository{
		Repository: repo,
		root:       root,
		gitDir:     gitDir,
		runner:     runner,
	}, nil
}

// OpenCurrentRepository opens the repository containing the working directory
func OpenCurrentRepository(ctx context.Context) (*Repository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return OpenRepository(ctx, wd)
}

// Root returns the worktree root
func (r *Repository) Root() string {
	return r.root
}

// GitDir returns the absolute git directory
func (r *Repository) GitDir() string {
	return r.gitDir
}

// HooksDir returns the directory git reads hooks from, honoring core.hooksPath.
func (r *Repository) HooksDir(ctx context.Context) (string, error) {
	dir, err := r.runner.Run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.root, dir)
	}
	return dir, nil
}
