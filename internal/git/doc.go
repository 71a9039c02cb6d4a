// Package git provides low-level Git operations.
//
// It wraps git command execution and go-git for:
//   - Repository discovery (root, git directory, hooks directory)
//   - History queries (step commit lookup, parent resolution)
//   - Commit operations (amend, cherry-pick, move)
//   - Interactive rebases driven by stepwise as the sequence editor
//
// This package should be the only place where direct git commands are executed.
package git
