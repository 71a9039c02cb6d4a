package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// EmptyTreeHash is the hash of the empty tree, used as the parent of root commits
const EmptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// DiffWithParent returns the unified diff a commit introduces on top of its
// first parent. Root commits are diffed against the empty tree.
func (r *Repository) DiffWithParent(ctx context.Context, c *object.Commit) (string, error) {
	base := EmptyTreeHash
	if c.NumParents() > 0 {
		base = c.ParentHashes[0].String()
	}
	return r.runner.RunRaw(ctx, "diff", "--no-color", "--no-ext-diff",
		"--src-prefix=a/", "--dst-prefix=b/", base, c.Hash.String())
}
