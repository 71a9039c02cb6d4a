package git

import (
	"fmt"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/step"
)

// Subject returns the first line of a commit message
func Subject(c *object.Commit) string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ResolveCommit resolves a revision such as HEAD, HEAD~1 or a hash
func (r *Repository) ResolveCommit(rev string) (*object.Commit, error) {
	hash, err := r.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	commit, err := r.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", rev, err)
	}
	return commit, nil
}

// HeadCommit returns the commit HEAD points to
func (r *Repository) HeadCommit() (*object.Commit, error) {
	return r.ResolveCommit("HEAD")
}

// ParentCommit returns the first parent of c, or nil for a root commit
func (r *Repository) ParentCommit(c *object.Commit) (*object.Commit, error) {
	if c.NumParents() == 0 {
		return nil, nil
	}
	parent, err := c.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read parent of %s: %w", c.Hash, err)
	}
	return parent, nil
}

// FindStepCommit returns the most recent commit reachable from HEAD whose
// subject is "Step <number>: ...".
func (r *Repository) FindStepCommit(number string) (*object.Commit, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	iter, err := r.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	pattern := regexp.MustCompile(`^Step ` + regexp.QuoteMeta(number) + `:`)
	var found *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if pattern.MatchString(Subject(c)) {
			found = c
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	if found == nil {
		return nil, errors.NewStepNotFoundError(number)
	}
	return found, nil
}

// StepCommit is a step commit found in history
type StepCommit struct {
	Hash    string
	Subject string
	Step    step.Descriptor
}

// StepCommits returns the step commits reachable from rev, newest first.
// Non-step commits are skipped.
func (r *Repository) StepCommits(rev string) ([]StepCommit, error) {
	from, err := r.ResolveCommit(rev)
	if err != nil {
		return nil, err
	}

	iter, err := r.Log(&gogit.LogOptions{From: from.Hash})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	var steps []StepCommit
	err = iter.ForEach(func(c *object.Commit) error {
		subject := Subject(c)
		if d := step.Parse(subject); d != nil {
			steps = append(steps, StepCommit{Hash: c.Hash.String(), Subject: subject, Step: *d})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	return steps, nil
}

// PreviousStep returns the descriptor of the most recent step commit strictly
// before c, or nil when no step commit precedes it.
func (r *Repository) PreviousStep(c *object.Commit) (*step.Descriptor, error) {
	parent, err := r.ParentCommit(c)
	if err != nil || parent == nil {
		return nil, err
	}
	steps, err := r.StepCommits(parent.Hash.String())
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, nil
	}
	prev := steps[0].Step
	return &prev, nil
}
