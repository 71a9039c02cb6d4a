package diffstep

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/object"

	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/internal/step"
)

// History is the part of the repository the extractor reads.
type History interface {
	FindStepCommit(number string) (*object.Commit, error)
	DiffWithParent(ctx context.Context, c *object.Commit) (string, error)
}

// StepDiff is the subject and unified diff of a step commit.
type StepDiff struct {
	Subject string
	Diff    string
}

// FetchStepDiff locates the most recent commit of the given step and returns
// its diff against its parent. A missing step yields a StepNotFoundError.
func FetchStepDiff(ctx context.Context, h History, number string) (StepDiff, error) {
	if !step.IsNumber(number) {
		return StepDiff{}, errors.NewInvalidStepError(number)
	}

	commit, err := h.FindStepCommit(number)
	if err != nil {
		return StepDiff{}, err
	}

	diff, err := h.DiffWithParent(ctx, commit)
	if err != nil {
		return StepDiff{}, fmt.Errorf("failed to diff step %s: %w", number, err)
	}
	return StepDiff{Subject: git.Subject(commit), Diff: diff}, nil
}

// NotFoundMarker is rendered in place of a step that does not exist.
func NotFoundMarker(number string) string {
	return "STEP " + number + " NOT FOUND!"
}

// RenderStep renders the heading and annotated diff of a step. A missing
// step renders as NotFoundMarker so a broken reference never aborts manual
// generation in the middle of a rebase.
func RenderStep(ctx context.Context, h History, r *Renderer, number string) (string, error) {
	sd, err := FetchStepDiff(ctx, h, number)
	if errors.IsStepNotFound(err) {
		return NotFoundMarker(number), nil
	}
	if err != nil {
		return "", err
	}

	body, err := r.Render(sd.Diff)
	if err != nil {
		return "", err
	}
	return "#### " + sd.Subject + "\n\n" + body, nil
}
