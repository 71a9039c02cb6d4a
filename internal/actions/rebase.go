package actions

import (
	"fmt"
	"strings"

	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/internal/output"
	"stepwise.dev/stepwise/internal/runtime"
	"stepwise.dev/stepwise/internal/step"
	"stepwise.dev/stepwise/internal/storage"
)

// RewordHelperOptions contains options for the rebase reword helper
type RewordHelperOptions struct {
	// Message replaces the step text. A full step subject is used as is.
	Message string
}

// RewordHelperAction gives HEAD the step number it must carry after the step
// commit before it, optionally replacing its text. It runs from exec lines in
// the middle of a rebase.
func RewordHelperAction(ctx *runtime.Context, opts RewordHelperOptions) error {
	head, err := ctx.Repo.HeadCommit()
	if err != nil {
		return err
	}
	subject := git.Subject(head)
	current := step.Parse(subject)
	message := strings.TrimSpace(opts.Message)

	if current == nil && message == "" {
		ctx.Splog.Debug("reword: %q is not a step, leaving it alone", subject)
		return nil
	}

	var next step.Descriptor
	if given := step.Parse(message); given != nil {
		next = *given
	} else {
		prev, err := ctx.Repo.PreviousStep(head)
		if err != nil {
			return err
		}
		// A plain commit given a step text joins the open group as a sub-step
		super := current != nil && current.IsSuper()
		next = step.Next(prev, super)
		next.Message = message
		if message == "" {
			next.Message = current.Message
		}
	}

	if err := ctx.Store.Set(storage.KeyHookStep, next.Number()); err != nil {
		return err
	}

	newSubject := next.Subject()
	if newSubject == subject {
		return nil
	}

	if err := ctx.Repo.Amend(ctx, git.AmendOptions{Message: replaceSubject(head.Message, newSubject)}); err != nil {
		return fmt.Errorf("failed to reword %q: %w", subject, err)
	}
	ctx.Splog.Debug("reword: %q -> %q", subject, newSubject)
	return nil
}

// SuperPickOptions contains options for the rebase super-pick helper
type SuperPickOptions struct {
	Hash string
}

// SuperPickAction applies a super-step commit on top of HEAD. When the step
// is about to be renumbered, its manual template and view are renamed to the
// new number in the same commit.
func SuperPickAction(ctx *runtime.Context, opts SuperPickOptions) error {
	if err := ctx.Repo.CherryPick(ctx, opts.Hash); err != nil {
		return fmt.Errorf("failed to pick %s: %w", opts.Hash, err)
	}

	head, err := ctx.Repo.HeadCommit()
	if err != nil {
		return err
	}
	current := step.ParseSuper(git.Subject(head))
	if current == nil {
		return nil
	}

	prev, err := ctx.Repo.PreviousStep(head)
	if err != nil {
		return err
	}
	next := step.Renumber(*current, prev)
	if next.Number() == current.Number() {
		return nil
	}

	manuals := ctx.ManualRenderer()
	moved := false
	for _, paths := range [][2]string{
		{manuals.TemplatePath(current.Number()), manuals.TemplatePath(next.Number())},
		{manuals.ViewPath(current.Number()), manuals.ViewPath(next.Number())},
	} {
		if !ctx.Repo.IsTracked(ctx, paths[0]) {
			continue
		}
		if err := ctx.Repo.Move(ctx, paths[0], paths[1]); err != nil {
			return err
		}
		moved = true
	}
	if !moved {
		return nil
	}

	ctx.Splog.Info("Moved the manual of %s to %s.", output.Step(current.Number()), output.Step(next.Number()))
	return ctx.Repo.Amend(ctx, git.AmendOptions{NoVerify: true})
}

// replaceSubject swaps the first line of a commit message, keeping the body
func replaceSubject(message, subject string) string {
	_, body, found := strings.Cut(message, "\n")
	if !found || strings.TrimSpace(body) == "" {
		return subject
	}
	return subject + "\n" + body
}
