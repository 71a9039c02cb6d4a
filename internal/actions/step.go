package actions

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/go-git/go-git/v5/plumbing/object"

	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/internal/output"
	"stepwise.dev/stepwise/internal/rebase"
	"stepwise.dev/stepwise/internal/runtime"
	"stepwise.dev/stepwise/internal/step"
	"stepwise.dev/stepwise/internal/storage"
	"stepwise.dev/stepwise/internal/tui"
	"stepwise.dev/stepwise/internal/utils"
)

// EditStepOptions contains options for the step edit command
type EditStepOptions struct {
	// Step is the step number to stop at; empty means HEAD
	Step string
	// Pick asks the user to choose the step
	Pick bool
}

// EditStepAction starts an interactive rebase that stops at a step so it can
// be amended. Later steps are renumbered when the rebase continues.
func EditStepAction(ctx *runtime.Context, opts EditStepOptions) error {
	number := opts.Step
	if opts.Pick && number == "" {
		if !utils.IsInteractive() {
			return fmt.Errorf("cannot pick a step in non-interactive mode")
		}
		picked, err := pickStep(ctx)
		if err != nil {
			return err
		}
		number = picked
	}

	commit, err := resolveStep(ctx, number)
	if err != nil {
		return err
	}

	if err := startStepRebase(ctx, commit, ctx.Commands().SequenceEditor(rebase.ModeEdit)); err != nil {
		return err
	}

	if ctx.Repo.IsRebaseInProgress() {
		ctx.Splog.Info("Stopped at %s.", git.Subject(commit))
		ctx.Splog.Tip("Amend the commit, then run `git rebase --continue`. Later steps are renumbered automatically.")
	}
	return nil
}

// RewordStepOptions contains options for the step reword command
type RewordStepOptions struct {
	Step    string
	Message string
}

// RewordStepAction replaces the message of a step, keeping its number
func RewordStepAction(ctx *runtime.Context, opts RewordStepOptions) error {
	commit, err := resolveStep(ctx, opts.Step)
	if err != nil {
		return err
	}

	message := opts.Message
	if message == "" {
		if !utils.IsInteractive() {
			return fmt.Errorf("a message is required in non-interactive mode")
		}
		number, current := "?", git.Subject(commit)
		if d := step.Parse(current); d != nil {
			number, current = d.Number(), d.Message
		}
		message, err = tui.PromptStepMessage(number, current)
		if err != nil {
			return err
		}
	}

	editor := ctx.Commands().SequenceEditor(rebase.ModeReword, "--message", message)
	if err := startStepRebase(ctx, commit, editor); err != nil {
		return err
	}
	ctx.Splog.Info("Reworded %s.", git.Subject(commit))
	return nil
}

// ListStepsAction prints the steps of the tutorial as a tree, oldest first
func ListStepsAction(ctx *runtime.Context) error {
	steps, err := ctx.Repo.StepCommits("HEAD")
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		ctx.Splog.Info("No steps yet.")
		return nil
	}

	head, err := ctx.Repo.HeadCommit()
	if err != nil {
		return err
	}

	items := make([]output.StepTreeItem, 0, len(steps))
	for i := len(steps) - 1; i >= 0; i-- {
		items = append(items, output.StepTreeItem{Step: steps[i].Step, Hash: steps[i].Hash})
	}
	opts := output.StepTreeOptions{Current: step.NumberOf(step.Parse(git.Subject(head)))}
	for _, line := range output.RenderStepTree(items, opts) {
		ctx.Splog.Info("%s", line)
	}
	return nil
}

// resolveStep returns the commit of a step, or HEAD when number is empty
func resolveStep(ctx *runtime.Context, number string) (*object.Commit, error) {
	if number == "" {
		return ctx.Repo.HeadCommit()
	}
	if !step.IsNumber(number) {
		return nil, errors.NewInvalidStepError(number)
	}
	return ctx.Repo.FindStepCommit(number)
}

// startStepRebase runs an interactive rebase whose first operation is commit
func startStepRebase(ctx *runtime.Context, commit *object.Commit, sequenceEditor string) error {
	if ctx.Repo.IsRebaseInProgress() {
		return fmt.Errorf("a rebase is already in progress; run `git rebase --continue` or `git rebase --abort` first")
	}

	parent, err := ctx.Repo.ParentCommit(commit)
	if err != nil {
		return err
	}
	base := ""
	if parent != nil {
		base = parent.Hash.String()
	}

	// State left over by an interrupted rebase must not leak into this one
	for _, key := range []string{storage.KeyOldStep, storage.KeyNewStep, storage.KeyHookStep} {
		if err := ctx.Store.Remove(key); err != nil {
			return err
		}
	}

	ctx.Splog.Debug("rebasing from %q with sequence editor %s", base, sequenceEditor)
	if err := ctx.Repo.InteractiveRebase(ctx, git.InteractiveRebaseOptions{
		Base:           base,
		SequenceEditor: sequenceEditor,
	}); err != nil {
		return fmt.Errorf("rebase failed: %w", err)
	}
	return nil
}

func pickStep(ctx *runtime.Context) (string, error) {
	steps, err := ctx.Repo.StepCommits("HEAD")
	if err != nil {
		return "", err
	}
	if len(steps) == 0 {
		return "", fmt.Errorf("no step commits found")
	}

	options := make([]string, len(steps))
	for i, s := range steps {
		options[i] = s.Subject
	}

	var choice int
	prompt := &survey.Select{
		Message: "Select a step to edit:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return steps[choice].Step.Number(), nil
}
