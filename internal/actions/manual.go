package actions

import (
	"fmt"

	"stepwise.dev/stepwise/internal/diffstep"
	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/internal/rebase"
	"stepwise.dev/stepwise/internal/runtime"
	"stepwise.dev/stepwise/internal/step"
)

// RenderManualOptions contains options for the manual render command
type RenderManualOptions struct {
	Step   string
	Root   bool
	Format string
}

// RenderManualAction renders the manual of one super-step, or of the root
func RenderManualAction(ctx *runtime.Context, opts RenderManualOptions) error {
	number := opts.Step
	switch {
	case opts.Root && number != "":
		return fmt.Errorf("pass either --root or a step, not both")
	case opts.Root:
		number = step.Root
	case number == "":
		return fmt.Errorf("a step or --root is required")
	}

	path, err := ctx.ManualRenderer().Render(ctx, number, opts.Format)
	if err != nil {
		return err
	}
	ctx.Splog.Debug("rendered manual %s", path)
	return nil
}

// RenderAllOptions contains options for the manual render-all command
type RenderAllOptions struct {
	// Format is dev, prod or empty to keep the manuals' own format
	Format string
}

// RenderAllAction rebases the whole history, regenerating every manual in
// the commit that introduces it
func RenderAllAction(ctx *runtime.Context, opts RenderAllOptions) error {
	if ctx.Repo.IsRebaseInProgress() {
		return fmt.Errorf("a rebase is already in progress; run `git rebase --continue` or `git rebase --abort` first")
	}

	commands := ctx.Commands()
	var editor string
	switch opts.Format {
	case "":
		editor = commands.SequenceEditor(rebase.ModeRenderManuals)
	case rebase.FormatDev, rebase.FormatProd:
		editor = commands.SequenceEditor(rebase.ModeFormatManuals, "--mode", opts.Format)
	default:
		return fmt.Errorf("unknown manual format %q, expected %s or %s", opts.Format, rebase.FormatDev, rebase.FormatProd)
	}

	if err := ctx.Repo.InteractiveRebase(ctx, git.InteractiveRebaseOptions{SequenceEditor: editor}); err != nil {
		return fmt.Errorf("rebase failed: %w", err)
	}
	if ctx.Repo.IsRebaseInProgress() {
		ctx.Splog.Warn("The rebase stopped before every manual was rendered.")
		ctx.Splog.Tip("Fix the problem above, then run `git rebase --continue`.")
		return nil
	}
	ctx.Splog.Info("Rendered all manuals.")
	return nil
}

// DiffStepAction prints the annotated diff of a step
func DiffStepAction(ctx *runtime.Context, number string) error {
	out, err := diffstep.RenderStep(ctx, ctx.Repo, ctx.DiffRenderer(), number)
	if err != nil {
		return err
	}
	ctx.Splog.Page(out)
	return nil
}
