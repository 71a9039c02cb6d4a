package actions

import (
	"fmt"
	"os"
	"strings"

	"stepwise.dev/stepwise/internal/runtime"
	"stepwise.dev/stepwise/internal/step"
	"stepwise.dev/stepwise/internal/storage"
)

// CommitMsgHookOptions contains the arguments git passes to the commit-msg hook
type CommitMsgHookOptions struct {
	MessageFile string
}

// CommitMsgHookAction records the step number of a commit amended while a
// rebase stopped at it, so the sort phase knows where the step moved.
func CommitMsgHookAction(ctx *runtime.Context, opts CommitMsgHookOptions) error {
	if !ctx.Repo.IsRebaseInProgress() {
		return nil
	}

	disabled, err := storage.IsSet(ctx.Store, storage.KeyHooksDisabled)
	if err != nil {
		return err
	}
	if disabled {
		ctx.Splog.Debug("commit-msg: hooks disabled")
		return nil
	}

	// Commits reworded by the rebase helpers carry their number already
	if _, ok, err := ctx.Store.Get(storage.KeyHookStep); err != nil || ok {
		return err
	}

	data, err := os.ReadFile(opts.MessageFile)
	if err != nil {
		return fmt.Errorf("failed to read commit message: %w", err)
	}

	number := step.NumberOf(step.Parse(subjectOf(string(data))))
	ctx.Splog.Debug("commit-msg: new step %s", number)
	return ctx.Store.Set(storage.KeyNewStep, number)
}

// subjectOf returns the first line of a commit message file that is not a
// git comment
func subjectOf(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
