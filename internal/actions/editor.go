package actions

import (
	"stepwise.dev/stepwise/internal/rebase"
	"stepwise.dev/stepwise/internal/runtime"
)

// EditTodoOptions contains the arguments git passes to the sequence editor
// plus the flags composed into GIT_SEQUENCE_EDITOR
type EditTodoOptions struct {
	Mode    string
	File    string
	Message string
	Format  string
}

// EditTodoAction rewrites a rebase todo file in place
func EditTodoAction(ctx *runtime.Context, opts EditTodoOptions) error {
	mode, err := rebase.ParseMode(opts.Mode, rebase.ModeOptions{
		Message: opts.Message,
		Format:  opts.Format,
	})
	if err != nil {
		return err
	}
	return ctx.Editor().EditFile(opts.File, mode)
}
