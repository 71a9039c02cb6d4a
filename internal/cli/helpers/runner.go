// Package helpers holds plumbing shared by the stepwise commands.
package helpers

import (
	"github.com/spf13/cobra"

	"stepwise.dev/stepwise/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()
	return fn(ctx)
}
