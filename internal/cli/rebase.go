package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stepwise.dev/stepwise/internal/actions"
	"stepwise.dev/stepwise/internal/cli/helpers"
	"stepwise.dev/stepwise/internal/runtime"
)

// newEditorCmd creates the sequence editor command git calls with the todo file
func newEditorCmd() *cobra.Command {
	var (
		message string
		format  string
	)

	cmd := &cobra.Command{
		Use:    "editor <mode> <todo-file>",
		Short:  "Rewrite a rebase todo (used as GIT_SEQUENCE_EDITOR)",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.EditTodoAction(ctx, actions.EditTodoOptions{
					Mode:    args[0],
					File:    args[1],
					Message: message,
					Format:  format,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Step text for the reword mode")
	cmd.Flags().StringVar(&format, "mode", "", "Manual format for the format-manuals mode")

	return cmd
}

// newRebaseCmd creates the helpers run from rebase exec lines
func newRebaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "rebase",
		Short:  "Helpers run from rebase exec lines",
		Hidden: true,
	}

	var message string
	reword := &cobra.Command{
		Use:   "reword",
		Short: "Renumber HEAD after the step before it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RewordHelperAction(ctx, actions.RewordHelperOptions{Message: message})
			})
		},
	}
	reword.Flags().StringVarP(&message, "message", "m", "", "New step text")

	superPick := &cobra.Command{
		Use:   "super-pick <hash>",
		Short: "Pick a super-step, renaming its manuals when renumbered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.SuperPickAction(ctx, actions.SuperPickOptions{Hash: args[0]})
			})
		},
	}

	cmd.AddCommand(reword, superPick)
	return cmd
}

// newStorageCmd creates the flag store commands
func newStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "storage",
		Short:  "Read and write the rebase flag store",
		Hidden: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a value; nothing when unset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				value, ok, err := ctx.Store.Get(args[0])
				if err != nil || !ok {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return ctx.Store.Set(args[0], args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every stored key and value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				keys, err := ctx.Store.Keys()
				if err != nil {
					return err
				}
				for _, key := range keys {
					value, _, err := ctx.Store.Get(key)
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return ctx.Store.Remove(args[0])
			})
		},
	})

	return cmd
}

// newHookCmd creates the git hook entry points
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Git hooks installed by stepwise init",
		Hidden: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "commit-msg <message-file>",
		Short: "Record the step number of a commit amended during a rebase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.CommitMsgHookAction(ctx, actions.CommitMsgHookOptions{MessageFile: args[0]})
			})
		},
	})

	return cmd
}
