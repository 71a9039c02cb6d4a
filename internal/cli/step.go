package cli

import (
	"github.com/spf13/cobra"

	"stepwise.dev/stepwise/internal/actions"
	"stepwise.dev/stepwise/internal/cli/helpers"
	"stepwise.dev/stepwise/internal/runtime"
)

// newStepCmd creates the step command
func newStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Edit, reword and list tutorial steps",
	}

	cmd.AddCommand(newStepEditCmd())
	cmd.AddCommand(newStepRewordCmd())
	cmd.AddCommand(newStepListCmd())

	return cmd
}

func newStepEditCmd() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "edit [step]",
		Short: "Stop at a step to amend it",
		Long: `Start an interactive rebase that stops at the given step (HEAD by default).

Amend the commit, then run "git rebase --continue". If the amended subject
carries a different step number, the steps after it are renumbered and their
manuals renamed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.EditStepOptions{Pick: pick}
			if len(args) > 0 {
				opts.Step = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.EditStepAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "Choose the step from a list")

	return cmd
}

func newStepRewordCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "reword [step]",
		Short: "Replace the text of a step",
		Long: `Replace the text of a step (HEAD by default), keeping its number.

When --message is omitted you are prompted for the new text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.RewordStepOptions{Message: message}
			if len(args) > 0 {
				opts.Step = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RewordStepAction(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "New step text")

	return cmd
}

func newStepListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the steps reachable from HEAD",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ListStepsAction)
		},
	}
}
