package cli

import (
	"github.com/spf13/cobra"

	"stepwise.dev/stepwise/internal/actions"
	"stepwise.dev/stepwise/internal/cli/helpers"
	"stepwise.dev/stepwise/internal/runtime"
)

// newManualCmd creates the manual command
func newManualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Render tutorial manuals",
	}

	cmd.AddCommand(newManualRenderCmd())
	cmd.AddCommand(newManualRenderAllCmd())

	return cmd
}

func newManualRenderCmd() *cobra.Command {
	var (
		root   bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "render [step]",
		Short: "Render the manual of a super-step, or the root manual",
		Long: `Render the manual of a super-step from its template into the views
directory, or the root manual with --root. The file is written to the working
tree only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.RenderManualOptions{Root: root, Format: format}
			if len(args) > 0 {
				opts.Step = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RenderManualAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&root, "root", false, "Render the root manual")
	cmd.Flags().StringVar(&format, "format", "", "Manual format: dev or prod")

	return cmd
}

func newManualRenderAllCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render-all",
		Short: "Re-render every manual in the commit that introduces it",
		Long: `Rebase the whole history, rendering the root manual into the root commit
and each super-step manual into its super-step commit.

With --format the manuals are switched to dev or prod format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RenderAllAction(ctx, actions.RenderAllOptions{Format: format})
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Manual format: dev or prod")

	return cmd
}

// newRenderCmd creates the render command
func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render tutorial fragments to stdout",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "diff-step <step>",
		Short: "Print the annotated diff of a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.DiffStepAction(ctx, args[0])
			})
		},
	})

	return cmd
}
