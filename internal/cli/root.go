package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stepwise.dev/stepwise/internal/output"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stepwise",
		Short: "Stepwise keeps step-by-step tutorials written as git history in order",
		Long: `Stepwise keeps step-by-step tutorials written as git history in order.

Every tutorial step is one commit whose subject reads "Step <n>: <text>" or
"Step <n>.<m>: <text>". Stepwise edits and rewords steps with interactive
rebases, renumbering the steps that follow, and renders the tutorial manuals
with annotated diffs of the steps.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.ConfigureColors()
		},
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStepCmd())
	rootCmd.AddCommand(newManualCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newConfigCmd())

	// Invoked by git from rebase todos and hooks
	rootCmd.AddCommand(newEditorCmd())
	rootCmd.AddCommand(newRebaseCmd())
	rootCmd.AddCommand(newStorageCmd())
	rootCmd.AddCommand(newHookCmd())

	return rootCmd
}
