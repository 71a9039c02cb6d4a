package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stepwise.dev/stepwise/internal/actions"
	"stepwise.dev/stepwise/internal/cli/helpers"
	"stepwise.dev/stepwise/internal/config"
	"stepwise.dev/stepwise/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the commit-msg hook and a default configuration",
		Long: `Install the commit-msg hook stepwise uses to notice renumbered steps while
editing, and write a default ` + config.FileName + ` when the repository has none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.InitAction(ctx, actions.InitOptions{Force: force})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing commit-msg hook")

	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository configuration",
		Long: `Get and set values of ` + config.FileName + `.

Examples:
  stepwise config get manuals.root
  stepwise config set diff.exclude "package-lock.json,**/*.snap"`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				value, err := ctx.Config.Get(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Config.Set(args[0], args[1]); err != nil {
					return err
				}
				return ctx.Config.Save(ctx.Repo.Root())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				for _, key := range config.Keys() {
					value, _ := ctx.Config.Get(key)
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})

	return cmd
}
