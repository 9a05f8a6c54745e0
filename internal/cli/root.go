package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/katapult/internal/adapters/progress"
	"github.com/trebuchet-org/katapult/internal/app"
	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

// appKey is the context key for the app instance
const appKey contextKey = "app"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "katapult",
		Short: "Compile, deploy and verify Solidity contracts",
		Long: `Katapult drives a minimal contract pipeline: compile with solc,
deploy through an RPC endpoint, and verify sources on the network's
block explorer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			bindGlobalFlags(v, cmd.Flags())

			projectRoot := os.Getenv("KATAPULT_PROJECT_ROOT")
			if projectRoot == "" {
				projectRoot = "."
			}

			appInstance, err := app.NewApp(v, projectRoot, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (bsc, bsc-testnet, ethereum, sepolia)")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable spinners and interactive output")

	rootCmd.AddCommand(NewCompileCmd())
	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// bindGlobalFlags copies changed flags into viper
func bindGlobalFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "network":
			v.Set("network", f.Value.String())
		case "non-interactive":
			v.Set("non_interactive", f.Value.String())
		}
	})
}

// newProgressSink picks a spinner for terminals, nothing otherwise.
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("non_interactive") || isNonInteractive() {
		return usecase.NopProgress{}
	}
	return progress.NewSpinnerSink()
}

// isNonInteractive checks if the environment is non-interactive
func isNonInteractive() bool {
	return os.Getenv("CI") == "true" || os.Getenv("NO_COLOR") != ""
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
