package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/katapult/internal/cli/render"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [contract] [network]",
		Short: "Verify a deployed contract on its block explorer",
		Long: `Submit a deployed contract's source to the network's explorer and
poll until verification succeeds, fails, or times out.

Examples:
  katapult verify                        # SimpleStorage on the default network
  katapult verify SimpleStorage sepolia  # explicit contract and network`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contractName := DefaultContract
			network := app.Config.Network
			if len(args) > 0 {
				contractName = args[0]
			}
			if len(args) > 1 {
				network = args[1]
			}

			deployment, err := app.VerifyDeployment.Run(cmd.Context(), contractName, network)

			// Render whatever terminal state was reached before reporting
			// the error; failed/timeout still exit non-zero.
			renderer := render.NewVerifyRenderer(cmd.OutOrStdout())
			if renderErr := renderer.RenderVerification(deployment); renderErr != nil {
				return renderErr
			}
			return err
		},
	}
}
