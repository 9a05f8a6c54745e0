package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/katapult/internal/cli/render"
)

// DefaultContract is deployed when no contract name is given.
const DefaultContract = "SimpleStorage"

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy [contract] [network] [constructorArgs...]",
		Short: "Deploy a compiled contract",
		Long: `Deploy a compiled contract to a network and record the deployment.

Examples:
  katapult deploy                                # SimpleStorage to the default network
  katapult deploy SimpleStorage sepolia          # explicit contract and network
  katapult deploy Token bsc 1000000 MyToken MTK  # with constructor arguments`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contractName := DefaultContract
			network := app.Config.Network
			var constructorArgs []string
			if len(args) > 0 {
				contractName = args[0]
			}
			if len(args) > 1 {
				network = args[1]
			}
			if len(args) > 2 {
				constructorArgs = args[2:]
			}

			deployment, err := app.DeployContract.Run(cmd.Context(), contractName, network, constructorArgs)
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			return renderer.RenderDeployment(deployment)
		},
	}
}
