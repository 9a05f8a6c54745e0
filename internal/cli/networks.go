package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/katapult/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "Show supported networks and their configuration state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			statuses, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout())
			return renderer.RenderNetworks(statuses)
		},
	}
}
