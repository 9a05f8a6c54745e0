package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/katapult/internal/cli/render"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deployment records across networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout())
			return renderer.RenderList(result)
		},
	}
}
