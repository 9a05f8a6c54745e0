package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/katapult/internal/cli/render"
)

// NewCompileCmd creates the compile command
func NewCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile all contracts in the contracts directory",
		Long: `Compile every .sol file in the contracts directory with solc,
writing an artifact per contract plus the shared compilation settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CompileContracts.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewCompileRenderer(cmd.OutOrStdout())
			if err := renderer.RenderCompileResult(result); err != nil {
				return err
			}

			if failed := result.Failed(); failed > 0 {
				return fmt.Errorf("%d source file(s) failed to compile", failed)
			}
			return nil
		},
	}
}
