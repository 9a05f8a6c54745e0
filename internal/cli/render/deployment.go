package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// DeployRenderer renders deployment results.
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderDeployment prints the freshly written deployment record.
func (r *DeployRenderer) RenderDeployment(d *models.Deployment) error {
	color.New(color.FgGreen, color.Bold).Fprintf(r.out, "✓ %s deployed to %s\n\n", d.ContractName, d.Network)
	fmt.Fprintf(r.out, "  Address:   %s\n", d.ContractAddress)
	fmt.Fprintf(r.out, "  Tx:        %s\n", d.DeploymentTxHash)
	fmt.Fprintf(r.out, "  Deployer:  %s\n", d.DeployerAddress)
	fmt.Fprintf(r.out, "  Chain ID:  %d\n", d.ChainID)
	if len(d.ConstructorArgs) > 0 {
		fmt.Fprintf(r.out, "  Args:      %v\n", d.ConstructorArgs)
	}
	return nil
}
