package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// DeploymentsRenderer renders the deployment records table.
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderList prints all per-network deployment records as a table.
func (r *DeploymentsRenderer) RenderList(result *usecase.ListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found. Run katapult deploy first.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Network", "Chain ID", "Contract", "Address", "Verification", "Age"})

	now := time.Now()
	for _, d := range result.Deployments {
		t.AppendRow(table.Row{
			d.Network,
			d.ChainID,
			d.ContractName,
			d.ContractAddress,
			verificationLabel(d),
			now.Sub(d.Timestamp).Round(time.Minute),
		})
	}
	t.Render()

	fmt.Fprintf(r.out, "\n%d deployments, %d verified\n", len(result.Deployments), result.VerifiedCount)
	return nil
}
