package render

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// NetworksRenderer renders the network table.
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworks prints the supported networks with their configured state.
func (r *NetworksRenderer) RenderNetworks(statuses []usecase.NetworkStatus) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Network", "Chain ID", "RPC", "API Key", "Explorer"})

	for _, s := range statuses {
		name := s.Network.Name
		if s.IsDefault {
			name += " (default)"
		}
		t.AppendRow(table.Row{
			name,
			s.Network.ChainID,
			checkmark(s.RPCConfigured),
			checkmark(s.APIKeyConfigured),
			s.Network.ExplorerURL,
		})
	}
	t.Render()
	return nil
}

func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
