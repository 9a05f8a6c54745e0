package usecase

import (
	"context"

	"github.com/samber/lo"

	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/domain"
)

// NetworkStatus is a network table entry plus its configuration state.
type NetworkStatus struct {
	Network          domain.Network
	RPCConfigured    bool
	APIKeyConfigured bool
	IsDefault        bool
}

// ListNetworks reports the supported networks and whether each is usable
// with the current configuration.
type ListNetworks struct {
	cfg *config.RuntimeConfig
}

// NewListNetworks creates a new networks use case
func NewListNetworks(cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{cfg: cfg}
}

// Run returns the status of every supported network.
func (uc *ListNetworks) Run(ctx context.Context) ([]NetworkStatus, error) {
	return lo.Map(domain.Networks(), func(n domain.Network, _ int) NetworkStatus {
		return NetworkStatus{
			Network:          n,
			RPCConfigured:    uc.cfg.RPCURLs[n.Name] != "",
			APIKeyConfigured: uc.cfg.APIKeys[n.Family] != "",
			IsDefault:        n.Name == uc.cfg.Network,
		}
	}), nil
}
