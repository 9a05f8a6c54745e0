package domain

import (
	"fmt"
	"sort"
)

// DefaultNetwork is the network used when neither the command line nor the
// NETWORK environment variable names one.
const DefaultNetwork = "bsc-testnet"

// ExplorerFamily selects which API key a network's explorer expects.
type ExplorerFamily string

const (
	ExplorerFamilyBscscan   ExplorerFamily = "bscscan"
	ExplorerFamilyEtherscan ExplorerFamily = "etherscan"
)

// Network describes one supported target chain. All endpoint, key and URL
// resolution goes through this table; components never apply their own
// per-call fallbacks.
type Network struct {
	Name           string         `json:"name"`
	ChainID        uint64         `json:"chainId"`
	RPCEnvVar      string         `json:"rpcEnvVar"`
	Family         ExplorerFamily `json:"family"`
	ExplorerAPIURL string         `json:"explorerApiUrl"`
	ExplorerURL    string         `json:"explorerUrl"`
}

// networks is the exhaustive table of supported networks.
var networks = map[string]Network{
	"bsc": {
		Name:           "bsc",
		ChainID:        56,
		RPCEnvVar:      "BSC_MAINNET_RPC_URL",
		Family:         ExplorerFamilyBscscan,
		ExplorerAPIURL: "https://api.bscscan.com/api",
		ExplorerURL:    "https://bscscan.com",
	},
	"bsc-testnet": {
		Name:           "bsc-testnet",
		ChainID:        97,
		RPCEnvVar:      "BSC_TESTNET_RPC_URL",
		Family:         ExplorerFamilyBscscan,
		ExplorerAPIURL: "https://api-testnet.bscscan.com/api",
		ExplorerURL:    "https://testnet.bscscan.com",
	},
	"ethereum": {
		Name:           "ethereum",
		ChainID:        1,
		RPCEnvVar:      "ETH_MAINNET_RPC_URL",
		Family:         ExplorerFamilyEtherscan,
		ExplorerAPIURL: "https://api.etherscan.io/api",
		ExplorerURL:    "https://etherscan.io",
	},
	"sepolia": {
		Name:           "sepolia",
		ChainID:        11155111,
		RPCEnvVar:      "ETH_SEPOLIA_RPC_URL",
		Family:         ExplorerFamilyEtherscan,
		ExplorerAPIURL: "https://api-sepolia.etherscan.io/api",
		ExplorerURL:    "https://sepolia.etherscan.io",
	},
}

// APIKeyEnvVar returns the environment variable carrying the explorer API key
// for this network's family.
func (n Network) APIKeyEnvVar() string {
	if n.Family == ExplorerFamilyBscscan {
		return "BSCSCAN_API_KEY"
	}
	return "ETHERSCAN_API_KEY"
}

// AddressURL returns the explorer page for a contract address.
func (n Network) AddressURL(address string) string {
	return fmt.Sprintf("%s/address/%s#code", n.ExplorerURL, address)
}

// ResolveNetwork looks up a network by name. Unknown names are an explicit
// error; default selection happens only at the CLI argument boundary.
func ResolveNetwork(name string) (Network, error) {
	n, ok := networks[name]
	if !ok {
		return Network{}, fmt.Errorf("%w: %s (supported: %v)", ErrUnknownNetwork, name, NetworkNames())
	}
	return n, nil
}

// NetworkNames returns the supported network names in stable order.
func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Networks returns all supported networks sorted by name.
func Networks() []Network {
	list := make([]Network, 0, len(networks))
	for _, name := range NetworkNames() {
		list = append(list, networks[name])
	}
	return list
}
