package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// RuntimeConfig is the process-wide configuration, assembled once at startup
// from .env, the environment, katapult.toml and command-line flags. It is
// treated as immutable afterwards; components never read the environment on
// their own.
type RuntimeConfig struct {
	ProjectRoot  string
	ContractsDir string
	ArtifactsDir string
	DataDir      string
	MirrorDir    string

	// Network is the default network when a command names none.
	Network string

	// PrivateKey is the hex signing key for deployments.
	PrivateKey string

	// RPCURLs maps network name to endpoint URL. Empty entries mean the
	// network is unconfigured.
	RPCURLs map[string]string

	// APIKeys maps explorer family to API key.
	APIKeys map[domain.ExplorerFamily]string

	// Optimization is the solc optimizer setting used by compile.
	Optimization models.Optimization

	NonInteractive bool
	Timeout        time.Duration
}

// SetupViper creates the viper instance commands bind their flags into.
func SetupViper() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv("network", "NETWORK")
	_ = v.BindEnv("private_key", "PRIVATE_KEY")
	_ = v.BindEnv("non_interactive", "KATAPULT_NON_INTERACTIVE")
	v.SetDefault("timeout", 5*time.Minute)
	return v
}

// LoadConfig builds the runtime configuration. A .env file in the project
// root is loaded first (best effort), then katapult.toml, then environment
// variables per the network table.
func LoadConfig(v *viper.Viper, projectRoot string) (*RuntimeConfig, error) {
	if !filepath.IsAbs(projectRoot) {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project root: %w", err)
		}
		projectRoot = abs
	}

	// Populate the environment before anything reads it.
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	pf, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		ContractsDir:   filepath.Join(projectRoot, orDefault(pf.ContractsDir, "contracts")),
		ArtifactsDir:   filepath.Join(projectRoot, orDefault(pf.ArtifactsDir, "artifacts")),
		DataDir:        filepath.Join(projectRoot, orDefault(pf.DataDir, ".katapult")),
		MirrorDir:      filepath.Join(projectRoot, orDefault(pf.MirrorDir, filepath.Join("frontend", "src", "deployments"))),
		Network:        orDefault(v.GetString("network"), domain.DefaultNetwork),
		PrivateKey:     v.GetString("private_key"),
		RPCURLs:        make(map[string]string),
		APIKeys:        make(map[domain.ExplorerFamily]string),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		Optimization:   models.Optimization{Enabled: true, Runs: 200},
	}

	if pf.Optimizer.Enabled != nil {
		cfg.Optimization.Enabled = *pf.Optimizer.Enabled
	}
	if pf.Optimizer.Runs > 0 {
		cfg.Optimization.Runs = pf.Optimizer.Runs
	}

	// RPC endpoints: katapult.toml overrides the conventional env vars.
	for _, network := range domain.Networks() {
		if url := pf.RpcEndpoints[network.Name]; url != "" {
			cfg.RPCURLs[network.Name] = url
		} else if url := os.Getenv(network.RPCEnvVar); url != "" {
			cfg.RPCURLs[network.Name] = url
		}
	}

	cfg.APIKeys[domain.ExplorerFamilyBscscan] = os.Getenv("BSCSCAN_API_KEY")
	cfg.APIKeys[domain.ExplorerFamilyEtherscan] = os.Getenv("ETHERSCAN_API_KEY")

	return cfg, nil
}

// RPCURL returns the endpoint for a network or ErrNoRPCConfigured.
func (c *RuntimeConfig) RPCURL(network domain.Network) (string, error) {
	url := c.RPCURLs[network.Name]
	if url == "" {
		return "", fmt.Errorf("%w for network %s (set %s)", domain.ErrNoRPCConfigured, network.Name, network.RPCEnvVar)
	}
	return url, nil
}

// APIKey returns the explorer API key for a network's family or
// ErrNoAPIKeyConfigured.
func (c *RuntimeConfig) APIKey(network domain.Network) (string, error) {
	key := c.APIKeys[network.Family]
	if key == "" {
		return "", fmt.Errorf("%w for network %s (set %s)", domain.ErrNoAPIKeyConfigured, network.Name, network.APIKeyEnvVar())
	}
	return key, nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
