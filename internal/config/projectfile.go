package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// ProjectFileName is the optional per-project configuration file.
const ProjectFileName = "katapult.toml"

// ProjectFile holds settings read from katapult.toml.
type ProjectFile struct {
	ContractsDir string            `toml:"contracts_dir"`
	ArtifactsDir string            `toml:"artifacts_dir"`
	DataDir      string            `toml:"data_dir"`
	MirrorDir    string            `toml:"mirror_dir"`
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
	Optimizer    OptimizerSettings `toml:"optimizer"`
}

// OptimizerSettings configures the solc optimizer for compiles.
type OptimizerSettings struct {
	Enabled *bool `toml:"enabled"`
	Runs    int   `toml:"runs"`
}

// envVarPattern matches ${VAR_NAME} references in TOML values.
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// LoadProjectFile reads katapult.toml from the project root. A missing file
// is not an error; the zero value is returned.
func LoadProjectFile(projectRoot string) (*ProjectFile, error) {
	path := filepath.Join(projectRoot, ProjectFileName)

	var pf ProjectFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		if os.IsNotExist(err) {
			return &pf, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	// Expand pure ${VAR} references against the environment.
	for name, raw := range pf.RpcEndpoints {
		if matches := envVarPattern.FindStringSubmatch(raw); len(matches) == 2 {
			pf.RpcEndpoints[name] = os.Getenv(matches[1])
		}
	}

	return &pf, nil
}
