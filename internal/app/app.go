package app

import (
	"log/slog"

	"github.com/spf13/viper"

	"github.com/trebuchet-org/katapult/internal/adapters/chain"
	"github.com/trebuchet-org/katapult/internal/adapters/clock"
	"github.com/trebuchet-org/katapult/internal/adapters/etherscan"
	"github.com/trebuchet-org/katapult/internal/adapters/fs"
	"github.com/trebuchet-org/katapult/internal/adapters/solc"
	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/logging"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// App is the application container holding the configuration and all use
// cases, assembled once per invocation.
type App struct {
	Config *config.RuntimeConfig
	Log    *slog.Logger

	CompileContracts *usecase.CompileContracts
	DeployContract   *usecase.DeployContract
	VerifyDeployment *usecase.VerifyDeployment
	ListDeployments  *usecase.ListDeployments
	ListNetworks     *usecase.ListNetworks
}

// NewApp wires adapters into use cases.
func NewApp(v *viper.Viper, projectRoot string, progress usecase.ProgressSink) (*App, error) {
	log := logging.NewLogger()

	cfg, err := config.LoadConfig(v, projectRoot)
	if err != nil {
		return nil, err
	}

	sysClock := clock.NewSystem()
	artifacts := fs.NewArtifactStore(cfg.ArtifactsDir)
	sources := fs.NewSourceReader(cfg.ContractsDir)
	deployments := fs.NewDeploymentStore(cfg.DataDir, cfg.MirrorDir, log)

	codec := chain.NewCodec()
	deployer := chain.NewDeployer(chain.Dial, codec, sysClock, log)
	codeReader := chain.NewCodeReader(chain.Dial)
	explorer := etherscan.NewClient()
	compiler := solc.NewCompiler("", log)

	return &App{
		Config: cfg,
		Log:    log,

		CompileContracts: usecase.NewCompileContracts(cfg, sources, artifacts, compiler, sysClock, log),
		DeployContract:   usecase.NewDeployContract(cfg, artifacts, deployments, deployer, sysClock, log, progress),
		VerifyDeployment: usecase.NewVerifyDeployment(cfg, artifacts, sources, deployments, codeReader, codec,
			explorer, sysClock, usecase.DefaultRetryPolicy, log, progress),
		ListDeployments: usecase.NewListDeployments(deployments),
		ListNetworks:    usecase.NewListNetworks(cfg),
	}, nil
}
