package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// DeployContract deploys a compiled contract to a network and records the
// result. The record write is the last action: nothing is persisted when any
// earlier step fails.
type DeployContract struct {
	cfg         *config.RuntimeConfig
	artifacts   ArtifactStore
	deployments DeploymentStore
	deployer    ContractDeployer
	clock       Clock
	log         *slog.Logger
	progress    ProgressSink
}

// NewDeployContract creates a new deploy use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	artifacts ArtifactStore,
	deployments DeploymentStore,
	deployer ContractDeployer,
	clock Clock,
	log *slog.Logger,
	progress ProgressSink,
) *DeployContract {
	return &DeployContract{
		cfg:         cfg,
		artifacts:   artifacts,
		deployments: deployments,
		deployer:    deployer,
		clock:       clock,
		log:         log,
		progress:    progress,
	}
}

// Run deploys contractName to networkName with the given constructor args.
func (uc *DeployContract) Run(ctx context.Context, contractName, networkName string, constructorArgs []string) (*models.Deployment, error) {
	network, err := domain.ResolveNetwork(networkName)
	if err != nil {
		return nil, err
	}

	// Keep empty, not null, in the persisted JSON.
	if constructorArgs == nil {
		constructorArgs = []string{}
	}

	rpcURL, err := uc.cfg.RPCURL(network)
	if err != nil {
		return nil, err
	}

	// Credential check happens before any chain call.
	if uc.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: set PRIVATE_KEY", domain.ErrNoCredentialConfigured)
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, contractName)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ProgressEvent{
		Message: fmt.Sprintf("Deploying %s to %s...", contractName, network.Name),
		Spinner: true,
	})
	defer uc.progress.Done()

	result, err := uc.deployer.Deploy(ctx, DeployRequest{
		RPCURL:          rpcURL,
		PrivateKey:      uc.cfg.PrivateKey,
		Artifact:        artifact,
		ConstructorArgs: constructorArgs,
	})
	if err != nil {
		return nil, err
	}

	if result.ChainID != network.ChainID {
		// The record keeps the endpoint's live chain id, not the label's.
		uc.log.Warn("endpoint chain id differs from network table",
			"network", network.Name, "expected", network.ChainID, "actual", result.ChainID)
	}

	deployment := &models.Deployment{
		ContractName:           contractName,
		ContractAddress:        result.ContractAddress,
		DeploymentTxHash:       result.TxHash,
		DeployerAddress:        result.DeployerAddress,
		Network:                network.Name,
		ChainID:                result.ChainID,
		Timestamp:              uc.clock.Now().UTC(),
		ConstructorArgs:        constructorArgs,
		ConstructorTypes:       result.ConstructorTypes,
		EncodedConstructorArgs: result.EncodedConstructorArgs,
	}

	if err := uc.deployments.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("deployed to %s but failed to write deployment record: %w",
			result.ContractAddress, err)
	}

	uc.log.Info("contract deployed",
		"contract", contractName,
		"network", network.Name,
		"address", result.ContractAddress,
		"tx", result.TxHash,
	)

	return deployment, nil
}
