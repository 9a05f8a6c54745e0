package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// solcVersionPattern is the commit-qualified compiler version explorers
// expect, e.g. "0.8.19+commit.7dd6d404".
var solcVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+\+commit\.[0-9a-f]+$`)

// VerifyDeployment submits a deployed contract's source to the network's
// explorer and polls until the explorer reaches a terminal answer.
type VerifyDeployment struct {
	cfg         *config.RuntimeConfig
	artifacts   ArtifactStore
	sources     SourceReader
	deployments DeploymentStore
	code        CodeReader
	encoder     ConstructorEncoder
	explorer    ExplorerClient
	clock       Clock
	retry       RetryPolicy
	log         *slog.Logger
	progress    ProgressSink
}

// NewVerifyDeployment creates a new verify use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	artifacts ArtifactStore,
	sources SourceReader,
	deployments DeploymentStore,
	code CodeReader,
	encoder ConstructorEncoder,
	explorer ExplorerClient,
	clock Clock,
	retry RetryPolicy,
	log *slog.Logger,
	progress ProgressSink,
) *VerifyDeployment {
	return &VerifyDeployment{
		cfg:         cfg,
		artifacts:   artifacts,
		sources:     sources,
		deployments: deployments,
		code:        code,
		encoder:     encoder,
		explorer:    explorer,
		clock:       clock,
		retry:       retry,
		log:         log,
		progress:    progress,
	}
}

// Run verifies contractName's deployment on networkName. The returned record
// carries the terminal VerificationInfo; a non-verified terminal state is
// also reported as an error so the CLI can exit non-zero.
func (uc *VerifyDeployment) Run(ctx context.Context, contractName, networkName string) (*models.Deployment, error) {
	network, err := domain.ResolveNetwork(networkName)
	if err != nil {
		return nil, err
	}

	deployment, err := uc.deployments.GetDeployment(ctx, network.Name)
	if err != nil {
		return nil, err
	}
	if deployment.ContractName != contractName {
		return nil, fmt.Errorf("deployment record for %s is for contract %s, not %s",
			network.Name, deployment.ContractName, contractName)
	}

	settings, err := uc.artifacts.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read compilation settings: %w", err)
	}
	if settings.ContractName != contractName {
		// The settings file is shared and last-writer-wins; a later compile
		// of another contract leaves stale settings here.
		uc.log.Warn("compilation settings are for a different contract",
			"settings", settings.ContractName, "verifying", contractName)
	}

	if !solcVersionPattern.MatchString(settings.SolcVersion) {
		uc.log.Warn("compiler version is not commit-qualified; the explorer will likely reject it",
			"version", settings.SolcVersion,
			"hint", "recompile with a solc release build so the version reads like 0.8.19+commit.7dd6d404")
	}

	// Integrity gate: the compiled runtime bytecode must be contained in the
	// code live at the recorded address, before anything is sent to the
	// explorer. Containment (not equality) tolerates appended metadata and
	// immutable references.
	rpcURL, err := uc.cfg.RPCURL(network)
	if err != nil {
		return nil, err
	}
	liveCode, err := uc.code.CodeAt(ctx, rpcURL, deployment.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployed bytecode: %w", err)
	}
	compiled := strings.TrimPrefix(settings.DeployedBytecode, "0x")
	if compiled == "" || !strings.Contains(liveCode, compiled) {
		return nil, fmt.Errorf("%w: code at %s does not contain the compiled bytecode for %s",
			domain.ErrBytecodeMismatch, deployment.ContractAddress, contractName)
	}

	encodedArgs := deployment.EncodedConstructorArgs
	if encodedArgs == "" && len(deployment.ConstructorArgs) > 0 {
		encodedArgs, err = uc.encoder.EncodeConstructorArgs(deployment.ConstructorTypes, deployment.ConstructorArgs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode constructor args: %w", err)
		}
	}

	source, err := uc.sources.ContractSource(ctx, contractName)
	if err != nil {
		return nil, err
	}

	apiKey, err := uc.cfg.APIKey(network)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ProgressEvent{
		Message: fmt.Sprintf("Submitting %s source to %s...", contractName, network.ExplorerAPIURL),
		Spinner: true,
	})
	defer uc.progress.Done()

	compilerVersion := "v" + settings.SolcVersion
	guid, err := uc.explorer.SubmitSource(ctx, SubmitRequest{
		APIURL:              network.ExplorerAPIURL,
		APIKey:              apiKey,
		ContractAddress:     deployment.ContractAddress,
		ContractName:        contractName,
		SourceCode:          source,
		CompilerVersion:     compilerVersion,
		OptimizationEnabled: settings.Optimization.Enabled,
		OptimizationRuns:    settings.Optimization.Runs,
		ConstructorArgs:     encodedArgs,
		LicenseCode:         domain.LicenseCode(settings.License),
	})
	if err != nil {
		return deployment, err
	}

	// The submitted state is persisted before polling begins so an external
	// reader can observe it while the poll loop runs.
	deployment.Verification = &models.VerificationInfo{
		Status:          models.VerificationStatusSubmitted,
		GUID:            guid,
		SubmittedAt:     uc.clock.Now().UTC(),
		CompilerVersion: compilerVersion,
		ExplorerURL:     network.AddressURL(deployment.ContractAddress),
	}
	uc.persistVerification(ctx, deployment)

	return deployment, uc.poll(ctx, network, apiKey, deployment)
}

// poll drives the verification state machine: submitted is the initial state,
// verified/failed/timeout are terminal, and every transition is written back
// before the poller returns or loops.
func (uc *VerifyDeployment) poll(ctx context.Context, network domain.Network, apiKey string, deployment *models.Deployment) error {
	for attempt := 1; attempt <= uc.retry.MaxAttempts; attempt++ {
		if err := uc.clock.Sleep(ctx, uc.retry.Interval); err != nil {
			return err
		}

		uc.progress.OnProgress(ProgressEvent{
			Message: fmt.Sprintf("Checking verification status (%d/%d)...", attempt, uc.retry.MaxAttempts),
			Spinner: true,
		})

		result, err := uc.explorer.CheckStatus(ctx, network.ExplorerAPIURL, apiKey, deployment.Verification.GUID)
		if err != nil {
			// A transport hiccup is not a terminal answer; the attempt cap
			// bounds how long we keep trying.
			uc.log.Warn("status check failed", "attempt", attempt, "error", err)
			continue
		}

		switch {
		case result == "Pass - Verified":
			now := uc.clock.Now().UTC()
			deployment.Verification.Status = models.VerificationStatusVerified
			deployment.Verification.VerifiedAt = &now
			uc.persistVerification(ctx, deployment)
			uc.log.Info("contract verified",
				"contract", deployment.ContractName,
				"network", network.Name,
				"explorer", deployment.Verification.ExplorerURL,
			)
			return nil

		case strings.Contains(result, "Fail"):
			deployment.Verification.Status = models.VerificationStatusFailed
			deployment.Verification.FailureReason = result
			uc.persistVerification(ctx, deployment)
			return &domain.VerificationFailedError{Reason: result}
		}

		uc.log.Debug("verification pending", "attempt", attempt, "result", result)
	}

	deployment.Verification.Status = models.VerificationStatusTimeout
	uc.persistVerification(ctx, deployment)
	return &domain.VerificationTimeoutError{Attempts: uc.retry.MaxAttempts}
}

// persistVerification writes the record back. A storage failure here must
// never mask the verification outcome, so it is only logged.
func (uc *VerifyDeployment) persistVerification(ctx context.Context, deployment *models.Deployment) {
	if err := uc.deployments.SaveDeployment(ctx, deployment); err != nil {
		uc.log.Warn("failed to persist verification status",
			"network", deployment.Network,
			"status", deployment.Verification.Status,
			"error", err,
		)
	}
}
