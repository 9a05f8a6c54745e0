package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// Fakes implementing the ports, shared across the use case tests.

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		PrivateKey: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		RPCURLs: map[string]string{
			"bsc-testnet": "http://localhost:8545",
		},
		APIKeys: map[domain.ExplorerFamily]string{
			domain.ExplorerFamilyBscscan:   "bsc-key",
			domain.ExplorerFamilyEtherscan: "eth-key",
		},
	}
}

type memDeployments struct {
	records  map[string]*models.Deployment
	saves    []models.VerificationStatus
	failSave bool
}

func newMemDeployments(records ...*models.Deployment) *memDeployments {
	m := &memDeployments{records: make(map[string]*models.Deployment)}
	for _, r := range records {
		m.records[r.Network] = r
	}
	return m
}

func (m *memDeployments) GetDeployment(ctx context.Context, network string) (*models.Deployment, error) {
	d, ok := m.records[network]
	if !ok {
		return nil, fmt.Errorf("%w: no deployment record for %s", domain.ErrDeploymentNotFound, network)
	}
	return d, nil
}

func (m *memDeployments) SaveDeployment(ctx context.Context, d *models.Deployment) error {
	if m.failSave {
		return fmt.Errorf("disk full")
	}
	m.records[d.Network] = d
	if d.Verification != nil {
		m.saves = append(m.saves, d.Verification.Status)
	} else {
		m.saves = append(m.saves, "")
	}
	return nil
}

func (m *memDeployments) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	var out []*models.Deployment
	for _, d := range m.records {
		out = append(out, d)
	}
	return out, nil
}

type memArtifacts struct {
	artifact *models.Artifact
	settings *models.CompilationSettings
}

func (m *memArtifacts) GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error) {
	if m.artifact == nil || m.artifact.ContractName != contractName {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, contractName)
	}
	return m.artifact, nil
}

func (m *memArtifacts) SaveArtifact(ctx context.Context, artifact *models.Artifact) error {
	m.artifact = artifact
	return nil
}

func (m *memArtifacts) GetSettings(ctx context.Context) (*models.CompilationSettings, error) {
	if m.settings == nil {
		return nil, fmt.Errorf("settings not found")
	}
	return m.settings, nil
}

func (m *memArtifacts) SaveSettings(ctx context.Context, settings *models.CompilationSettings) error {
	m.settings = settings
	return nil
}

type fakeSources struct {
	source string
	files  []SourceFile
}

func (f *fakeSources) ContractSource(ctx context.Context, contractName string) (string, error) {
	return f.source, nil
}

func (f *fakeSources) ListSources(ctx context.Context) ([]SourceFile, error) {
	return f.files, nil
}

type fakeCodeReader struct {
	code  string
	calls int
}

func (f *fakeCodeReader) CodeAt(ctx context.Context, rpcURL, address string) (string, error) {
	f.calls++
	return f.code, nil
}

type fakeEncoder struct{}

func (fakeEncoder) EncodeConstructorArgs(types []string, values []string) (string, error) {
	return "feedface", nil
}

// scriptedExplorer serves a fixed GUID and a scripted sequence of status
// results; attempts past the script return the last entry.
type scriptedExplorer struct {
	guid      string
	submitErr error
	results   []string

	submitCalls int
	statusCalls int
	lastSubmit  SubmitRequest
}

func (f *scriptedExplorer) SubmitSource(ctx context.Context, req SubmitRequest) (string, error) {
	f.submitCalls++
	f.lastSubmit = req
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.guid, nil
}

func (f *scriptedExplorer) CheckStatus(ctx context.Context, apiURL, apiKey, guid string) (string, error) {
	i := f.statusCalls
	f.statusCalls++
	if len(f.results) == 0 {
		return "Pending in queue", nil
	}
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i], nil
}

// fakeClock advances instantly and counts sleeps.
type fakeClock struct {
	sleeps int
	now    time.Time
}

func (c *fakeClock) Now() time.Time {
	if c.now.IsZero() {
		return time.Unix(1700000000, 0)
	}
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps++
	return ctx.Err()
}

type fakeDeployer struct {
	result *DeployResult
	err    error
	calls  int
}

func (f *fakeDeployer) Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
