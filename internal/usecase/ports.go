package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// ArtifactStore persists compiled artifacts and the shared compilation
// settings file.
type ArtifactStore interface {
	GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error)
	SaveArtifact(ctx context.Context, artifact *models.Artifact) error
	GetSettings(ctx context.Context) (*models.CompilationSettings, error)
	SaveSettings(ctx context.Context, settings *models.CompilationSettings) error
}

// SourceFile is one Solidity file found in the contracts directory.
type SourceFile struct {
	Path    string
	Content string
}

// SourceReader reads contract source text from the contracts directory.
type SourceReader interface {
	ContractSource(ctx context.Context, contractName string) (string, error)
	ListSources(ctx context.Context) ([]SourceFile, error)
}

// DeploymentStore persists deployment records, one per network, to the
// canonical location and a read mirror for presentation code.
type DeploymentStore interface {
	GetDeployment(ctx context.Context, network string) (*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	ListDeployments(ctx context.Context) ([]*models.Deployment, error)
}

// DeployRequest carries everything the chain adapter needs to create a
// contract.
type DeployRequest struct {
	RPCURL          string
	PrivateKey      string
	Artifact        *models.Artifact
	ConstructorArgs []string
}

// DeployResult is the outcome of a confirmed contract creation.
type DeployResult struct {
	ContractAddress        string
	TxHash                 string
	DeployerAddress        string
	ChainID                uint64
	ConstructorTypes       []string
	EncodedConstructorArgs string
}

// ContractDeployer submits a contract-creation transaction and waits for it
// to be mined.
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error)
}

// CodeReader fetches deployed bytecode from a network endpoint. The returned
// hex carries no 0x prefix.
type CodeReader interface {
	CodeAt(ctx context.Context, rpcURL string, address string) (string, error)
}

// ConstructorEncoder ABI-encodes constructor arguments. The returned hex
// carries no 0x prefix.
type ConstructorEncoder interface {
	EncodeConstructorArgs(types []string, values []string) (string, error)
}

// SubmitRequest is a source-verification submission to an explorer API.
type SubmitRequest struct {
	APIURL              string
	APIKey              string
	ContractAddress     string
	ContractName        string
	SourceCode          string
	CompilerVersion     string
	OptimizationEnabled bool
	OptimizationRuns    int
	ConstructorArgs     string
	LicenseCode         string
}

// ExplorerClient talks to an Etherscan-compatible explorer API.
type ExplorerClient interface {
	// SubmitSource posts a verification request and returns the submission GUID.
	SubmitSource(ctx context.Context, req SubmitRequest) (string, error)
	// CheckStatus returns the explorer's human-readable status string for a GUID.
	CheckStatus(ctx context.Context, apiURL, apiKey, guid string) (string, error)
}

// Compiler compiles a Solidity source file into artifacts.
type Compiler interface {
	Compile(ctx context.Context, sourcePath string, opt models.Optimization) ([]*models.Artifact, error)
	Version(ctx context.Context) (string, error)
}

// Clock abstracts time for the verification poller so tests can script it.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err in that case.
	Sleep(ctx context.Context, d time.Duration) error
}

// RetryPolicy is the fixed-interval, fixed-cap schedule used when polling the
// explorer for a verification result.
type RetryPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultRetryPolicy matches the explorer's expected pacing: 20 attempts,
// 3 seconds apart.
var DefaultRetryPolicy = RetryPolicy{Interval: 3 * time.Second, MaxAttempts: 20}

// ProgressEvent is a progress update emitted during long-running operations.
type ProgressEvent struct {
	Message string
	Spinner bool
}

// ProgressSink receives progress events.
type ProgressSink interface {
	OnProgress(event ProgressEvent)
	Done()
}

// NopProgress discards all progress events.
type NopProgress struct{}

func (NopProgress) OnProgress(ProgressEvent) {}
func (NopProgress) Done()                    {}
