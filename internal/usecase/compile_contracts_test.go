package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

type fakeCompiler struct {
	version   string
	artifacts map[string][]*models.Artifact
	errs      map[string]error
}

func (f *fakeCompiler) Version(ctx context.Context) (string, error) {
	return f.version, nil
}

func (f *fakeCompiler) Compile(ctx context.Context, sourcePath string, opt models.Optimization) ([]*models.Artifact, error) {
	if err := f.errs[sourcePath]; err != nil {
		return nil, err
	}
	return f.artifacts[sourcePath], nil
}

const simpleStorageSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.19;

contract SimpleStorage {
    uint256 private value;
}
`

func TestCompileWritesArtifactsAndSettings(t *testing.T) {
	sources := &fakeSources{files: []SourceFile{
		{Path: "contracts/SimpleStorage.sol", Content: simpleStorageSource},
	}}
	artifacts := &memArtifacts{}
	compiler := &fakeCompiler{
		version: "0.8.19+commit.7dd6d404",
		artifacts: map[string][]*models.Artifact{
			"contracts/SimpleStorage.sol": {
				{ContractName: "SimpleStorage", ABI: []byte(`[]`), Bytecode: "0x6080", DeployedBytecode: "0x60"},
			},
		},
	}
	cfg := &config.RuntimeConfig{Optimization: models.Optimization{Enabled: true, Runs: 200}}

	uc := NewCompileContracts(cfg, sources, artifacts, compiler, &fakeClock{}, testLogger())
	result, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.8.19+commit.7dd6d404", result.SolcVersion)
	assert.Zero(t, result.Failed())
	require.Len(t, result.Files, 1)
	assert.Equal(t, []string{"SimpleStorage"}, result.Files[0].Contracts)

	require.NotNil(t, artifacts.artifact)
	assert.Equal(t, "SimpleStorage", artifacts.artifact.ContractName)

	settings := artifacts.settings
	require.NotNil(t, settings)
	assert.Equal(t, "SimpleStorage", settings.ContractName)
	assert.Equal(t, "0.8.19+commit.7dd6d404", settings.SolcVersion)
	assert.Equal(t, "^0.8.19", settings.Pragma)
	assert.Equal(t, "MIT", settings.License)
	assert.Equal(t, "0x60", settings.DeployedBytecode)
	assert.Equal(t, models.Optimization{Enabled: true, Runs: 200}, settings.Optimization)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), settings.CompilationTimestamp)
}

func TestCompileCollectsPerFileFailures(t *testing.T) {
	sources := &fakeSources{files: []SourceFile{
		{Path: "contracts/Broken.sol", Content: "contract"},
		{Path: "contracts/Good.sol", Content: simpleStorageSource},
	}}
	artifacts := &memArtifacts{}
	compiler := &fakeCompiler{
		version: "0.8.19+commit.7dd6d404",
		errs:    map[string]error{"contracts/Broken.sol": fmt.Errorf("ParserError: expected identifier")},
		artifacts: map[string][]*models.Artifact{
			"contracts/Good.sol": {
				{ContractName: "Good", ABI: []byte(`[]`), Bytecode: "0x6080"},
			},
		},
	}
	cfg := &config.RuntimeConfig{Optimization: models.Optimization{Enabled: true, Runs: 200}}

	uc := NewCompileContracts(cfg, sources, artifacts, compiler, &fakeClock{}, testLogger())
	result, err := uc.Run(context.Background())
	require.NoError(t, err, "per-file failures do not stop the run")

	assert.Equal(t, 1, result.Failed())
	require.Len(t, result.Files, 2)
	assert.Error(t, result.Files[0].Err)
	assert.NoError(t, result.Files[1].Err)
	assert.Equal(t, "Good", artifacts.artifact.ContractName, "later files still compile")
}

func TestCompileNoSources(t *testing.T) {
	cfg := &config.RuntimeConfig{ContractsDir: "/tmp/none"}
	uc := NewCompileContracts(cfg, &fakeSources{}, &memArtifacts{}, &fakeCompiler{}, &fakeClock{}, testLogger())

	_, err := uc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "no Solidity sources")
}
