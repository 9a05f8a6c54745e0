package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/trebuchet-org/katapult/internal/config"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

var (
	pragmaPattern  = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
	licensePattern = regexp.MustCompile(`SPDX-License-Identifier:\s*(\S+)`)
)

// CompileContracts compiles every Solidity file in the contracts directory
// and writes artifacts plus the shared compilation settings file.
type CompileContracts struct {
	cfg       *config.RuntimeConfig
	sources   SourceReader
	artifacts ArtifactStore
	compiler  Compiler
	clock     Clock
	log       *slog.Logger
}

// NewCompileContracts creates a new compile use case
func NewCompileContracts(
	cfg *config.RuntimeConfig,
	sources SourceReader,
	artifacts ArtifactStore,
	compiler Compiler,
	clock Clock,
	log *slog.Logger,
) *CompileContracts {
	return &CompileContracts{
		cfg:       cfg,
		sources:   sources,
		artifacts: artifacts,
		compiler:  compiler,
		clock:     clock,
		log:       log,
	}
}

// CompiledFile is the per-source outcome of a compile run.
type CompiledFile struct {
	Path      string
	Contracts []string
	Err       error
}

// CompileResult summarizes a compile run.
type CompileResult struct {
	SolcVersion string
	Files       []CompiledFile
}

// Failed returns the number of source files that failed to compile.
func (r *CompileResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Run compiles all sources. Per-file failures are collected in the result;
// the error return is reserved for failures that stop the whole run.
func (uc *CompileContracts) Run(ctx context.Context) (*CompileResult, error) {
	files, err := uc.sources.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Solidity sources found in %s", uc.cfg.ContractsDir)
	}

	version, err := uc.compiler.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine solc version: %w", err)
	}

	result := &CompileResult{SolcVersion: version}

	for _, file := range files {
		compiled := CompiledFile{Path: file.Path}

		artifacts, err := uc.compiler.Compile(ctx, file.Path, uc.cfg.Optimization)
		if err != nil {
			compiled.Err = err
			uc.log.Error("compile failed", "file", file.Path, "error", err)
			result.Files = append(result.Files, compiled)
			continue
		}

		for _, artifact := range artifacts {
			if err := uc.artifacts.SaveArtifact(ctx, artifact); err != nil {
				compiled.Err = err
				break
			}
			compiled.Contracts = append(compiled.Contracts, artifact.ContractName)

			// The settings file is shared: each compiled contract overwrites
			// it, so it always describes the most recent compile.
			settings := &models.CompilationSettings{
				ContractName:         artifact.ContractName,
				SolcVersion:          version,
				Optimization:         uc.cfg.Optimization,
				Pragma:               firstMatch(pragmaPattern, file.Content),
				License:              firstMatch(licensePattern, file.Content),
				DeployedBytecode:     artifact.DeployedBytecode,
				CompilationTimestamp: uc.clock.Now().UTC(),
			}
			if err := uc.artifacts.SaveSettings(ctx, settings); err != nil {
				compiled.Err = err
				break
			}
		}

		result.Files = append(result.Files, compiled)
	}

	return result, nil
}

func firstMatch(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); len(m) == 2 {
		return m[1]
	}
	return ""
}
