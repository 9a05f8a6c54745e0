package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/trebuchet-org/katapult/internal/domain/models"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// versionPattern extracts the commit-qualified version from `solc --version`
// output, dropping the platform suffix.
var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+\+commit\.[0-9a-f]+)`)

// Compiler shells out to the solc binary.
type Compiler struct {
	binary string
	log    *slog.Logger
}

// NewCompiler creates a compiler adapter. binary defaults to "solc" when
// empty.
func NewCompiler(binary string, log *slog.Logger) *Compiler {
	if binary == "" {
		binary = "solc"
	}
	return &Compiler{binary: binary, log: log}
}

// Version returns the solc version in the commit-qualified form explorers
// expect (e.g. "0.8.19+commit.7dd6d404").
func (c *Compiler) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s --version: %w", c.binary, err)
	}

	match := versionPattern.FindString(string(out))
	if match == "" {
		return "", fmt.Errorf("could not parse solc version from %q", strings.TrimSpace(string(out)))
	}
	return match, nil
}

// combinedOutput mirrors solc's --combined-json structure.
type combinedOutput struct {
	Contracts map[string]combinedContract `json:"contracts"`
	Version   string                      `json:"version"`
}

type combinedContract struct {
	ABI        json.RawMessage `json:"abi"`
	Bin        string          `json:"bin"`
	BinRuntime string          `json:"bin-runtime"`
	Metadata   string          `json:"metadata"`
}

// Compile runs solc over one source file and returns an artifact per
// contract found in it.
func (c *Compiler) Compile(ctx context.Context, sourcePath string, opt models.Optimization) ([]*models.Artifact, error) {
	args := []string{"--combined-json", "abi,bin,bin-runtime,metadata"}
	if opt.Enabled {
		args = append(args, "--optimize", "--optimize-runs", strconv.Itoa(opt.Runs))
	}
	args = append(args, sourcePath)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug("running solc", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("solc failed for %s: %s", sourcePath, msg)
	}

	var out combinedOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse solc output for %s: %w", sourcePath, err)
	}

	var artifacts []*models.Artifact
	for key, contract := range out.Contracts {
		// Keys are "path/to/File.sol:ContractName".
		name := key
		if idx := strings.LastIndex(key, ":"); idx != -1 {
			name = key[idx+1:]
		}
		artifacts = append(artifacts, &models.Artifact{
			ContractName:     name,
			ABI:              contract.ABI,
			Bytecode:         "0x" + contract.Bin,
			DeployedBytecode: "0x" + contract.BinRuntime,
			Metadata:         contract.Metadata,
		})
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("solc produced no contracts for %s", sourcePath)
	}

	return artifacts, nil
}

var _ usecase.Compiler = (*Compiler)(nil)
