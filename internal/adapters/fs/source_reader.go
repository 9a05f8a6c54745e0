package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// SourceReader reads Solidity sources from the contracts directory. The
// canonical source location for a contract is <contractsDir>/<Name>.sol.
type SourceReader struct {
	contractsDir string
}

// NewSourceReader creates a source reader rooted at contractsDir.
func NewSourceReader(contractsDir string) *SourceReader {
	return &SourceReader{contractsDir: contractsDir}
}

// ContractSource returns the full source text for a contract.
func (r *SourceReader) ContractSource(ctx context.Context, contractName string) (string, error) {
	path := filepath.Join(r.contractsDir, contractName+".sol")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("contract source not found: %s", path)
		}
		return "", fmt.Errorf("failed to read contract source: %w", err)
	}

	return string(data), nil
}

// ListSources returns every .sol file in the contracts directory, sorted by
// path for deterministic compile order.
func (r *SourceReader) ListSources(ctx context.Context) ([]usecase.SourceFile, error) {
	paths, err := filepath.Glob(filepath.Join(r.contractsDir, "*.sol"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan contracts directory: %w", err)
	}
	sort.Strings(paths)

	var files []usecase.SourceFile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, usecase.SourceFile{Path: path, Content: string(data)})
	}

	return files, nil
}

var _ usecase.SourceReader = (*SourceReader)(nil)
