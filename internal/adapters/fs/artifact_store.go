package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// SettingsFile is the shared compilation settings file, overwritten by the
// most recent compile of any contract.
const SettingsFile = "compilation-settings.json"

// ArtifactStore persists compiled artifacts as per-contract JSON files.
type ArtifactStore struct {
	artifactsDir string
}

// NewArtifactStore creates an artifact store rooted at artifactsDir.
func NewArtifactStore(artifactsDir string) *ArtifactStore {
	return &ArtifactStore{artifactsDir: artifactsDir}
}

// GetArtifact reads the artifact for a contract.
func (s *ArtifactStore) GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error) {
	path := filepath.Join(s.artifactsDir, contractName+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run katapult compile first)", domain.ErrArtifactNotFound, contractName)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", contractName, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: artifact %s: %v", domain.ErrMalformedRecord, contractName, err)
	}
	if artifact.ContractName == "" || artifact.Bytecode == "" {
		return nil, fmt.Errorf("%w: artifact %s is missing contractName or bytecode", domain.ErrMalformedRecord, contractName)
	}

	return &artifact, nil
}

// SaveArtifact writes an artifact file. Artifacts are immutable in spirit but
// a recompile overwrites the file.
func (s *ArtifactStore) SaveArtifact(ctx context.Context, artifact *models.Artifact) error {
	if err := os.MkdirAll(s.artifactsDir, 0755); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return writeJSON(filepath.Join(s.artifactsDir, artifact.ContractName+".json"), artifact)
}

// GetSettings reads the shared compilation settings file.
func (s *ArtifactStore) GetSettings(ctx context.Context) (*models.CompilationSettings, error) {
	path := filepath.Join(s.artifactsDir, SettingsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("compilation settings not found (run katapult compile first): %w", err)
		}
		return nil, fmt.Errorf("failed to read compilation settings: %w", err)
	}

	var settings models.CompilationSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: compilation settings: %v", domain.ErrMalformedRecord, err)
	}
	if settings.ContractName == "" || settings.SolcVersion == "" {
		return nil, fmt.Errorf("%w: compilation settings are missing contractName or solcVersion", domain.ErrMalformedRecord)
	}

	return &settings, nil
}

// SaveSettings overwrites the shared compilation settings file.
func (s *ArtifactStore) SaveSettings(ctx context.Context, settings *models.CompilationSettings) error {
	if err := os.MkdirAll(s.artifactsDir, 0755); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return writeJSON(filepath.Join(s.artifactsDir, SettingsFile), settings)
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

var _ usecase.ArtifactStore = (*ArtifactStore)(nil)
