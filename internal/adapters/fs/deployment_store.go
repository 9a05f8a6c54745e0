package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// DeploymentStore persists one deployment record per network under the
// canonical data directory, mirrored to a second location the front-end
// reads from.
type DeploymentStore struct {
	dataDir   string
	mirrorDir string
	log       *slog.Logger
}

// NewDeploymentStore creates a deployment store.
func NewDeploymentStore(dataDir, mirrorDir string, log *slog.Logger) *DeploymentStore {
	return &DeploymentStore{
		dataDir:   dataDir,
		mirrorDir: mirrorDir,
		log:       log,
	}
}

func (s *DeploymentStore) canonicalDir() string {
	return filepath.Join(s.dataDir, "deployments")
}

// GetDeployment reads the record for a network from the canonical store.
func (s *DeploymentStore) GetDeployment(ctx context.Context, network string) (*models.Deployment, error) {
	path := filepath.Join(s.canonicalDir(), network+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no deployment record for %s (run katapult deploy first)",
				domain.ErrDeploymentNotFound, network)
		}
		return nil, fmt.Errorf("failed to read deployment record for %s: %w", network, err)
	}

	var deployment models.Deployment
	if err := json.Unmarshal(data, &deployment); err != nil {
		return nil, fmt.Errorf("%w: deployment record for %s: %v", domain.ErrMalformedRecord, network, err)
	}
	if err := deployment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: deployment record for %s: %v", domain.ErrMalformedRecord, network, err)
	}

	return &deployment, nil
}

// SaveDeployment writes the record to the canonical store, then to the
// mirror. The two writes are not transactional; a crash in between leaves
// the mirror stale until the next save.
func (s *DeploymentStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if err := os.MkdirAll(s.canonicalDir(), 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}
	filename := deployment.Network + ".json"
	if err := writeJSON(filepath.Join(s.canonicalDir(), filename), deployment); err != nil {
		return err
	}

	if err := os.MkdirAll(s.mirrorDir, 0755); err != nil {
		return fmt.Errorf("failed to create mirror directory: %w", err)
	}
	return writeJSON(filepath.Join(s.mirrorDir, filename), deployment)
}

// ListDeployments reads every per-network record in the canonical store.
// Malformed files are skipped with a warning rather than failing the whole
// listing.
func (s *DeploymentStore) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	entries, err := os.ReadDir(s.canonicalDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read deployments directory: %w", err)
	}

	var deployments []*models.Deployment
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		network := strings.TrimSuffix(entry.Name(), ".json")
		deployment, err := s.GetDeployment(ctx, network)
		if err != nil {
			s.log.Warn("skipping unreadable deployment record", "network", network, "error", err)
			continue
		}
		deployments = append(deployments, deployment)
	}

	return deployments, nil
}

var _ usecase.DeploymentStore = (*DeploymentStore)(nil)
