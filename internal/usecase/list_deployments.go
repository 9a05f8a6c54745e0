package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/trebuchet-org/katapult/internal/domain/models"
)

// ListDeployments reads every per-network deployment record.
type ListDeployments struct {
	deployments DeploymentStore
}

// NewListDeployments creates a new list use case
func NewListDeployments(deployments DeploymentStore) *ListDeployments {
	return &ListDeployments{deployments: deployments}
}

// ListResult holds the records plus a verification summary.
type ListResult struct {
	Deployments   []*models.Deployment
	VerifiedCount int
}

// Run returns all deployment records sorted by network name.
func (uc *ListDeployments) Run(ctx context.Context) (*ListResult, error) {
	deployments, err := uc.deployments.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(deployments, func(i, j int) bool {
		return deployments[i].Network < deployments[j].Network
	})

	verified := lo.CountBy(deployments, func(d *models.Deployment) bool {
		return d.Verification != nil && d.Verification.Status == models.VerificationStatusVerified
	})

	return &ListResult{
		Deployments:   deployments,
		VerifiedCount: verified,
	}, nil
}
