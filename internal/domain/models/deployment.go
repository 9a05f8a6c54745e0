package models

import (
	"fmt"
	"time"
)

// VerificationStatus represents the verification status of a deployment
type VerificationStatus string

const (
	VerificationStatusSubmitted VerificationStatus = "submitted"
	VerificationStatusVerified  VerificationStatus = "verified"
	VerificationStatusFailed    VerificationStatus = "failed"
	VerificationStatusTimeout   VerificationStatus = "timeout"
)

// IsTerminal reports whether the status is final. There is no transition out
// of a terminal state; re-submitting replaces the whole VerificationInfo.
func (s VerificationStatus) IsTerminal() bool {
	switch s {
	case VerificationStatusVerified, VerificationStatusFailed, VerificationStatusTimeout:
		return true
	}
	return false
}

// VerificationInfo tracks an explorer verification submission for a deployment.
// Created when the submission is accepted, then mutated in place by the poller.
type VerificationInfo struct {
	Status          VerificationStatus `json:"status"`
	GUID            string             `json:"guid"`
	SubmittedAt     time.Time          `json:"submittedAt"`
	VerifiedAt      *time.Time         `json:"verifiedAt,omitempty"`
	CompilerVersion string             `json:"compilerVersion"`
	ExplorerURL     string             `json:"explorerUrl"`
	FailureReason   string             `json:"failureReason,omitempty"`
}

// Deployment is the record written after a successful contract deployment.
// One record exists per network; a later deployment to the same network
// overwrites the previous record.
type Deployment struct {
	ContractName     string    `json:"contractName"`
	ContractAddress  string    `json:"contractAddress"`
	DeploymentTxHash string    `json:"deploymentTxHash"`
	DeployerAddress  string    `json:"deployerAddress"`
	Network          string    `json:"network"`
	ChainID          uint64    `json:"chainId"`
	Timestamp        time.Time `json:"timestamp"`

	// Constructor arguments as passed on the command line, their ABI types,
	// and the ABI encoding without the 0x prefix (what the explorer expects).
	ConstructorArgs        []string `json:"constructorArgs"`
	ConstructorTypes       []string `json:"constructorTypes"`
	EncodedConstructorArgs string   `json:"encodedConstructorArgs"`

	Verification *VerificationInfo `json:"verification,omitempty"`
}

// Validate checks the fields a reader depends on. Records are validated at
// the read boundary so a malformed file surfaces as one distinct error
// instead of missing-field failures downstream.
func (d *Deployment) Validate() error {
	if d.ContractName == "" {
		return fmt.Errorf("missing contractName")
	}
	if d.ContractAddress == "" {
		return fmt.Errorf("missing contractAddress")
	}
	if d.Network == "" {
		return fmt.Errorf("missing network")
	}
	if d.ChainID == 0 {
		return fmt.Errorf("missing chainId")
	}
	if len(d.ConstructorArgs) != len(d.ConstructorTypes) {
		return fmt.Errorf("constructorArgs/constructorTypes length mismatch: %d vs %d",
			len(d.ConstructorArgs), len(d.ConstructorTypes))
	}
	return nil
}

// GetDisplayName returns a human-friendly name for the deployment
func (d *Deployment) GetDisplayName() string {
	return fmt.Sprintf("%s/%s", d.Network, d.ContractName)
}
