package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrDeploymentNotFound is returned when no deployment record exists for a network
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrMalformedRecord is returned when a stored record fails validation at the read boundary
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownNetwork is returned for a network name outside the network table
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNoRPCConfigured is returned when the resolved network has no RPC URL
	ErrNoRPCConfigured = errors.New("no RPC URL configured")

	// ErrNoCredentialConfigured is returned when no signing key is configured
	ErrNoCredentialConfigured = errors.New("no signing credential configured")

	// ErrNoAPIKeyConfigured is returned when the explorer API key is missing
	ErrNoAPIKeyConfigured = errors.New("no explorer API key configured")

	// ErrInsufficientFunds is returned when the deployer balance is exactly zero
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransactionReverted is returned when the creation transaction reverted
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrTransactionTimeout is returned when the confirmation wait was cut short
	ErrTransactionTimeout = errors.New("transaction confirmation timed out")

	// ErrBytecodeMismatch is returned when on-chain code does not contain the compiled bytecode
	ErrBytecodeMismatch = errors.New("bytecode mismatch")
)

// VerificationRejectedError is returned when the explorer rejects a
// verification submission (status other than "1").
type VerificationRejectedError struct {
	Message string
	Result  string
}

func (e *VerificationRejectedError) Error() string {
	if e.Result != "" {
		return fmt.Sprintf("verification submission rejected: %s: %s", e.Message, e.Result)
	}
	return fmt.Sprintf("verification submission rejected: %s", e.Message)
}

// VerificationFailedError is returned when the explorer reports a terminal
// failure while polling. Reason carries the raw explorer message.
type VerificationFailedError struct {
	Reason string
}

func (e *VerificationFailedError) Error() string {
	return fmt.Sprintf("verification failed: %s", e.Reason)
}

// VerificationTimeoutError is returned when all poll attempts were exhausted
// without a terminal determination from the explorer.
type VerificationTimeoutError struct {
	Attempts int
}

func (e *VerificationTimeoutError) Error() string {
	return fmt.Sprintf("verification timed out after %d status checks", e.Attempts)
}
