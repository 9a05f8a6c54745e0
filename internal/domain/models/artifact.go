package models

import (
	"encoding/json"
	"time"
)

// Artifact represents the compiled output for a single contract.
// Artifacts are immutable after write and keyed by contract name.
type Artifact struct {
	ContractName     string          `json:"contractName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
	Metadata         string          `json:"metadata"`
}

// Optimization holds the solc optimizer settings used for a compile.
type Optimization struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

// CompilationSettings records how the most recent compile was performed.
// The settings file is shared across contracts: every compile overwrites it
// with the last contract's settings.
type CompilationSettings struct {
	ContractName         string       `json:"contractName"`
	SolcVersion          string       `json:"solcVersion"`
	Optimization         Optimization `json:"optimization"`
	Pragma               string       `json:"pragma"`
	License              string       `json:"license"`
	DeployedBytecode     string       `json:"deployedBytecode"`
	CompilationTimestamp time.Time    `json:"compilationTimestamp"`
}
