package chain

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// CodeReader fetches deployed bytecode over RPC.
type CodeReader struct {
	dial DialFunc
}

// NewCodeReader creates a code reader using the given dial function.
func NewCodeReader(dial DialFunc) *CodeReader {
	return &CodeReader{dial: dial}
}

// CodeAt returns the code at address as hex without the 0x prefix.
func (r *CodeReader) CodeAt(ctx context.Context, rpcURL string, address string) (string, error) {
	backend, err := r.dial(ctx, rpcURL)
	if err != nil {
		return "", err
	}

	code, err := backend.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch code at %s: %w", address, err)
	}

	return hex.EncodeToString(code), nil
}

var _ usecase.CodeReader = (*CodeReader)(nil)
