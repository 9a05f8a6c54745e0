package chain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
	"github.com/trebuchet-org/katapult/internal/logging"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// Well-known development key; never use on a real network.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type stubBackend struct {
	balance     *big.Int
	chainID     *big.Int
	gasEstimate uint64
	receipt     *types.Receipt

	sent []*types.Transaction
}

func (b *stubBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return b.balance, nil
}

func (b *stubBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return b.chainID, nil
}

func (b *stubBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return b.gasEstimate, nil
}

func (b *stubBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *stubBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 0, nil
}

func (b *stubBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.sent = append(b.sent, tx)
	return nil
}

func (b *stubBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return b.receipt, nil
}

func (b *stubBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return nil, nil
}

type fakeClock struct{}

func (fakeClock) Now() time.Time                               { return time.Unix(1700000000, 0) }
func (fakeClock) Sleep(ctx context.Context, d time.Duration) error { return ctx.Err() }

func newTestDeployer(backend Backend) *Deployer {
	dial := func(ctx context.Context, rpcURL string) (Backend, error) {
		return backend, nil
	}
	return NewDeployer(dial, NewCodec(), fakeClock{}, logging.NewLogger())
}

func simpleStorageArtifact() *models.Artifact {
	return &models.Artifact{
		ContractName:     "SimpleStorage",
		ABI:              []byte(`[{"type":"function","name":"get","inputs":[],"outputs":[{"type":"uint256"}]}]`),
		Bytecode:         "0x6080604052348015600e575f5ffd5b50",
		DeployedBytecode: "0x6080604052",
	}
}

func TestGasWithMargin(t *testing.T) {
	tests := []struct {
		estimate uint64
		want     uint64
	}{
		{100, 120},
		{1, 1}, // floor division
		{5, 6},
		{21000, 25200},
		{333333, 399999},
	}

	for _, tt := range tests {
		got := gasWithMargin(tt.estimate)
		assert.Equal(t, tt.want, got)
		assert.GreaterOrEqual(t, got, tt.estimate, "limit must never fall below the estimate")
	}
}

func TestDeployZeroBalance(t *testing.T) {
	backend := &stubBackend{
		balance: big.NewInt(0),
		chainID: big.NewInt(97),
	}

	_, err := newTestDeployer(backend).Deploy(context.Background(), usecase.DeployRequest{
		RPCURL:     "http://localhost:8545",
		PrivateKey: testKey,
		Artifact:   simpleStorageArtifact(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Empty(t, backend.sent, "no transaction may be sent with zero balance")
}

func TestDeployNoConstructorArgs(t *testing.T) {
	contractAddr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	backend := &stubBackend{
		balance:     big.NewInt(1), // any non-zero balance passes
		chainID:     big.NewInt(97),
		gasEstimate: 100000,
		receipt: &types.Receipt{
			Status:          types.ReceiptStatusSuccessful,
			ContractAddress: contractAddr,
		},
	}

	result, err := newTestDeployer(backend).Deploy(context.Background(), usecase.DeployRequest{
		RPCURL:     "http://localhost:8545",
		PrivateKey: testKey,
		Artifact:   simpleStorageArtifact(),
	})

	require.NoError(t, err)
	assert.Equal(t, contractAddr.Hex(), result.ContractAddress)
	assert.Equal(t, uint64(97), result.ChainID)
	assert.Equal(t, []string{}, result.ConstructorTypes)
	assert.Empty(t, result.EncodedConstructorArgs)
	assert.NotEmpty(t, result.TxHash)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", result.DeployerAddress)

	require.Len(t, backend.sent, 1)
	assert.Equal(t, uint64(120000), backend.sent[0].Gas(), "estimate plus 20%")
	assert.Nil(t, backend.sent[0].To(), "contract creation has no recipient")
}

func TestDeployReverted(t *testing.T) {
	backend := &stubBackend{
		balance:     big.NewInt(1_000_000),
		chainID:     big.NewInt(97),
		gasEstimate: 50000,
		receipt:     &types.Receipt{Status: types.ReceiptStatusFailed},
	}

	_, err := newTestDeployer(backend).Deploy(context.Background(), usecase.DeployRequest{
		RPCURL:     "http://localhost:8545",
		PrivateKey: testKey,
		Artifact:   simpleStorageArtifact(),
	})

	assert.ErrorIs(t, err, domain.ErrTransactionReverted)
}

func TestDeployConstructorArityMismatch(t *testing.T) {
	artifact := simpleStorageArtifact()
	artifact.ABI = []byte(`[{"type":"constructor","inputs":[{"name":"initial","type":"uint256"}]}]`)

	backend := &stubBackend{
		balance: big.NewInt(1),
		chainID: big.NewInt(97),
	}

	_, err := newTestDeployer(backend).Deploy(context.Background(), usecase.DeployRequest{
		RPCURL:     "http://localhost:8545",
		PrivateKey: testKey,
		Artifact:   artifact,
	})

	require.Error(t, err)
	assert.ErrorContains(t, err, "expects 1 arguments")
	assert.Empty(t, backend.sent)
}
