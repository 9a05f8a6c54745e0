package chain

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// receiptPollInterval paces the confirmation wait after the creation
// transaction is sent.
const receiptPollInterval = 2 * time.Second

// Backend is the slice of the Ethereum client the deployer needs.
// *ethclient.Client satisfies it; tests inject a stub.
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// DialFunc opens a Backend for an RPC endpoint.
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// Dial connects with ethclient.
func Dial(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return client, nil
}

// Deployer submits contract-creation transactions through go-ethereum.
type Deployer struct {
	dial  DialFunc
	codec *Codec
	clock usecase.Clock
	log   *slog.Logger
}

// NewDeployer creates a deployer using the given dial function.
func NewDeployer(dial DialFunc, codec *Codec, clock usecase.Clock, log *slog.Logger) *Deployer {
	return &Deployer{dial: dial, codec: codec, clock: clock, log: log}
}

// Deploy creates the contract and blocks until the transaction is mined.
func (d *Deployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployResult, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(req.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid private key: %v", domain.ErrNoCredentialConfigured, err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	backend, err := d.dial(ctx, req.RPCURL)
	if err != nil {
		return nil, err
	}

	// Any non-zero balance passes; gas estimation is the real backstop.
	balance, err := backend.BalanceAt(ctx, from, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query deployer balance: %w", err)
	}
	if balance.Sign() == 0 {
		return nil, fmt.Errorf("%w: deployer %s has zero balance", domain.ErrInsufficientFunds, from.Hex())
	}

	// The record must carry the endpoint's actual chain id, not the one the
	// network label implies.
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}

	constructorTypes, encodedArgs, err := d.encodeConstructor(req)
	if err != nil {
		return nil, err
	}

	data := append(common.FromHex(req.Artifact.Bytecode), encodedArgs...)

	estimate, err := backend.EstimateGas(ctx, ethereum.CallMsg{From: from, Data: data})
	if err != nil {
		return nil, fmt.Errorf("gas estimation failed: %w", err)
	}
	gasLimit := gasWithMargin(estimate)

	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	tx := types.NewContractCreation(nonce, new(big.Int), gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send creation transaction: %w", err)
	}

	d.log.Info("creation transaction sent",
		"tx", signed.Hash().Hex(), "gasLimit", gasLimit, "nonce", nonce)

	receipt, err := d.waitMined(ctx, backend, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: tx %s", domain.ErrTransactionReverted, signed.Hash().Hex())
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = crypto.CreateAddress(from, nonce)
	}

	return &usecase.DeployResult{
		ContractAddress:        address.Hex(),
		TxHash:                 signed.Hash().Hex(),
		DeployerAddress:        from.Hex(),
		ChainID:                chainID.Uint64(),
		ConstructorTypes:       constructorTypes,
		EncodedConstructorArgs: hex.EncodeToString(encodedArgs),
	}, nil
}

// encodeConstructor derives the constructor parameter types from the
// artifact ABI and encodes the string arguments against them.
func (d *Deployer) encodeConstructor(req usecase.DeployRequest) ([]string, []byte, error) {
	parsed, err := abi.JSON(bytes.NewReader(req.Artifact.ABI))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid artifact ABI: %w", err)
	}

	constructorTypes := []string{}
	for _, input := range parsed.Constructor.Inputs {
		constructorTypes = append(constructorTypes, input.Type.String())
	}

	encodedHex, err := d.codec.EncodeConstructorArgs(constructorTypes, req.ConstructorArgs)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := hex.DecodeString(encodedHex)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode encoded constructor args: %w", err)
	}

	return constructorTypes, encoded, nil
}

// waitMined polls for the transaction receipt until it lands or the context
// expires.
func (d *Deployer) waitMined(ctx context.Context, backend Backend, txHash common.Hash) (*types.Receipt, error) {
	for {
		receipt, err := backend.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && err != ethereum.NotFound && !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		if err := d.clock.Sleep(ctx, receiptPollInterval); err != nil {
			return nil, fmt.Errorf("%w: tx %s: %v", domain.ErrTransactionTimeout, txHash.Hex(), err)
		}
	}
}

// gasWithMargin applies the fixed +20% safety margin: integer multiply then
// floor divide, so the limit is always >= the estimate.
func gasWithMargin(estimate uint64) uint64 {
	return estimate * 120 / 100
}

var _ usecase.ContractDeployer = (*Deployer)(nil)
