// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	evmClient "github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"
)

var ErrTracingDisabled = errors.New("tracing disabled")

// Chain is a single EVM chain the verifier sends, relays and reads through.
type Chain struct {
	*ConfirmationWatcher

	name         string
	blockchainID common.Hash
	messenger    common.Address
	chainID      *big.Int
	tracing      bool

	client    evmClient.Client
	ethClient *ethclient.Client
	rpcClient *rpc.Client
	log       zerolog.Logger
}

// NewChain creates a chain from already dialed clients. Contract reads go
// through the sygma client, transactions and tracing through the rpc client.
func NewChain(config *EVMConfig, chainID *big.Int, client evmClient.Client, rpcClient *rpc.Client) *Chain {
	ethClient := ethclient.NewClient(rpcClient)
	return &Chain{
		ConfirmationWatcher: NewConfirmationWatcher(
			ethClient,
			config.GeneralChainConfig.BlockConfirmations,
			config.Blocktime,
			config.TransactionTimeout,
		),
		name:         config.GeneralChainConfig.Name,
		blockchainID: config.BlockchainID,
		messenger:    config.Messenger,
		chainID:      chainID,
		tracing:      config.Tracing,
		client:       client,
		ethClient:    ethClient,
		rpcClient:    rpcClient,
		log:          log.With().Str("chain", config.GeneralChainConfig.Name).Logger(),
	}
}

// DialChain connects to the configured endpoint and checks that it serves
// the configured chain ID.
func DialChain(ctx context.Context, config *EVMConfig) (*Chain, error) {
	client, err := evmClient.NewEVMClient(config.GeneralChainConfig.Endpoint, nil)
	if err != nil {
		return nil, err
	}

	rpcClient, err := rpc.DialContext(ctx, config.GeneralChainConfig.Endpoint)
	if err != nil {
		return nil, err
	}

	chainID, err := ethclient.NewClient(rpcClient).ChainID(ctx)
	if err != nil {
		return nil, err
	}
	if chainID.Uint64() != *config.GeneralChainConfig.Id {
		return nil, fmt.Errorf(
			"chain %s: endpoint serves chain ID %s, expected %d",
			config.GeneralChainConfig.Name, chainID, *config.GeneralChainConfig.Id,
		)
	}

	return NewChain(config, chainID, client, rpcClient), nil
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) BlockchainID() common.Hash {
	return c.blockchainID
}

// Messenger is the cross-chain messenger deployed on the chain
func (c *Chain) Messenger() common.Address {
	return c.messenger
}

func (c *Chain) Call(
	ctx context.Context,
	to common.Address,
	contractABI abi.ABI,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	contract := contracts.NewContract(to, contractABI, nil, c.client, nil)
	return contract.CallContract(method, args...)
}

// SendTransaction signs the call with the key and waits until it is
// confirmed. A reverted transaction is returned together with an error.
func (c *Chain) SendTransaction(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	to common.Address,
	value *big.Int,
	contractABI abi.ABI,
	method string,
	args ...interface{},
) (*types.Receipt, error) {
	opts, err := c.transactOpts(ctx, key, value)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(to, contractABI, c.ethClient, c.ethClient, c.ethClient)
	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Msgf("Sent %s to %s in tx %s", method, to.Hex(), tx.Hash().Hex())

	return c.confirm(ctx, tx.Hash())
}

func (c *Chain) DeployContract(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	contractABI abi.ABI,
	bytecode []byte,
	args ...interface{},
) (common.Address, *types.Receipt, error) {
	opts, err := c.transactOpts(ctx, key, nil)
	if err != nil {
		return common.Address{}, nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, contractABI, bytecode, c.ethClient, args...)
	if err != nil {
		return common.Address{}, nil, err
	}

	receipt, err := c.confirm(ctx, tx.Hash())
	if err != nil {
		return common.Address{}, receipt, err
	}
	return address, receipt, nil
}

func (c *Chain) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.ethClient.BalanceAt(ctx, account, nil)
}

// TraceTransaction returns the call trace of the transaction as JSON.
func (c *Chain) TraceTransaction(ctx context.Context, hash common.Hash) (string, error) {
	if !c.tracing {
		return "", ErrTracingDisabled
	}

	var trace json.RawMessage
	err := c.rpcClient.CallContext(ctx, &trace, "debug_traceTransaction", hash, map[string]interface{}{
		"tracer": "callTracer",
	})
	if err != nil {
		return "", err
	}
	return string(trace), nil
}

func (c *Chain) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.ethClient.SubscribeFilterLogs(ctx, q, ch)
}

func (c *Chain) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return c.ethClient.FilterLogs(ctx, q)
}

func (c *Chain) LatestBlock(ctx context.Context) (*big.Int, error) {
	head, err := c.ethClient.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(head), nil
}

func (c *Chain) transactOpts(ctx context.Context, key *ecdsa.PrivateKey, value *big.Int) (*bind.TransactOpts, error) {
	if key == nil {
		return nil, fmt.Errorf("missing signing key for chain %s", c.name)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value
	return opts, nil
}

func (c *Chain) confirm(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	receipt, err := c.WaitForConfirmation(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted", hash.Hex())
	}
	return receipt, nil
}
