package verifier_test

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
	"github.com/sprintertech/bridge-verifier/verifier"
)

type fakeBridge struct {
	address          common.Address
	multiplier       *big.Int
	multiplyOnSpoke  bool
	collateralized   bool
	deductPrimaryFee bool
}

// fakeChain keeps native balances and emits bridge events for sends
type fakeChain struct {
	name   string
	id     common.Hash
	bridge fakeBridge

	lock     sync.Mutex
	balances map[common.Address]*big.Int
	txCount  int
}

func newFakeChain(name string, bridge fakeBridge) *fakeChain {
	if bridge.multiplier == nil {
		bridge.multiplier = big.NewInt(1)
	}

	return &fakeChain{
		name:     name,
		id:       crypto.Keccak256Hash([]byte(name)),
		bridge:   bridge,
		balances: make(map[common.Address]*big.Int),
	}
}

func (c *fakeChain) Name() string {
	return c.name
}

func (c *fakeChain) BlockchainID() common.Hash {
	return c.id
}

func (c *fakeChain) Call(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if to != c.bridge.address {
		return nil, fmt.Errorf("no contract at %s", to.Hex())
	}

	switch method {
	case "tokenMultiplier":
		return []interface{}{c.bridge.multiplier}, nil
	case "multiplyOnSpoke":
		return []interface{}{c.bridge.multiplyOnSpoke}, nil
	case "isCollateralized":
		return []interface{}{c.bridge.collateralized}, nil
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}
}

func (c *fakeChain) SendTransaction(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	to common.Address,
	value *big.Int,
	contractABI abi.ABI,
	method string,
	args ...interface{},
) (*types.Receipt, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	txHash := c.nextHash()
	switch method {
	case "approve":
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHash}, nil
	case "send":
		if to != c.bridge.address {
			return &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: txHash}, fmt.Errorf("tx %s reverted", txHash.Hex())
		}
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}

	input := args[0].(events.SendTokensInput)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	c.debit(sender, value)

	bridged := new(big.Int).Set(value)
	if c.bridge.deductPrimaryFee {
		bridged.Sub(bridged, input.PrimaryFee)
	}

	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: txHash,
		Logs:   []*types.Log{tokensSentLog(c.bridge.address, txHash, sender, input, bridged)},
	}, nil
}

func (c *fakeChain) WaitForConfirmation(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return nil, fmt.Errorf("not supported")
}

func (c *fakeChain) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	balance, ok := c.balances[account]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(balance), nil
}

func (c *fakeChain) TraceTransaction(ctx context.Context, hash common.Hash) (string, error) {
	return "trace " + hash.Hex(), nil
}

func (c *fakeChain) credit(account common.Address, amount *big.Int) {
	balance, ok := c.balances[account]
	if !ok {
		balance = new(big.Int)
		c.balances[account] = balance
	}
	balance.Add(balance, amount)
}

func (c *fakeChain) debit(account common.Address, amount *big.Int) {
	c.credit(account, new(big.Int).Neg(amount))
}

func (c *fakeChain) nextHash() common.Hash {
	c.txCount++
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%s-%d", c.name, c.txCount)))
}

// fakeRelayer delivers messages the way the bridge contracts would, rescaling
// with the configured route scaling.
type fakeRelayer struct {
	chains map[string]*fakeChain
	routes map[string]verifier.Scaling
	fail   error
}

func newFakeRelayer(chains ...*fakeChain) *fakeRelayer {
	r := &fakeRelayer{
		chains: make(map[string]*fakeChain),
		routes: make(map[string]verifier.Scaling),
	}
	for _, c := range chains {
		r.chains[c.name] = c
	}
	return r
}

func (r *fakeRelayer) route(from string, to string, scaling verifier.Scaling) {
	r.routes[from+"->"+to] = scaling
}

func (r *fakeRelayer) RelayMessage(ctx context.Context, receipt *types.Receipt, from string, to string, waitForAcceptance bool) (*types.Receipt, error) {
	if r.fail != nil {
		return nil, r.fail
	}

	destination, ok := r.chains[to]
	if !ok {
		return nil, fmt.Errorf("unknown chain %s", to)
	}
	scaling, ok := r.routes[from+"->"+to]
	if !ok {
		scaling = verifier.NoScaling()
	}

	var input events.SendTokensInput
	var amount *big.Int
	if sent, err := events.FirstEvent(receipt, common.Address{}, events.ParseTokensSent); err == nil {
		input = sent.Input
		amount = sent.Amount
	} else if routed, err := events.FirstEvent(receipt, common.Address{}, events.ParseTokensRouted); err == nil {
		input = routed.Input
		amount = routed.Amount
	} else {
		return nil, fmt.Errorf("no message in tx %s", receipt.TxHash.Hex())
	}

	destination.lock.Lock()
	defer destination.lock.Unlock()

	txHash := destination.nextHash()
	received := scaling.Apply(amount)
	if common.Hash(input.DestinationBlockchainID) != destination.id {
		received.Sub(received, input.SecondaryFee)
		return &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			TxHash: txHash,
			Logs:   []*types.Log{tokensRoutedLog(destination.bridge.address, receipt.TxHash, input, received)},
		}, nil
	}

	destination.credit(input.Recipient, received)
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: txHash,
		Logs:   []*types.Log{tokensWithdrawnLog(destination.bridge.address, input.Recipient, received)},
	}, nil
}
