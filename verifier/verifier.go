// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/contracts"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
)

type ChainClient interface {
	contracts.Transactor
	Name() string
	BlockchainID() common.Hash
	WaitForConfirmation(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	Balance(ctx context.Context, account common.Address) (*big.Int, error)
	TraceTransaction(ctx context.Context, hash common.Hash) (string, error)
}

// Relayer delivers the cross-chain message emitted in the source receipt. When
// waitForAcceptance is set the returned receipt is the confirmed delivery on
// the destination chain.
type Relayer interface {
	RelayMessage(ctx context.Context, receipt *types.Receipt, from string, to string, waitForAcceptance bool) (*types.Receipt, error)
}

// DeliveryError is implemented by relay errors that know the destination
// transaction that failed to deliver the message.
type DeliveryError interface {
	error
	DeliveryTxHash() common.Hash
}

type Metrics interface {
	StartHop(hopID string)
	EndHop(hopID string, from string, to string)
	TrackScenario(name string, state string)
}

type Verifier struct {
	relayer Relayer
	metrics Metrics
}

func NewVerifier(relayer Relayer, metrics Metrics) *Verifier {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Verifier{
		relayer: relayer,
		metrics: metrics,
	}
}

// SendFromBridge sends amount through the bridge and returns the send receipt
// with the amount expected to be bridged. The expectation is computed locally
// and cross-checked against the emitted TokensSent event.
func (v *Verifier) SendFromBridge(
	ctx context.Context,
	chain ChainClient,
	bridge Bridge,
	request TransferRequest,
	amount *big.Int,
	senderKey *ecdsa.PrivateKey,
) (TransferReceipt, *big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return TransferReceipt{}, nil, &SubmissionFailure{Chain: chain.Name(), Err: ErrInvalidAmount}
	}

	input := request.input()
	expected := new(big.Int).Set(amount)
	if bridge.DeductPrimaryFee {
		expected.Sub(expected, input.PrimaryFee)
	}

	err := v.approve(ctx, chain, bridge, input, amount, senderKey)
	if err != nil {
		return TransferReceipt{}, nil, err
	}

	var bridgeContract *contracts.BridgeContract
	if bridge.IsNative() {
		bridgeContract = contracts.NewNativeBridgeContract(chain, bridge.Address)
	} else {
		bridgeContract = contracts.NewERC20BridgeContract(chain, bridge.Address)
	}
	receipt, err := bridgeContract.Send(ctx, senderKey, input, new(big.Int).Set(amount))
	if err != nil {
		return TransferReceipt{}, nil, submissionFailure(chain.Name(), receipt, err)
	}

	log.Debug().Str("chain", chain.Name()).Msgf("Sent %s through bridge %s in tx %s", amount, bridge.Address.Hex(), receipt.TxHash.Hex())

	event, err := events.FirstEvent(receipt, bridge.Address, events.ParseTokensSent)
	if err != nil {
		return TransferReceipt{}, nil, &EventNotFound{
			Chain:  chain.Name(),
			Event:  "TokensSent",
			TxHash: receipt.TxHash,
			Err:    ignoreNotFound(err),
		}
	}

	if event.Input.Recipient != request.Recipient {
		return TransferReceipt{}, nil, &InvariantViolation{
			Chain:    chain.Name(),
			Field:    "TokensSent.recipient",
			Expected: request.Recipient.Hex(),
			Actual:   event.Input.Recipient.Hex(),
		}
	}
	if event.Amount.Cmp(expected) != 0 {
		return TransferReceipt{}, nil, &InvariantViolation{
			Chain:    chain.Name(),
			Field:    "TokensSent.amount",
			Expected: expected,
			Actual:   event.Amount,
		}
	}

	return TransferReceipt{
		Chain:   chain.Name(),
		TxHash:  receipt.TxHash,
		Receipt: receipt,
	}, expected, nil
}

// approve grants the bridge the ERC20 allowances the send pulls from the sender
func (v *Verifier) approve(
	ctx context.Context,
	chain ChainClient,
	bridge Bridge,
	input events.SendTokensInput,
	amount *big.Int,
	senderKey *ecdsa.PrivateKey,
) error {
	allowances := make(map[common.Address]*big.Int)
	if !bridge.IsNative() {
		allowances[bridge.Token] = new(big.Int).Set(amount)
	}
	if input.FeeTokenAddress != (common.Address{}) && input.PrimaryFee.Sign() > 0 {
		allowance, ok := allowances[input.FeeTokenAddress]
		if !ok {
			allowance = new(big.Int)
			allowances[input.FeeTokenAddress] = allowance
		}
		allowance.Add(allowance, input.PrimaryFee)
	}

	for token, allowance := range allowances {
		receipt, err := contracts.NewERC20Contract(chain, token).Approve(ctx, senderKey, bridge.Address, allowance)
		if err != nil {
			return submissionFailure(chain.Name(), receipt, fmt.Errorf("failed approving %s: %w", token.Hex(), err))
		}
	}
	return nil
}

// Relay delivers the message emitted in receipt from one chain to the other.
// On failure the trace of the stuck transaction is attached to the returned
// RelayFailure.
func (v *Verifier) Relay(
	ctx context.Context,
	receipt TransferReceipt,
	from ChainClient,
	to ChainClient,
	waitForAcceptance bool,
) (TransferReceipt, error) {
	hopID := fmt.Sprintf("%s-%s", receipt.TxHash.Hex(), to.Name())
	v.metrics.StartHop(hopID)

	delivered, err := v.relayer.RelayMessage(ctx, receipt.Receipt, from.Name(), to.Name(), waitForAcceptance)
	if err == nil && delivered == nil {
		err = fmt.Errorf("relayer returned no delivery receipt")
	}
	if err != nil {
		return TransferReceipt{}, v.relayFailure(ctx, receipt, from, to, err)
	}
	v.metrics.EndHop(hopID, from.Name(), to.Name())

	log.Debug().Msgf("Relayed tx %s from %s to %s in tx %s", receipt.TxHash.Hex(), from.Name(), to.Name(), delivered.TxHash.Hex())

	return TransferReceipt{
		Chain:   to.Name(),
		TxHash:  delivered.TxHash,
		Receipt: delivered,
	}, nil
}

func (v *Verifier) relayFailure(ctx context.Context, receipt TransferReceipt, from ChainClient, to ChainClient, err error) error {
	traced := from
	hash := receipt.TxHash

	var deliveryErr DeliveryError
	if errors.As(err, &deliveryErr) && deliveryErr.DeliveryTxHash() != (common.Hash{}) {
		traced = to
		hash = deliveryErr.DeliveryTxHash()
	}

	trace, traceErr := traced.TraceTransaction(ctx, hash)
	if traceErr != nil {
		log.Warn().Err(traceErr).Str("chain", traced.Name()).Msgf("Failed tracing tx %s", hash.Hex())
		trace = hash.Hex()
	}

	log.Error().Err(err).Str("chain", traced.Name()).Str("trace", trace).Msgf("Relay from %s to %s failed", from.Name(), to.Name())
	return &RelayFailure{
		From:   from.Name(),
		To:     to.Name(),
		TxHash: hash,
		Trace:  trace,
		Err:    err,
	}
}

// VerifyWithdrawal checks the first TokensWithdrawn event the bridge emitted
// in the receipt against the expected recipient and amount.
func (v *Verifier) VerifyWithdrawal(
	ctx context.Context,
	chain ChainClient,
	bridge Bridge,
	receipt TransferReceipt,
	expectedRecipient common.Address,
	expectedAmount *big.Int,
) error {
	event, err := events.FirstEvent(receipt.Receipt, bridge.Address, events.ParseTokensWithdrawn)
	if err != nil {
		return &EventNotFound{
			Chain:  chain.Name(),
			Event:  "TokensWithdrawn",
			TxHash: receipt.TxHash,
			Err:    ignoreNotFound(err),
		}
	}

	return checkTransfer(chain.Name(), "TokensWithdrawn", event.Recipient, event.Amount, expectedRecipient, expectedAmount)
}

// VerifyRouted checks the first TokensRouted event emitted by the home bridge
// while forwarding a multi-hop transfer.
func (v *Verifier) VerifyRouted(
	ctx context.Context,
	chain ChainClient,
	bridge Bridge,
	receipt TransferReceipt,
	expectedRecipient common.Address,
	expectedAmount *big.Int,
) error {
	event, err := events.FirstEvent(receipt.Receipt, bridge.Address, events.ParseTokensRouted)
	if err != nil {
		return &EventNotFound{
			Chain:  chain.Name(),
			Event:  "TokensRouted",
			TxHash: receipt.TxHash,
			Err:    ignoreNotFound(err),
		}
	}

	return checkTransfer(chain.Name(), "TokensRouted", event.Input.Recipient, event.Amount, expectedRecipient, expectedAmount)
}

// VerifyScaling compares the expected scaling of a hop with the token
// multiplier configured on the spoke bridge. Scaling towards the spoke
// multiplies when the spoke multiplies, scaling towards home divides.
func (v *Verifier) VerifyScaling(
	ctx context.Context,
	spoke ChainClient,
	bridge Bridge,
	expected Scaling,
	receivingOnSpoke bool,
) error {
	bridgeContract := contracts.NewNativeBridgeContract(spoke, bridge.Address)
	multiplier, err := bridgeContract.TokenMultiplier(ctx)
	if err != nil {
		return err
	}

	expectedMultiplier := big.NewInt(1)
	if !expected.IsIdentity() {
		expectedMultiplier = expected.Multiplier
	}
	if multiplier.Cmp(expectedMultiplier) != 0 {
		return &InvariantViolation{
			Chain:    spoke.Name(),
			Field:    "tokenMultiplier",
			Expected: expectedMultiplier,
			Actual:   multiplier,
		}
	}
	if expected.IsIdentity() {
		return nil
	}

	multiplyOnSpoke, err := bridgeContract.MultiplyOnSpoke(ctx)
	if err != nil {
		return err
	}
	if receivingOnSpoke {
		expected = expected.Inverse()
	}
	expectedMultiplyOnSpoke := expected.MultiplyOnReceive
	if multiplyOnSpoke != expectedMultiplyOnSpoke {
		return &InvariantViolation{
			Chain:    spoke.Name(),
			Field:    "multiplyOnSpoke",
			Expected: expectedMultiplyOnSpoke,
			Actual:   multiplyOnSpoke,
		}
	}
	return nil
}

func (v *Verifier) VerifyCollateralized(ctx context.Context, chain ChainClient, bridge Bridge) error {
	collateralized, err := contracts.NewNativeBridgeContract(chain, bridge.Address).IsCollateralized(ctx)
	if err != nil {
		return err
	}

	if !collateralized {
		return &InvariantViolation{
			Chain:    chain.Name(),
			Field:    "isCollateralized",
			Expected: true,
			Actual:   false,
		}
	}
	return nil
}

// Balance returns the native balance of account, or its ERC20 balance when
// token is set.
func (v *Verifier) Balance(ctx context.Context, chain ChainClient, token common.Address, account common.Address) (*big.Int, error) {
	if token == (common.Address{}) {
		return chain.Balance(ctx, account)
	}

	return contracts.NewERC20Contract(chain, token).BalanceOf(ctx, account)
}

func checkTransfer(
	chain string,
	event string,
	recipient common.Address,
	amount *big.Int,
	expectedRecipient common.Address,
	expectedAmount *big.Int,
) error {
	if recipient != expectedRecipient {
		return &InvariantViolation{
			Chain:    chain,
			Field:    event + ".recipient",
			Expected: expectedRecipient.Hex(),
			Actual:   recipient.Hex(),
		}
	}

	if expectedAmount == nil || amount.Cmp(expectedAmount) != 0 {
		return &InvariantViolation{
			Chain:    chain,
			Field:    event + ".amount",
			Expected: expectedAmount,
			Actual:   amount,
		}
	}
	return nil
}

func submissionFailure(chain string, receipt *types.Receipt, err error) error {
	var txHash common.Hash
	if receipt != nil {
		txHash = receipt.TxHash
	}

	return &SubmissionFailure{
		Chain:  chain,
		TxHash: txHash,
		Err:    err,
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, events.ErrEventNotFound) {
		return nil
	}
	return err
}

type nopMetrics struct{}

func (nopMetrics) StartHop(string)               {}
func (nopMetrics) EndHop(string, string, string) {}
func (nopMetrics) TrackScenario(string, string)  {}
