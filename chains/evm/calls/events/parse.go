// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package events

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/consts"
)

var (
	// ErrEventNotFound is returned when no log in a receipt matches the event
	ErrEventNotFound = errors.New("event not found")
	// ErrUnexpectedLog is returned by parsers for logs of a different event
	ErrUnexpectedLog = errors.New("unexpected log")
)

// FirstEvent returns the first log of the receipt, in emission order, that was
// emitted by emitter and parses as the requested event. A zero emitter matches
// any contract.
func FirstEvent[T any](receipt *types.Receipt, emitter common.Address, parse func(l types.Log) (*T, error)) (*T, error) {
	if receipt == nil {
		return nil, ErrEventNotFound
	}

	for _, l := range receipt.Logs {
		if l.Removed {
			continue
		}

		if emitter != (common.Address{}) && l.Address != emitter {
			continue
		}

		event, err := parse(*l)
		if errors.Is(err, ErrUnexpectedLog) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return event, nil
	}

	return nil, ErrEventNotFound
}

func ParseTokensSent(l types.Log) (*TokensSent, error) {
	if err := matchTopics(l, TokensSentSig, 3); err != nil {
		return nil, err
	}

	e := &TokensSent{}
	err := consts.NativeBridgeABI.UnpackIntoInterface(e, "TokensSent", l.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpacking TokensSent log: %w", err)
	}

	e.TeleporterMessageID = l.Topics[1]
	e.Sender = common.BytesToAddress(l.Topics[2].Bytes())
	return e, nil
}

func ParseTokensRouted(l types.Log) (*TokensRouted, error) {
	if err := matchTopics(l, TokensRoutedSig, 2); err != nil {
		return nil, err
	}

	e := &TokensRouted{}
	err := consts.NativeBridgeABI.UnpackIntoInterface(e, "TokensRouted", l.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpacking TokensRouted log: %w", err)
	}

	e.TeleporterMessageID = l.Topics[1]
	return e, nil
}

func ParseTokensWithdrawn(l types.Log) (*TokensWithdrawn, error) {
	if err := matchTopics(l, TokensWithdrawnSig, 2); err != nil {
		return nil, err
	}

	e := &TokensWithdrawn{}
	err := consts.NativeBridgeABI.UnpackIntoInterface(e, "TokensWithdrawn", l.Data)
	if err != nil {
		return nil, fmt.Errorf("failed unpacking TokensWithdrawn log: %w", err)
	}

	e.Recipient = common.BytesToAddress(l.Topics[1].Bytes())
	return e, nil
}

// ParseSendCrossChainMessage reads the message ID and destination from the
// indexed topics, the message body is not needed for relaying.
func ParseSendCrossChainMessage(l types.Log) (*SendCrossChainMessage, error) {
	if err := matchTopics(l, SendCrossChainMessageSig, 3); err != nil {
		return nil, err
	}

	return &SendCrossChainMessage{
		Messenger:               l.Address,
		MessageID:               l.Topics[1],
		DestinationBlockchainID: l.Topics[2],
	}, nil
}

func ParseReceiveCrossChainMessage(l types.Log) (*ReceiveCrossChainMessage, error) {
	if err := matchTopics(l, ReceiveCrossChainMessageSig, 4); err != nil {
		return nil, err
	}

	return &ReceiveCrossChainMessage{
		Messenger:          l.Address,
		MessageID:          l.Topics[1],
		SourceBlockchainID: l.Topics[2],
		Deliverer:          common.BytesToAddress(l.Topics[3].Bytes()),
		TxHash:             l.TxHash,
	}, nil
}

func matchTopics(l types.Log, sig EventSig, topics int) error {
	if len(l.Topics) == 0 || l.Topics[0] != sig.GetTopic() {
		return ErrUnexpectedLog
	}

	if len(l.Topics) < topics {
		return fmt.Errorf("log %s missing topics, expected %d got %d", l.TxHash.Hex(), topics, len(l.Topics))
	}

	return nil
}
