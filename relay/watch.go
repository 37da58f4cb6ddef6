// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package relay

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
)

// watchForDelivery waits until the message is received on the destination,
// including deliveries that happened in the last lookback blocks.
func (c *Client) watchForDelivery(ctx context.Context, destination Endpoint, messageID common.Hash) (*types.Receipt, error) {
	latest, err := destination.Chain.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}
	fromBlock := new(big.Int).Sub(latest, new(big.Int).SetUint64(c.lookback))
	if fromBlock.Sign() < 0 {
		fromBlock = big.NewInt(0)
	}

	q := ethereum.FilterQuery{
		Addresses: []common.Address{destination.Messenger},
		Topics: [][]common.Hash{
			{events.ReceiveCrossChainMessageSig.GetTopic()},
			{messageID},
		},
	}
	subscriber := &backfillSubscriber{
		chain:     destination.Chain,
		fromBlock: fromBlock,
	}

	log.Debug().Msgf("Watching for delivery of message %s from block %s", messageID.Hex(), fromBlock)
	received := events.Decode(events.Logs(ctx, subscriber, q), events.ParseReceiveCrossChainMessage)
	for e, err := range received {
		if err != nil {
			return nil, err
		}
		if e.MessageID != messageID {
			continue
		}

		return c.waitForDelivery(ctx, destination, e.TxHash, messageID)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, fmt.Errorf("log subscription for message %s ended", messageID.Hex())
}

// backfillSubscriber replays logs matching the query since fromBlock into a
// live subscription, once the subscription is established.
type backfillSubscriber struct {
	chain     Chain
	fromBlock *big.Int
}

func (s *backfillSubscriber) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	sub, err := s.chain.SubscribeFilterLogs(ctx, q, ch)
	if err != nil {
		return nil, err
	}

	history := q
	history.FromBlock = s.fromBlock
	history.ToBlock = nil
	logs, err := s.chain.FilterLogs(ctx, history)
	if err != nil {
		sub.Unsubscribe()
		return nil, err
	}

	go func() {
		for _, l := range logs {
			select {
			case ch <- l:
			case <-ctx.Done():
				return
			}
		}
	}()
	return sub, nil
}
