// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package events

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
)

// ErrSequenceConsumed is yielded when a log sequence is ranged over a second time
var ErrSequenceConsumed = errors.New("log sequence already consumed")

type LogSubscriber interface {
	SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
}

// Logs returns a lazy sequence of logs matching the query. The subscription is
// opened when iteration starts and released when the consumer stops, the
// context ends or the subscription fails; a subscription failure is yielded
// as the final element. The sequence can be ranged over only once.
func Logs(ctx context.Context, subscriber LogSubscriber, q ethereum.FilterQuery) iter.Seq2[types.Log, error] {
	var consumed atomic.Bool
	return func(yield func(types.Log, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield(types.Log{}, ErrSequenceConsumed)
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		logChn := make(chan types.Log)
		sub, err := subscriber.SubscribeFilterLogs(ctx, q, logChn)
		if err != nil {
			yield(types.Log{}, err)
			return
		}
		defer sub.Unsubscribe()

		for {
			select {
			case l := <-logChn:
				if !yield(l, nil) {
					return
				}
			case err, ok := <-sub.Err():
				if ok && err != nil {
					log.Warn().Err(err).Msgf("Log subscription failed")
					yield(types.Log{}, err)
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}
}

// Decode maps a log sequence onto decoded events. Logs of other events are
// skipped, decoding and subscription failures are passed through.
func Decode[T any](logs iter.Seq2[types.Log, error], parse func(l types.Log) (*T, error)) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for l, err := range logs {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			if l.Removed {
				continue
			}

			event, err := parse(l)
			if errors.Is(err, ErrUnexpectedLog) {
				continue
			}
			if !yield(event, err) {
				return
			}
		}
	}
}
