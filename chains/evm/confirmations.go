// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
)

type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

type ConfirmationWatcher struct {
	client        ReceiptFetcher
	confirmations uint64
	blocktime     time.Duration
	timeout       time.Duration
}

func NewConfirmationWatcher(
	client ReceiptFetcher,
	confirmations uint64,
	blocktime time.Duration,
	timeout time.Duration,
) *ConfirmationWatcher {
	return &ConfirmationWatcher{
		client:        client,
		confirmations: confirmations,
		blocktime:     blocktime,
		timeout:       timeout,
	}
}

// WaitForConfirmation blocks until the transaction is mined and has the
// configured number of confirmations. A zero timeout waits until the context
// ends.
func (w *ConfirmationWatcher) WaitForConfirmation(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	for {
		receipt, err := w.client.TransactionReceipt(ctx, txHash)
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			log.Warn().Msgf("Error fetching transaction receipt %s: %v", txHash.Hex(), err)
		}
		if err != nil || receipt == nil {
			if err := sleep(ctx, w.blocktime); err != nil {
				return nil, fmt.Errorf("transaction %s not confirmed: %w", txHash.Hex(), err)
			}
			continue
		}

		if w.confirmations == 0 {
			return receipt, nil
		}

		head, err := w.client.BlockNumber(ctx)
		if err != nil {
			log.Warn().Msgf("Error fetching current block: %v", err)
			if err := sleep(ctx, w.blocktime); err != nil {
				return nil, fmt.Errorf("transaction %s not confirmed: %w", txHash.Hex(), err)
			}
			continue
		}

		remaining := w.confirmations
		block := receipt.BlockNumber.Uint64()
		if head > block {
			confirmations := head - block
			if confirmations >= w.confirmations {
				return receipt, nil
			}
			remaining -= confirmations
		}

		// nolint:gosec
		duration := time.Duration(uint64(w.blocktime) * remaining)
		log.Debug().Msgf("Waiting for tx %s for %s", txHash, duration)
		if err := sleep(ctx, duration); err != nil {
			return nil, fmt.Errorf("transaction %s not confirmed: %w", txHash.Hex(), err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
