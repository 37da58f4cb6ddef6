// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAmount = errors.New("bridged amount must be positive")

// SubmissionFailure is returned when a transaction could not be submitted
// or was reverted on-chain.
type SubmissionFailure struct {
	Chain  string
	TxHash common.Hash
	Err    error
}

func (e *SubmissionFailure) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("submission on %s failed: %s", e.Chain, e.Err)
	}
	return fmt.Sprintf("submission on %s failed in tx %s: %s", e.Chain, e.TxHash.Hex(), e.Err)
}

func (e *SubmissionFailure) Unwrap() error {
	return e.Err
}

// RelayFailure is returned when a cross-chain message could not be delivered
// or executed. Trace holds the debug trace of the failed transaction, or its
// hash when the chain can not be traced.
type RelayFailure struct {
	From   string
	To     string
	TxHash common.Hash
	Trace  string
	Err    error
}

func (e *RelayFailure) Error() string {
	return fmt.Sprintf("relay %s -> %s of tx %s failed: %s", e.From, e.To, e.TxHash.Hex(), e.Err)
}

func (e *RelayFailure) Unwrap() error {
	return e.Err
}

type EventNotFound struct {
	Chain  string
	Event  string
	TxHash common.Hash
	Err    error
}

func (e *EventNotFound) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("event %s not found in tx %s on %s: %s", e.Event, e.TxHash.Hex(), e.Chain, e.Err)
	}
	return fmt.Sprintf("event %s not found in tx %s on %s", e.Event, e.TxHash.Hex(), e.Chain)
}

func (e *EventNotFound) Unwrap() error {
	return e.Err
}

// InvariantViolation is returned when an on-chain value differs from the
// independently computed expectation.
type InvariantViolation struct {
	Chain    string
	Field    string
	Expected any
	Actual   any
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s mismatch on %s: expected %v, got %v", e.Field, e.Chain, e.Expected, e.Actual)
}
