// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type State string

const (
	Init          State = "INIT"
	Sent          State = "SENT"
	RelayedToHome State = "RELAYED_TO_HOME"
	VerifiedHome  State = "VERIFIED_HOME"
	RelayedToDest State = "RELAYED_TO_DEST"
	VerifiedDest  State = "VERIFIED_DEST"
	Done          State = "DONE"
	Aborted       State = "ABORTED"
)

// Hop is a bridge endpoint a transfer passes through. Scaling converts the
// amount arriving from the previous hop into this hop's denomination.
type Hop struct {
	Chain   ChainClient
	Bridge  Bridge
	Scaling Scaling
	// Spoke marks hops on a remote chain, the home chain holds the original token
	Spoke bool
	// CheckScaling compares Scaling with the multiplier configured on-chain
	CheckScaling bool
}

// Scenario is a single one-shot transfer from Source to Destination,
// optionally routed through Home.
type Scenario struct {
	Name        string
	Source      Hop
	Home        *Hop
	Destination Hop

	Amount           *big.Int
	SenderKey        *ecdsa.PrivateKey
	Recipient        common.Address
	FeeToken         common.Address
	PrimaryFee       *big.Int
	SecondaryFee     *big.Int
	RequiredGasLimit *big.Int
	MultiHopFallback common.Address
	// RequireCollateral checks the source bridge is collateralized before sending
	RequireCollateral bool

	lock    sync.RWMutex
	started bool
	history []State
	err     error
}

func (s *Scenario) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if len(s.history) == 0 {
		return Init
	}
	return s.history[len(s.history)-1]
}

// History returns every state the scenario went through, starting with INIT
func (s *Scenario) History() []State {
	s.lock.RLock()
	defer s.lock.RUnlock()

	history := make([]State, 0, len(s.history)+1)
	history = append(history, Init)
	return append(history, s.history...)
}

func (s *Scenario) Err() error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.err
}

// ExpectedAmounts returns the amount expected to leave the source, to be
// routed by home (nil without a home hop) and to arrive at the destination.
func (s *Scenario) ExpectedAmounts() (sent *big.Int, routed *big.Int, final *big.Int) {
	sent = copyOrZero(s.Amount)
	if s.Source.Bridge.DeductPrimaryFee && s.PrimaryFee != nil {
		sent.Sub(sent, s.PrimaryFee)
	}

	arriving := sent
	if s.Home != nil {
		routed = s.Home.Scaling.Apply(sent)
		if s.SecondaryFee != nil {
			routed.Sub(routed, s.SecondaryFee)
		}
		arriving = routed
	}

	final = s.Destination.Scaling.Apply(arriving)
	return sent, routed, final
}

// Account is an address on a named chain
type Account struct {
	Chain   string
	Address common.Address
}

// Accounts returns the sender on the source chain and the recipient on the
// destination chain. Scenarios sharing an account must not run concurrently,
// the sender nonce and the recipient balance delta are not isolated.
func (s *Scenario) Accounts() []Account {
	accounts := make([]Account, 0, 2)
	if s.Source.Chain != nil && s.SenderKey != nil {
		accounts = append(accounts, Account{
			Chain:   s.Source.Chain.Name(),
			Address: crypto.PubkeyToAddress(s.SenderKey.PublicKey),
		})
	}
	if s.Destination.Chain != nil {
		accounts = append(accounts, Account{
			Chain:   s.Destination.Chain.Name(),
			Address: s.Recipient,
		})
	}
	return accounts
}

func (s *Scenario) request() TransferRequest {
	return TransferRequest{
		DestinationBlockchainID:  s.Destination.Chain.BlockchainID(),
		DestinationBridgeAddress: s.Destination.Bridge.Address,
		Recipient:                s.Recipient,
		FeeTokenAddress:          s.FeeToken,
		PrimaryFee:               s.PrimaryFee,
		SecondaryFee:             s.SecondaryFee,
		RequiredGasLimit:         s.RequiredGasLimit,
		MultiHopFallback:         s.MultiHopFallback,
	}
}

// Run executes the scenario once. Any failure aborts it and is returned, a
// scenario can not be resumed or run again.
func (s *Scenario) Run(ctx context.Context, v *Verifier) error {
	s.lock.Lock()
	if s.started {
		defer s.lock.Unlock()
		if !s.finished() {
			return fmt.Errorf("scenario %s is already running", s.Name)
		}
		return s.err
	}
	s.started = true
	s.lock.Unlock()

	l := log.With().Str("scenario", s.Name).Logger()
	v.metrics.TrackScenario(s.Name, string(Init))
	err := s.run(ctx, v, l)
	if err != nil {
		s.finish(l, Aborted, err)
		v.metrics.TrackScenario(s.Name, string(Aborted))
		return err
	}

	s.finish(l, Done, nil)
	v.metrics.TrackScenario(s.Name, string(Done))
	return nil
}

func (s *Scenario) run(ctx context.Context, v *Verifier, l zerolog.Logger) error {
	err := s.preflight(ctx, v)
	if err != nil {
		return err
	}

	destinationToken := s.Destination.Bridge.Token
	balanceBefore, err := v.Balance(ctx, s.Destination.Chain, destinationToken, s.Recipient)
	if err != nil {
		return err
	}

	sentAmount, routedAmount, finalAmount := s.ExpectedAmounts()
	l.Info().Msgf("Sending %s from %s to %s, expecting %s on arrival", s.Amount, s.Source.Chain.Name(), s.Destination.Chain.Name(), finalAmount)

	receipt, _, err := v.SendFromBridge(ctx, s.Source.Chain, s.Source.Bridge, s.request(), s.Amount, s.SenderKey)
	if err != nil {
		return err
	}
	s.transition(l, Sent)

	previous := s.Source.Chain
	if s.Home != nil {
		receipt, err = v.Relay(ctx, receipt, s.Source.Chain, s.Home.Chain, true)
		if err != nil {
			return err
		}
		s.transition(l, RelayedToHome)

		if s.Home.Bridge.Address != (common.Address{}) {
			err = v.VerifyRouted(ctx, s.Home.Chain, s.Home.Bridge, receipt, s.Recipient, routedAmount)
			if err != nil {
				return err
			}
		}
		s.transition(l, VerifiedHome)
		previous = s.Home.Chain
	}

	receipt, err = v.Relay(ctx, receipt, previous, s.Destination.Chain, true)
	if err != nil {
		return err
	}
	s.transition(l, RelayedToDest)

	err = v.VerifyWithdrawal(ctx, s.Destination.Chain, s.Destination.Bridge, receipt, s.Recipient, finalAmount)
	if err != nil {
		return err
	}
	s.transition(l, VerifiedDest)

	balanceAfter, err := v.Balance(ctx, s.Destination.Chain, destinationToken, s.Recipient)
	if err != nil {
		return err
	}
	delta := new(big.Int).Sub(balanceAfter, balanceBefore)
	if delta.Cmp(finalAmount) != 0 {
		return &InvariantViolation{
			Chain:    s.Destination.Chain.Name(),
			Field:    "recipient balance",
			Expected: finalAmount,
			Actual:   delta,
		}
	}

	l.Info().Msgf("Transfer of %s verified, %s sent and %s received", s.Amount, sentAmount, delta)
	return nil
}

// preflight checks the on-chain bridge configuration the expectations rely on
func (s *Scenario) preflight(ctx context.Context, v *Verifier) error {
	if s.RequireCollateral {
		err := v.VerifyCollateralized(ctx, s.Source.Chain, s.Source.Bridge)
		if err != nil {
			return err
		}
	}

	previous := s.Source
	hops := []Hop{s.Destination}
	if s.Home != nil {
		hops = []Hop{*s.Home, s.Destination}
	}
	for _, hop := range hops {
		if hop.CheckScaling {
			var err error
			if hop.Spoke {
				err = v.VerifyScaling(ctx, hop.Chain, hop.Bridge, hop.Scaling, true)
			} else {
				err = v.VerifyScaling(ctx, previous.Chain, previous.Bridge, hop.Scaling, false)
			}
			if err != nil {
				return err
			}
		}
		previous = hop
	}

	return nil
}

func (s *Scenario) transition(l zerolog.Logger, state State) {
	l.Debug().Msgf("Scenario %s: %s -> %s", s.Name, s.State(), state)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.history = append(s.history, state)
}

// finished expects the lock to be held
func (s *Scenario) finished() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	return last == Done || last == Aborted
}

func (s *Scenario) finish(l zerolog.Logger, state State, err error) {
	s.lock.Lock()
	s.err = err
	s.lock.Unlock()

	s.transition(l, state)
}
