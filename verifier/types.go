// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
)

// TransferRequest is the send input for a single bridge call
type TransferRequest struct {
	DestinationBlockchainID  common.Hash
	DestinationBridgeAddress common.Address
	Recipient                common.Address
	FeeTokenAddress          common.Address
	PrimaryFee               *big.Int
	SecondaryFee             *big.Int
	RequiredGasLimit         *big.Int
	MultiHopFallback         common.Address
}

func (r TransferRequest) input() events.SendTokensInput {
	return events.SendTokensInput{
		DestinationBlockchainID:  r.DestinationBlockchainID,
		DestinationBridgeAddress: r.DestinationBridgeAddress,
		Recipient:                r.Recipient,
		FeeTokenAddress:          r.FeeTokenAddress,
		PrimaryFee:               copyOrZero(r.PrimaryFee),
		SecondaryFee:             copyOrZero(r.SecondaryFee),
		RequiredGasLimit:         copyOrZero(r.RequiredGasLimit),
		MultiHopFallback:         r.MultiHopFallback,
	}
}

type TransferReceipt struct {
	Chain   string
	TxHash  common.Hash
	Receipt *types.Receipt
}

// Bridge is a token bridge endpoint deployed on a chain
type Bridge struct {
	Address common.Address
	// Token is the bridged ERC20, zero for native currency bridges
	Token common.Address
	// DeductPrimaryFee is set for bridges that take the primary fee out of
	// the sent amount instead of charging it separately.
	DeductPrimaryFee bool
}

func (b Bridge) IsNative() bool {
	return b.Token == (common.Address{})
}

func copyOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
