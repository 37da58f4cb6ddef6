// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type EventSig string

func (es EventSig) GetTopic() common.Hash {
	return crypto.Keccak256Hash([]byte(es))
}

const (
	TokensSentSig      EventSig = "TokensSent(bytes32,address,(bytes32,address,address,address,uint256,uint256,uint256,address),uint256)"
	TokensRoutedSig    EventSig = "TokensRouted(bytes32,(bytes32,address,address,address,uint256,uint256,uint256,address),uint256)"
	TokensWithdrawnSig EventSig = "TokensWithdrawn(address,uint256)"

	SendCrossChainMessageSig    EventSig = "SendCrossChainMessage(bytes32,bytes32,(uint256,address,bytes32,address,uint256,address[],(uint256,address)[],bytes),(address,uint256))"
	ReceiveCrossChainMessageSig EventSig = "ReceiveCrossChainMessage(bytes32,bytes32,address,address,(uint256,address,bytes32,address,uint256,address[],(uint256,address)[],bytes))"
)

// SendTokensInput mirrors the tuple passed to a bridge send call.
// Field order follows the contract struct.
type SendTokensInput struct {
	DestinationBlockchainID  [32]byte       `abi:"destinationBlockchainID"`
	DestinationBridgeAddress common.Address `abi:"destinationBridgeAddress"`
	Recipient                common.Address `abi:"recipient"`
	FeeTokenAddress          common.Address `abi:"feeTokenAddress"`
	PrimaryFee               *big.Int       `abi:"primaryFee"`
	SecondaryFee             *big.Int       `abi:"secondaryFee"`
	RequiredGasLimit         *big.Int       `abi:"requiredGasLimit"`
	MultiHopFallback         common.Address `abi:"multiHopFallback"`
}

// TokensSent is emitted by the bridge a transfer leaves from
type TokensSent struct {
	TeleporterMessageID common.Hash
	Sender              common.Address
	Input               SendTokensInput `abi:"input"`
	Amount              *big.Int        `abi:"amount"`
}

// TokensRouted is emitted by the home bridge when it forwards a multi-hop
// transfer to its final destination
type TokensRouted struct {
	TeleporterMessageID common.Hash
	Input               SendTokensInput `abi:"input"`
	Amount              *big.Int        `abi:"amount"`
}

// TokensWithdrawn is emitted by the bridge that releases or mints the tokens
// to the recipient
type TokensWithdrawn struct {
	Recipient common.Address
	Amount    *big.Int `abi:"amount"`
}

type SendCrossChainMessage struct {
	Messenger               common.Address
	MessageID               common.Hash
	DestinationBlockchainID common.Hash
}

type ReceiveCrossChainMessage struct {
	Messenger          common.Address
	MessageID          common.Hash
	SourceBlockchainID common.Hash
	Deliverer          common.Address
	TxHash             common.Hash
}
