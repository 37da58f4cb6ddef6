package verifier_test

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/consts"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
)

func tokensSentLog(bridge common.Address, messageID common.Hash, sender common.Address, input events.SendTokensInput, amount *big.Int) *types.Log {
	data, err := consts.NativeBridgeABI.Events["TokensSent"].Inputs.NonIndexed().Pack(input, amount)
	if err != nil {
		panic(err)
	}

	return &types.Log{
		Address: bridge,
		Topics: []common.Hash{
			events.TokensSentSig.GetTopic(),
			messageID,
			common.BytesToHash(sender.Bytes()),
		},
		Data: data,
	}
}

func tokensRoutedLog(bridge common.Address, messageID common.Hash, input events.SendTokensInput, amount *big.Int) *types.Log {
	data, err := consts.NativeBridgeABI.Events["TokensRouted"].Inputs.NonIndexed().Pack(input, amount)
	if err != nil {
		panic(err)
	}

	return &types.Log{
		Address: bridge,
		Topics: []common.Hash{
			events.TokensRoutedSig.GetTopic(),
			messageID,
		},
		Data: data,
	}
}

func tokensWithdrawnLog(bridge common.Address, recipient common.Address, amount *big.Int) *types.Log {
	data, err := consts.NativeBridgeABI.Events["TokensWithdrawn"].Inputs.NonIndexed().Pack(amount)
	if err != nil {
		panic(err)
	}

	return &types.Log{
		Address: bridge,
		Topics: []common.Hash{
			events.TokensWithdrawnSig.GetTopic(),
			common.BytesToHash(recipient.Bytes()),
		},
		Data: data,
	}
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}
