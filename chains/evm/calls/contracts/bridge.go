// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/consts"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
)

// BridgeContract wraps a token bridge endpoint. Native bridges take the
// bridged amount as transaction value, ERC20 bridges as a call argument.
type BridgeContract struct {
	address common.Address
	native  bool
	abi     abi.ABI
	chain   Transactor
}

func NewNativeBridgeContract(chain Transactor, address common.Address) *BridgeContract {
	return &BridgeContract{
		address: address,
		native:  true,
		abi:     consts.NativeBridgeABI,
		chain:   chain,
	}
}

func NewERC20BridgeContract(chain Transactor, address common.Address) *BridgeContract {
	return &BridgeContract{
		address: address,
		abi:     consts.ERC20BridgeABI,
		chain:   chain,
	}
}

func (c *BridgeContract) Address() common.Address {
	return c.address
}

func (c *BridgeContract) Send(ctx context.Context, key *ecdsa.PrivateKey, input events.SendTokensInput, amount *big.Int) (*types.Receipt, error) {
	if c.native {
		return c.chain.SendTransaction(ctx, key, c.address, amount, c.abi, "send", input)
	}

	return c.chain.SendTransaction(ctx, key, c.address, big.NewInt(0), c.abi, "send", input, amount)
}

func (c *BridgeContract) TokenMultiplier(ctx context.Context) (*big.Int, error) {
	res, err := c.chain.Call(ctx, c.address, c.abi, "tokenMultiplier")
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("empty tokenMultiplier response from %s", c.address.Hex())
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

func (c *BridgeContract) MultiplyOnSpoke(ctx context.Context) (bool, error) {
	return c.callBool(ctx, "multiplyOnSpoke")
}

func (c *BridgeContract) IsCollateralized(ctx context.Context) (bool, error) {
	return c.callBool(ctx, "isCollateralized")
}

func (c *BridgeContract) callBool(ctx context.Context, method string) (bool, error) {
	res, err := c.chain.Call(ctx, c.address, c.abi, method)
	if err != nil {
		return false, err
	}
	if len(res) == 0 {
		return false, fmt.Errorf("empty %s response from %s", method, c.address.Hex())
	}

	out, ok := res[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected %s response type %T", method, res[0])
	}
	return out, nil
}
