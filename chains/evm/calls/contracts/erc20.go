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
)

type ERC20Contract struct {
	address common.Address
	chain   Transactor
}

func NewERC20Contract(chain Transactor, address common.Address) *ERC20Contract {
	return &ERC20Contract{
		address: address,
		chain:   chain,
	}
}

func (c *ERC20Contract) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	res, err := c.chain.Call(ctx, c.address, consts.ERC20ABI, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("empty balanceOf response from %s", c.address.Hex())
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

func (c *ERC20Contract) Approve(ctx context.Context, key *ecdsa.PrivateKey, spender common.Address, amount *big.Int) (*types.Receipt, error) {
	return c.chain.SendTransaction(ctx, key, c.address, big.NewInt(0), consts.ERC20ABI, "approve", spender, amount)
}
