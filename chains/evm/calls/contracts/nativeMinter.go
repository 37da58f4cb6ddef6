// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/consts"
)

// Role is the allow list role reported by a precompile
type Role uint64

const (
	NoRole Role = iota
	EnabledRole
	AdminRole
	ManagerRole
)

func (r Role) String() string {
	switch r {
	case NoRole:
		return "none"
	case EnabledRole:
		return "enabled"
	case AdminRole:
		return "admin"
	case ManagerRole:
		return "manager"
	default:
		return fmt.Sprintf("role(%d)", uint64(r))
	}
}

type NativeMinterContract struct {
	address common.Address
	chain   Caller
}

func NewNativeMinterContract(chain Caller) *NativeMinterContract {
	return &NativeMinterContract{
		address: consts.NativeMinterAddress,
		chain:   chain,
	}
}

func (c *NativeMinterContract) ReadAllowList(ctx context.Context, account common.Address) (Role, error) {
	res, err := c.chain.Call(ctx, c.address, consts.NativeMinterABI, "readAllowList", account)
	if err != nil {
		return NoRole, err
	}
	if len(res) == 0 {
		return NoRole, fmt.Errorf("empty readAllowList response for %s", account.Hex())
	}

	role := abi.ConvertType(res[0], new(big.Int)).(*big.Int)
	if !role.IsUint64() {
		return NoRole, fmt.Errorf("invalid role %s for %s", role, account.Hex())
	}
	return Role(role.Uint64()), nil
}
