// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Caller interface {
	Call(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error)
}

type Transactor interface {
	Caller
	SendTransaction(
		ctx context.Context,
		key *ecdsa.PrivateKey,
		to common.Address,
		value *big.Int,
		contractABI abi.ABI,
		method string,
		args ...interface{},
	) (*types.Receipt, error)
}
