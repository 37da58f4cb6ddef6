// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package deployer

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/contracts"
	"github.com/sprintertech/bridge-verifier/keypool"
	"github.com/sprintertech/bridge-verifier/verifier"
)

type Chain interface {
	contracts.Caller
	Name() string
	DeployContract(
		ctx context.Context,
		key *ecdsa.PrivateKey,
		contractABI abi.ABI,
		bytecode []byte,
		args ...interface{},
	) (common.Address, *types.Receipt, error)
}

type KeyAllocator interface {
	Next() (keypool.DeployerKey, error)
}

// Deployer deploys contracts that need native minting rights. Every
// deployment consumes a pool key whose first contract address is registered
// as native minter admin.
type Deployer struct {
	keys KeyAllocator
}

func NewDeployer(keys KeyAllocator) *Deployer {
	return &Deployer{
		keys: keys,
	}
}

func (d *Deployer) Deploy(ctx context.Context, chain Chain, artifact *Artifact, args ...interface{}) (keypool.DeployerKey, common.Address, error) {
	key, err := d.keys.Next()
	if err != nil {
		return keypool.DeployerKey{}, common.Address{}, err
	}

	address, receipt, err := chain.DeployContract(ctx, key.PrivateKey, artifact.ABI, artifact.Bytecode, args...)
	if err != nil {
		var txHash common.Hash
		if receipt != nil {
			txHash = receipt.TxHash
		}
		return key, common.Address{}, &verifier.SubmissionFailure{
			Chain:  chain.Name(),
			TxHash: txHash,
			Err:    err,
		}
	}

	if address != key.ContractAddress {
		return key, address, &verifier.InvariantViolation{
			Chain:    chain.Name(),
			Field:    "deployed address",
			Expected: key.ContractAddress.Hex(),
			Actual:   address.Hex(),
		}
	}

	role, err := contracts.NewNativeMinterContract(chain).ReadAllowList(ctx, address)
	if err != nil {
		return key, address, err
	}
	if role != contracts.AdminRole {
		return key, address, &verifier.InvariantViolation{
			Chain:    chain.Name(),
			Field:    "native minter role",
			Expected: contracts.AdminRole.String(),
			Actual:   role.String(),
		}
	}

	log.Info().Str("chain", chain.Name()).Msgf("Deployed %s with deployer %s", address.Hex(), key.Address.Hex())
	return key, address, nil
}
