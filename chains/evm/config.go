// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"
	"github.com/sprintertech/bridge-verifier/config/chain"
)

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	// BlockchainID is the messenger's identifier of the chain
	BlockchainID common.Hash
	Messenger    common.Address
	Tracing      bool

	Blocktime          time.Duration
	TransactionTimeout time.Duration
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	BlockchainID             string `mapstructure:"blockchainID"`
	Messenger                string `mapstructure:"messenger"`
	Tracing                  bool   `mapstructure:"tracing"`

	TransactionTimeout uint64 `mapstructure:"transactionTimeout" default:"120"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if len(common.FromHex(c.BlockchainID)) != common.HashLength {
		return fmt.Errorf("invalid blockchainID %s for chain %s", c.BlockchainID, c.Name)
	}
	if !common.IsHexAddress(c.Messenger) {
		return fmt.Errorf("invalid messenger %s for chain %s", c.Messenger, c.Name)
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,
		BlockchainID:       common.HexToHash(c.BlockchainID),
		Messenger:          common.HexToAddress(c.Messenger),
		Tracing:            c.Tracing,

		// nolint:gosec
		Blocktime: time.Duration(c.Blocktime) * time.Second,
		// nolint:gosec
		TransactionTimeout: time.Duration(c.TransactionTimeout) * time.Second,
	}, nil
}
