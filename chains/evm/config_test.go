// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/bridge-verifier/chains/evm"
	"github.com/sprintertech/bridge-verifier/config/chain"
	"github.com/stretchr/testify/suite"
)

const (
	testBlockchainID = "0x7fc93d85c6d62c5b2ac0b519c87010ea5294012d1e407030d6acd0021cac10d5"
	testMessenger    = "0x253b2784c75e510dD0fF1da844684a1aC0aa5fcf"
)

type NewEVMConfigTestSuite struct {
	suite.Suite
}

func TestRunNewEVMConfigTestSuite(t *testing.T) {
	suite.Run(t, new(NewEVMConfigTestSuite))
}

func (s *NewEVMConfigTestSuite) Test_FailedDecode() {
	_, err := evm.NewEVMConfig(map[string]interface{}{
		"blocktime": "invalid",
	})

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_FailedGeneralConfigValidation() {
	_, err := evm.NewEVMConfig(map[string]interface{}{})

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_InvalidBlockchainID() {
	_, err := evm.NewEVMConfig(map[string]interface{}{
		"id":           1,
		"endpoint":     "ws://domain.com",
		"name":         "evm1",
		"blockchainID": "0x1234",
		"messenger":    testMessenger,
	})

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_InvalidMessenger() {
	_, err := evm.NewEVMConfig(map[string]interface{}{
		"id":           1,
		"endpoint":     "ws://domain.com",
		"name":         "evm1",
		"blockchainID": testBlockchainID,
		"messenger":    "messenger",
	})

	s.NotNil(err)
}

func (s *NewEVMConfigTestSuite) Test_ValidConfig() {
	rawConfig := map[string]interface{}{
		"id":           1,
		"endpoint":     "ws://domain.com",
		"name":         "evm1",
		"blockchainID": testBlockchainID,
		"messenger":    testMessenger,
	}

	actualConfig, err := evm.NewEVMConfig(rawConfig)

	id := new(uint64)
	*id = 1
	s.Nil(err)
	s.Equal(*actualConfig, evm.EVMConfig{
		GeneralChainConfig: chain.GeneralChainConfig{
			Name:      "evm1",
			Endpoint:  "ws://domain.com",
			Id:        id,
			Blocktime: 2,
		},
		BlockchainID:       common.HexToHash(testBlockchainID),
		Messenger:          common.HexToAddress(testMessenger),
		Blocktime:          2 * time.Second,
		TransactionTimeout: 120 * time.Second,
	})
}

func (s *NewEVMConfigTestSuite) Test_ValidConfigWithCustomParams() {
	rawConfig := map[string]interface{}{
		"id":                 43114,
		"endpoint":           "ws://domain.com",
		"name":               "evm1",
		"type":               "evm",
		"blockchainID":       testBlockchainID,
		"messenger":          testMessenger,
		"tracing":            true,
		"blocktime":          5,
		"blockConfirmations": 3,
		"transactionTimeout": 30,
	}

	actualConfig, err := evm.NewEVMConfig(rawConfig)

	id := new(uint64)
	*id = 43114
	s.Nil(err)
	s.Equal(*actualConfig, evm.EVMConfig{
		GeneralChainConfig: chain.GeneralChainConfig{
			Name:               "evm1",
			Endpoint:           "ws://domain.com",
			Type:               "evm",
			Id:                 id,
			Blocktime:          5,
			BlockConfirmations: 3,
		},
		BlockchainID:       common.HexToHash(testBlockchainID),
		Messenger:          common.HexToAddress(testMessenger),
		Tracing:            true,
		Blocktime:          5 * time.Second,
		TransactionTimeout: 30 * time.Second,
	})
}
