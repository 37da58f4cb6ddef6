// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package deployer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract as emitted by forge or hardhat
type Artifact struct {
	ABI      abi.ABI
	Bytecode []byte
}

type rawArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode json.RawMessage `json:"bytecode"`
}

type rawBytecode struct {
	Object string `json:"object"`
}

func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("invalid artifact %s: %w", path, err)
	}
	return artifact, nil
}

// ParseArtifact accepts the bytecode both as a hex string and as an object
// with the hex string under "object".
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw rawArtifact
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, err
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("missing abi")
	}

	contractABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, err
	}

	var code string
	if err := json.Unmarshal(raw.Bytecode, &code); err != nil {
		var object rawBytecode
		if err := json.Unmarshal(raw.Bytecode, &object); err != nil {
			return nil, fmt.Errorf("invalid bytecode: %w", err)
		}
		code = object.Object
	}

	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("empty bytecode")
	}

	return &Artifact{
		ABI:      contractABI,
		Bytecode: bytecode,
	}, nil
}
