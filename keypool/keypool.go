// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package keypool

import (
	"crypto/ecdsa"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DeployerKey is a key whose first contract deployment lands on an address
// registered ahead of time, e.g. as the admin of a precompile.
type DeployerKey struct {
	PrivateKey      *ecdsa.PrivateKey
	Address         common.Address
	ContractAddress common.Address
}

func NewDeployerKey(privateKey *ecdsa.PrivateKey) DeployerKey {
	address := crypto.PubkeyToAddress(privateKey.PublicKey)
	return DeployerKey{
		PrivateKey:      privateKey,
		Address:         address,
		ContractAddress: crypto.CreateAddress(address, 0),
	}
}

type KeyPoolExhausted struct {
	Size int
}

func (e *KeyPoolExhausted) Error() string {
	return fmt.Sprintf("all %d deployer keys already allocated", e.Size)
}

type DuplicateKey struct {
	Address common.Address
	First   int
	Second  int
}

func (e *DuplicateKey) Error() string {
	return fmt.Sprintf("deployer key %s listed at index %d and %d", e.Address.Hex(), e.First, e.Second)
}

// Allocator hands out each deployer key at most once, in pool order.
type Allocator struct {
	keys []DeployerKey
	next int
	lock sync.Mutex
}

// NewAllocator builds an allocator over keys in pool order. A key listed
// twice is rejected, it would otherwise be handed out twice.
func NewAllocator(keys []*ecdsa.PrivateKey) (*Allocator, error) {
	deployerKeys := make([]DeployerKey, len(keys))
	seen := make(map[common.Address]int, len(keys))
	for i, k := range keys {
		deployerKeys[i] = NewDeployerKey(k)
		if j, ok := seen[deployerKeys[i].Address]; ok {
			return nil, &DuplicateKey{Address: deployerKeys[i].Address, First: j, Second: i}
		}
		seen[deployerKeys[i].Address] = i
	}

	return &Allocator{
		keys: deployerKeys,
	}, nil
}

// NewAllocatorFromHex builds an allocator from hex encoded private keys,
// with or without the 0x prefix.
func NewAllocatorFromHex(keys []string) (*Allocator, error) {
	privateKeys := make([]*ecdsa.PrivateKey, len(keys))
	for i, k := range keys {
		pk, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(k), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid deployer key at index %d: %w", i, err)
		}
		privateKeys[i] = pk
	}

	return NewAllocator(privateKeys)
}

// Next allocates the next unused key
func (a *Allocator) Next() (DeployerKey, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.next >= len(a.keys) {
		return DeployerKey{}, &KeyPoolExhausted{Size: len(a.keys)}
	}

	key := a.keys[a.next]
	a.next++
	return key, nil
}

// Remaining is the number of keys not allocated yet
func (a *Allocator) Remaining() int {
	a.lock.Lock()
	defer a.lock.Unlock()

	return len(a.keys) - a.next
}

// Addresses lists the pool in allocation order without private keys
func (a *Allocator) Addresses() []DeployerKey {
	a.lock.Lock()
	defer a.lock.Unlock()

	addresses := make([]DeployerKey, len(a.keys))
	for i, k := range a.keys {
		addresses[i] = DeployerKey{
			Address:         k.Address,
			ContractAddress: k.ContractAddress,
		}
	}
	return addresses
}
