// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mitchellh/mapstructure"
)

type RawHopConfig struct {
	Chain            string `mapstructure:"chain"`
	Bridge           string `mapstructure:"bridge"`
	Token            string `mapstructure:"token"`
	DeductPrimaryFee bool   `mapstructure:"deductPrimaryFee"`
	Spoke            bool   `mapstructure:"spoke"`
	CheckScaling     bool   `mapstructure:"checkScaling"`

	Multiplier        string `mapstructure:"multiplier" default:"1"`
	MultiplyOnReceive bool   `mapstructure:"multiplyOnReceive"`
	// Decimals of the bridged token on this hop, when set on consecutive hops
	// the scaling between them is derived from decimals
	Decimals *uint8 `mapstructure:"decimals"`
}

func (c *RawHopConfig) Validate() error {
	if c.Chain == "" {
		return fmt.Errorf("required field hop.Chain empty")
	}
	return c.validate()
}

// validateRouter allows a home hop without a bridge, messages are then only
// relayed through it.
func (c *RawHopConfig) validateRouter() error {
	if c.Chain == "" {
		return fmt.Errorf("required field hop.Chain empty")
	}
	if c.Bridge == "" {
		return nil
	}
	return c.validate()
}

func (c *RawHopConfig) validate() error {
	if !common.IsHexAddress(c.Bridge) {
		return fmt.Errorf("invalid bridge address %s on chain %s", c.Bridge, c.Chain)
	}
	if c.Token != "" && !common.IsHexAddress(c.Token) {
		return fmt.Errorf("invalid token address %s on chain %s", c.Token, c.Chain)
	}
	if _, ok := new(big.Int).SetString(c.Multiplier, 10); !ok {
		return fmt.Errorf("invalid multiplier %s on chain %s", c.Multiplier, c.Chain)
	}
	return nil
}

type RawScenarioConfig struct {
	Name        string        `mapstructure:"name"`
	Source      RawHopConfig  `mapstructure:"source"`
	Home        *RawHopConfig `mapstructure:"home"`
	Destination RawHopConfig  `mapstructure:"destination"`

	Amount            string `mapstructure:"amount"`
	SenderKey         string `mapstructure:"senderKey"`
	Recipient         string `mapstructure:"recipient"`
	FeeToken          string `mapstructure:"feeToken"`
	PrimaryFee        string `mapstructure:"primaryFee" default:"0"`
	SecondaryFee      string `mapstructure:"secondaryFee" default:"0"`
	RequiredGasLimit  string `mapstructure:"requiredGasLimit" default:"250000"`
	MultiHopFallback  string `mapstructure:"multiHopFallback"`
	RequireCollateral bool   `mapstructure:"requireCollateral"`
}

func (c *RawScenarioConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("required field scenario.Name empty")
	}

	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("invalid source of scenario %s: %w", c.Name, err)
	}
	if c.Home != nil {
		if err := c.Home.validateRouter(); err != nil {
			return fmt.Errorf("invalid home of scenario %s: %w", c.Name, err)
		}
	}
	if err := c.Destination.Validate(); err != nil {
		return fmt.Errorf("invalid destination of scenario %s: %w", c.Name, err)
	}

	amount, ok := new(big.Int).SetString(c.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return fmt.Errorf("invalid amount %s in scenario %s", c.Amount, c.Name)
	}
	for field, value := range map[string]string{
		"primaryFee":       c.PrimaryFee,
		"secondaryFee":     c.SecondaryFee,
		"requiredGasLimit": c.RequiredGasLimit,
	} {
		v, ok := new(big.Int).SetString(value, 10)
		if !ok || v.Sign() < 0 {
			return fmt.Errorf("invalid %s %s in scenario %s", field, value, c.Name)
		}
	}

	if !common.IsHexAddress(c.Recipient) {
		return fmt.Errorf("invalid recipient %s in scenario %s", c.Recipient, c.Name)
	}
	if c.SenderKey == "" {
		return fmt.Errorf("required field scenario.SenderKey empty in scenario %s", c.Name)
	}
	return nil
}

// NewScenarioConfig decodes and validates a scenario from its raw config
func NewScenarioConfig(rawConfig map[string]interface{}) (*RawScenarioConfig, error) {
	var c RawScenarioConfig
	err := mapstructure.Decode(rawConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}
	if c.Home != nil && c.Home.Chain == "" {
		c.Home = nil
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Scenario builds a runnable scenario bound to the named chains
func (c *RawScenarioConfig) Scenario(chains map[string]ChainClient) (*Scenario, error) {
	senderKey, err := crypto.HexToECDSA(strings.TrimPrefix(c.SenderKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid sender key in scenario %s: %w", c.Name, err)
	}

	source, err := c.Source.hop(chains, nil)
	if err != nil {
		return nil, err
	}
	previous := &c.Source

	var home *Hop
	if c.Home != nil {
		h, err := c.Home.hop(chains, previous)
		if err != nil {
			return nil, err
		}
		home = &h
		previous = c.Home
	}

	destination, err := c.Destination.hop(chains, previous)
	if err != nil {
		return nil, err
	}

	return &Scenario{
		Name:              c.Name,
		Source:            source,
		Home:              home,
		Destination:       destination,
		Amount:            bigIntOrZero(c.Amount),
		SenderKey:         senderKey,
		Recipient:         common.HexToAddress(c.Recipient),
		FeeToken:          optionalAddress(c.FeeToken),
		PrimaryFee:        bigIntOrZero(c.PrimaryFee),
		SecondaryFee:      bigIntOrZero(c.SecondaryFee),
		RequiredGasLimit:  bigIntOrZero(c.RequiredGasLimit),
		MultiHopFallback:  optionalAddress(c.MultiHopFallback),
		RequireCollateral: c.RequireCollateral,
	}, nil
}

func (c *RawHopConfig) hop(chains map[string]ChainClient, previous *RawHopConfig) (Hop, error) {
	chain, ok := chains[c.Chain]
	if !ok {
		return Hop{}, fmt.Errorf("chain %s not configured", c.Chain)
	}

	scaling := Scaling{
		Multiplier:        bigIntOrZero(c.Multiplier),
		MultiplyOnReceive: c.MultiplyOnReceive,
	}
	if previous != nil && previous.Decimals != nil && c.Decimals != nil {
		scaling = ScalingFromDecimals(*previous.Decimals, *c.Decimals)
	}

	return Hop{
		Chain: chain,
		Bridge: Bridge{
			Address:          common.HexToAddress(c.Bridge),
			Token:            optionalAddress(c.Token),
			DeductPrimaryFee: c.DeductPrimaryFee,
		},
		Scaling:      scaling,
		Spoke:        c.Spoke,
		CheckScaling: c.CheckScaling,
	}, nil
}

func bigIntOrZero(v string) *big.Int {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

func optionalAddress(v string) common.Address {
	if v == "" {
		return common.Address{}
	}
	return common.HexToAddress(v)
}
