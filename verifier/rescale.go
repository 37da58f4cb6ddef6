// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"math/big"
)

// Scaling is the fixed-point conversion applied when an amount crosses from
// one chain to another. MultiplyOnReceive divides the sent amount by the
// multiplier, otherwise it is multiplied.
type Scaling struct {
	Multiplier        *big.Int
	MultiplyOnReceive bool
}

func NoScaling() Scaling {
	return Scaling{Multiplier: big.NewInt(1)}
}

func (s Scaling) Apply(amount *big.Int) *big.Int {
	return RescaleAmount(amount, s.Multiplier, s.MultiplyOnReceive)
}

// Inverse returns the scaling of the opposite direction
func (s Scaling) Inverse() Scaling {
	return Scaling{
		Multiplier:        s.Multiplier,
		MultiplyOnReceive: !s.MultiplyOnReceive,
	}
}

func (s Scaling) IsIdentity() bool {
	return s.Multiplier == nil || s.Multiplier.Cmp(big.NewInt(1)) <= 0
}

// RescaleAmount converts amount into the receiving chain denomination. Division
// floors. Nil and non-positive multipliers are treated as 1.
func RescaleAmount(amount *big.Int, multiplier *big.Int, multiplyOnReceive bool) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	if multiplier == nil || multiplier.Sign() <= 0 {
		return new(big.Int).Set(amount)
	}

	if multiplyOnReceive {
		return new(big.Int).Div(amount, multiplier)
	}
	return new(big.Int).Mul(amount, multiplier)
}

// ScalingFromDecimals derives the scaling between two token representations
// from their decimals alone, independently of any bridge configuration.
func ScalingFromDecimals(sourceDecimals uint8, destinationDecimals uint8) Scaling {
	diff := int64(sourceDecimals) - int64(destinationDecimals)
	multiplyOnReceive := diff > 0
	if diff < 0 {
		diff = -diff
	}

	return Scaling{
		Multiplier:        new(big.Int).Exp(big.NewInt(10), big.NewInt(diff), nil),
		MultiplyOnReceive: multiplyOnReceive,
	}
}
