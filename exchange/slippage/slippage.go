// Package slippage models the market impact of an order against the volume
// traded on its tick
package slippage

import "github.com/shopspring/decimal"

var (
	// DefaultMaximumSlippageRate caps per-order slippage at 0.5%
	DefaultMaximumSlippageRate = decimal.NewFromFloat(0.005)
	// DefaultImpactFactor scales order size relative to tick volume into a
	// slippage rate
	DefaultImpactFactor = decimal.NewFromFloat(0.1)
)

// Estimate returns the slippage rate for a requested quote amount against
// the tick's traded volume: min(cap, requested/volume x impact)
func Estimate(requestedAmount, tickVolume decimal.Decimal) decimal.Decimal {
	if tickVolume.LessThanOrEqual(decimal.Zero) {
		return DefaultMaximumSlippageRate
	}
	rate := requestedAmount.Div(tickVolume).Mul(DefaultImpactFactor)
	if rate.GreaterThan(DefaultMaximumSlippageRate) {
		return DefaultMaximumSlippageRate
	}
	return rate
}
