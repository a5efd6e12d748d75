// Package portfolio owns all mutable simulation state: quote cash, open
// positions and the running value watermarks. It enforces the hard
// financial invariants - cash can never go negative and a sell can never
// drive a position quantity below zero
package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Setup returns a portfolio funded with the initial quote amount
func Setup(initialFunds decimal.Decimal) (*Portfolio, error) {
	if initialFunds.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInitialFundsZero
	}
	return &Portfolio{
		initialFunds: initialFunds,
		cash:         initialFunds,
		positions:    make(map[string]*Position),
		totalValue:   initialFunds,
		maxValue:     initialFunds,
		minValue:     initialFunds,
	}, nil
}

// InitialFunds returns the funding the portfolio started with
func (p *Portfolio) InitialFunds() decimal.Decimal {
	return p.initialFunds
}

// Cash returns the available quote funds
func (p *Portfolio) Cash() decimal.Decimal {
	return p.cash
}

// TotalValue returns cash plus positions at the prices last passed to
// UpdateValue
func (p *Portfolio) TotalValue() decimal.Decimal {
	return p.totalValue
}

// MaxValue returns the running high watermark of total value
func (p *Portfolio) MaxValue() decimal.Decimal {
	return p.maxValue
}

// MinValue returns the running low watermark of total value
func (p *Portfolio) MinValue() decimal.Decimal {
	return p.minValue
}

// GetPosition returns a copy of the held position for a pair
func (p *Portfolio) GetPosition(pair string) (Position, error) {
	pos, ok := p.positions[pair]
	if !ok {
		return Position{}, fmt.Errorf("%w: %v", errNoPosition, pair)
	}
	return *pos, nil
}

// Positions returns a copy of every open position
func (p *Portfolio) Positions() []Position {
	resp := make([]Position, 0, len(p.positions))
	for _, pos := range p.positions {
		resp = append(resp, *pos)
	}
	return resp
}

// ProcessBuy debits netAmount from cash and folds quantity into the pair's
// position at a weighted average cost. The portfolio is untouched on error
func (p *Portfolio) ProcessBuy(pair string, quantity, netAmount decimal.Decimal, t time.Time) error {
	if quantity.LessThanOrEqual(decimal.Zero) || netAmount.LessThanOrEqual(decimal.Zero) {
		return errNegativeAmount
	}
	if netAmount.GreaterThan(p.cash) {
		return fmt.Errorf("%w: require %v, have %v", ErrInsufficientFunds, netAmount, p.cash)
	}

	p.cash = p.cash.Sub(netAmount)
	pos, ok := p.positions[pair]
	if !ok {
		pos = &Position{Pair: pair}
		p.positions[pair] = pos
	}
	pos.Quantity = pos.Quantity.Add(quantity)
	pos.TotalCost = pos.TotalCost.Add(netAmount)
	pos.AvgPrice = pos.TotalCost.Div(pos.Quantity)
	pos.LastUpdated = t
	return nil
}

// ProcessSell credits netAmount to cash and reduces the pair's position,
// shrinking its total cost in proportion to the quantity sold. Positions
// emptied by the sale are removed. The portfolio is untouched on error
func (p *Portfolio) ProcessSell(pair string, quantity, netAmount decimal.Decimal, t time.Time) error {
	if quantity.LessThanOrEqual(decimal.Zero) || netAmount.LessThanOrEqual(decimal.Zero) {
		return errNegativeAmount
	}
	pos, ok := p.positions[pair]
	if !ok {
		return fmt.Errorf("%w: %v not held", ErrInsufficientPosition, pair)
	}
	if quantity.GreaterThan(pos.Quantity) {
		return fmt.Errorf("%w: require %v, hold %v %v", ErrInsufficientPosition, quantity, pos.Quantity, pair)
	}

	p.cash = p.cash.Add(netAmount)
	soldFraction := quantity.Div(pos.Quantity)
	pos.TotalCost = pos.TotalCost.Mul(decimal.NewFromInt(1).Sub(soldFraction))
	pos.Quantity = pos.Quantity.Sub(quantity)
	pos.LastUpdated = t
	if pos.Quantity.LessThanOrEqual(decimal.Zero) {
		delete(p.positions, pair)
	}
	return nil
}

// UpdateValue recomputes total value from the latest prices and rolls the
// high/low watermarks
func (p *Portfolio) UpdateValue(prices map[string]decimal.Decimal) {
	p.totalValue = p.cash.Add(p.positionsValue(prices))
	if p.totalValue.GreaterThan(p.maxValue) {
		p.maxValue = p.totalValue
	}
	if p.totalValue.LessThan(p.minValue) {
		p.minValue = p.totalValue
	}
}

func (p *Portfolio) positionsValue(prices map[string]decimal.Decimal) decimal.Decimal {
	var value decimal.Decimal
	for pair, pos := range p.positions {
		price, ok := prices[pair]
		if !ok {
			// no fresh price, value at average cost
			price = pos.AvgPrice
		}
		value = value.Add(pos.Quantity.Mul(price))
	}
	return value
}

// SnapshotAt captures an append-only timeline sample at the given time
func (p *Portfolio) SnapshotAt(t time.Time, prices map[string]decimal.Decimal) Snapshot {
	positionsValue := p.positionsValue(prices)
	return Snapshot{
		Timestamp:      t,
		PortfolioValue: p.cash.Add(positionsValue),
		Cash:           p.cash,
		PositionsValue: positionsValue,
		PositionsCount: len(p.positions),
	}
}
