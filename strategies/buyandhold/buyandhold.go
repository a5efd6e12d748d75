package buyandhold

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/strategies/base"
)

const (
	// Name is the strategy name
	Name         = "buyandhold"
	buyAmountKey = "buy-amount"
	description  = `Buy and hold places a single market buy on the first tick and never trades again. It is the baseline every other strategy has to beat`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	buyAmount decimal.Decimal
	bought    map[string]bool
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick issues one buy per pair on the very first tick, then stays flat
// forever
func (s *Strategy) OnTick(t *base.Tick) (*common.Order, error) {
	if err := base.Validate(t); err != nil {
		return nil, err
	}
	if t.Tick != 0 || s.bought[t.Pair] {
		return nil, nil
	}
	s.bought[t.Pair] = true
	return &common.Order{
		Pair:       t.Pair,
		Side:       common.Buy,
		Amount:     s.buyAmount,
		Confidence: 1,
	}, nil
}

// SetCustomSettings allows a user to modify the buy amount in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case buyAmountKey:
			buyAmount, ok := v.(float64)
			if !ok || buyAmount <= 0 {
				return fmt.Errorf("%w provided buy-amount value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.buyAmount = decimal.NewFromFloat(buyAmount)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.buyAmount = decimal.NewFromInt(100)
	s.bought = make(map[string]bool)
}
