// Package strategies is the registry of decision hook implementations,
// loadable by name from config
package strategies

import (
	"fmt"
	"strings"

	"github.com/cryptickmill/marketsim/strategies/base"
	"github.com/cryptickmill/marketsim/strategies/buyandhold"
	"github.com/cryptickmill/marketsim/strategies/momentum"
	"github.com/cryptickmill/marketsim/strategies/script"
)

// GetStrategies returns a fresh instance of every registered strategy
func GetStrategies() []base.Handler {
	return []base.Handler{
		new(buyandhold.Strategy),
		new(momentum.Strategy),
		new(script.Strategy),
	}
}

// LoadStrategyByName returns the strategy matching the name, defaults set
// and any custom settings applied
func LoadStrategyByName(name string, customSettings map[string]any) (base.Handler, error) {
	for _, s := range GetStrategies() {
		if !strings.EqualFold(s.Name(), name) {
			continue
		}
		s.SetDefaults()
		if len(customSettings) > 0 {
			if err := s.SetCustomSettings(customSettings); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrStrategyNotFound, name)
}
