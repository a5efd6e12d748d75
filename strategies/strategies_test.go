package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptickmill/marketsim/strategies/base"
	"github.com/cryptickmill/marketsim/strategies/buyandhold"
	"github.com/cryptickmill/marketsim/strategies/momentum"
)

func TestGetStrategies(t *testing.T) {
	t.Parallel()
	resp := GetStrategies()
	require.GreaterOrEqual(t, len(resp), 3)
	seen := make(map[string]bool)
	for _, s := range resp {
		assert.NotEmpty(t, s.Name())
		assert.False(t, seen[s.Name()], "duplicate strategy name %v", s.Name())
		seen[s.Name()] = true
	}
}

func TestLoadStrategyByName(t *testing.T) {
	t.Parallel()
	s, err := LoadStrategyByName(buyandhold.Name, nil)
	require.NoError(t, err)
	assert.Equal(t, buyandhold.Name, s.Name())

	s, err = LoadStrategyByName("MoMeNtUm", nil)
	require.NoError(t, err)
	assert.Equal(t, momentum.Name, s.Name())

	_, err = LoadStrategyByName("arbitrage", nil)
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestLoadStrategyByNameCustomSettings(t *testing.T) {
	t.Parallel()
	s, err := LoadStrategyByName(buyandhold.Name, map[string]any{"buy-amount": 500.0})
	require.NoError(t, err)
	assert.Equal(t, buyandhold.Name, s.Name())

	_, err = LoadStrategyByName(buyandhold.Name, map[string]any{"nonsense": true})
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
}
