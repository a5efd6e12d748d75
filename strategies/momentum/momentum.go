package momentum

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/strategies/base"
)

const (
	// Name is the strategy name
	Name             = "momentum"
	lookbackKey      = "lookback"
	sentimentHighKey = "sentiment-high"
	sentimentLowKey  = "sentiment-low"
	tradeFractionKey = "trade-fraction"
	cooldownKey      = "cooldown"
	description      = `Momentum trades with the crowd: it buys when sentiment and recent price action both point up and the order book is not leaning against it, and sells the position down when both turn negative`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	lookback      int
	sentimentHigh float64
	sentimentLow  float64
	tradeFraction decimal.Decimal
	cooldown      int64
	lastTrade     map[string]int64
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick combines the sentiment feed, trailing price momentum and order book
// imbalance into a single directional call for the pair
func (s *Strategy) OnTick(t *base.Tick) (*common.Order, error) {
	if err := base.Validate(t); err != nil {
		return nil, err
	}
	if t.Sentiment == nil || t.OrderBook == nil {
		return nil, nil
	}
	history := t.Data.History()
	if len(history) <= s.lookback {
		return nil, nil
	}
	if last, ok := s.lastTrade[t.Pair]; ok && t.Tick-last < s.cooldown {
		return nil, nil
	}

	latest := history[len(history)-1]
	reference := history[len(history)-1-s.lookback]
	trailing := latest.Price/reference.Price - 1

	switch {
	case s.signalsBuy(t, trailing):
		amount := t.Portfolio.Cash().Mul(s.tradeFraction)
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, nil
		}
		s.lastTrade[t.Pair] = t.Tick
		return &common.Order{
			Pair:       t.Pair,
			Side:       common.Buy,
			Amount:     amount,
			Confidence: t.Sentiment.Confidence,
		}, nil
	case s.signalsSell(t, trailing):
		pos, err := t.Portfolio.GetPosition(t.Pair)
		if err != nil {
			// nothing held, nothing to unwind
			return nil, nil
		}
		price, err := t.Data.LatestPrice()
		if err != nil {
			return nil, err
		}
		amount := pos.Quantity.Mul(decimal.NewFromFloat(price)).Mul(s.tradeFraction)
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, nil
		}
		s.lastTrade[t.Pair] = t.Tick
		return &common.Order{
			Pair:       t.Pair,
			Side:       common.Sell,
			Amount:     amount,
			Confidence: t.Sentiment.Confidence,
		}, nil
	}
	return nil, nil
}

// signalsBuy requires bullish sentiment, positive trailing momentum and an
// order book that is not stacked against the trade. A bearish regime hint
// vetoes new longs
func (s *Strategy) signalsBuy(t *base.Tick, trailing float64) bool {
	if t.Hints.Regime == "bearish" {
		return false
	}
	return t.Sentiment.Score >= s.sentimentHigh &&
		trailing > 0 &&
		t.OrderBook.Imbalance > -0.2
}

func (s *Strategy) signalsSell(t *base.Tick, trailing float64) bool {
	if t.Hints.Regime == "bullish" {
		return false
	}
	return t.Sentiment.Score <= s.sentimentLow && trailing < 0
}

// SetCustomSettings allows a user to modify the momentum thresholds in their
// config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case lookbackKey:
			lookback, ok := v.(float64)
			if !ok || lookback <= 0 {
				return fmt.Errorf("%w provided lookback value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.lookback = int(lookback)
		case sentimentHighKey:
			high, ok := v.(float64)
			if !ok || high <= 0 || high > 1 {
				return fmt.Errorf("%w provided sentiment-high value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.sentimentHigh = high
		case sentimentLowKey:
			low, ok := v.(float64)
			if !ok || low < 0 || low >= 1 {
				return fmt.Errorf("%w provided sentiment-low value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.sentimentLow = low
		case tradeFractionKey:
			fraction, ok := v.(float64)
			if !ok || fraction <= 0 || fraction > 1 {
				return fmt.Errorf("%w provided trade-fraction value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.tradeFraction = decimal.NewFromFloat(fraction)
		case cooldownKey:
			cooldown, ok := v.(float64)
			if !ok || cooldown < 0 {
				return fmt.Errorf("%w provided cooldown value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.cooldown = int64(cooldown)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.lookback = 30
	s.sentimentHigh = 0.65
	s.sentimentLow = 0.35
	s.tradeFraction = decimal.NewFromFloat(0.1)
	s.cooldown = 60
	s.lastTrade = make(map[string]int64)
}
