// Package datagen produces the synthetic, internally consistent market feeds
// a simulation run is driven by: a scenario-shaped price path plus volume,
// order book, sentiment and news series correlated with it.
//
// All randomness flows through an explicitly injected *rand.Rand so that a
// run is fully reproducible from its seed.
package datagen

import (
	"math/rand"
	"time"
)

// Price clamp bounds relative to the base price. Downstream tests depend on
// these being reproduced exactly
const (
	PriceFloorRatio   = 0.7
	PriceCeilingRatio = 1.5
)

// Generator produces one MarketSeries per call from a validated scenario
// profile and an injected random source
type Generator struct {
	scenario     *Scenario
	start        time.Time
	duration     time.Duration
	tickInterval time.Duration
	basePrice    float64
	totalTicks   int64
	rng          *rand.Rand
}

// New validates the inputs and returns a series generator
func New(scenarioName string, start time.Time, duration, tickInterval time.Duration, basePrice float64, rng *rand.Rand) (*Generator, error) {
	s, err := GetScenario(scenarioName)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errNoRandSource
	}
	if basePrice <= 0 {
		return nil, errInvalidBase
	}
	if duration <= 0 || tickInterval <= 0 || duration/tickInterval < 2 {
		return nil, errInvalidTicks
	}
	return &Generator{
		scenario:     s,
		start:        start,
		duration:     duration,
		tickInterval: tickInterval,
		basePrice:    basePrice,
		totalTicks:   int64(duration / tickInterval),
		rng:          rng,
	}, nil
}

// Generate produces the complete correlated series bundle for a pair
func (g *Generator) Generate(pair string) (*MarketSeries, error) {
	if g == nil {
		return nil, errUnsetGenerator
	}
	prices := g.generatePricePath()
	volumes := g.generateVolumes(prices)
	for i := range prices {
		prices[i].Volume = volumes[i].Total
	}
	news := g.generateNews(prices)
	return &MarketSeries{
		Pair:      pair,
		Prices:    prices,
		Volumes:   volumes,
		OrderBook: g.generateOrderBook(prices),
		Sentiment: g.generateSentiment(prices, news),
		News:      news,
	}, nil
}

// generatePricePath walks the scenario's multiplicative process:
// price *= 1 + trend + shape delta + impulse + uniform noise, clamped to
// [PriceFloorRatio, PriceCeilingRatio] of the base price
func (g *Generator) generatePricePath() []PricePoint {
	points := make([]PricePoint, g.totalTicks)
	price := g.basePrice
	floor := g.basePrice * PriceFloorRatio
	ceiling := g.basePrice * PriceCeilingRatio
	var prevShape float64
	for i := int64(0); i < g.totalTicks; i++ {
		p := float64(i) / float64(g.totalTicks)
		var shapeAdjustment float64
		if g.scenario.Shape != nil {
			level := g.scenario.Shape(p)
			shapeAdjustment = level - prevShape
			prevShape = level
		}
		var impulse float64
		if g.scenario.Jump != nil {
			impulse = g.scenario.Jump(g.rng)
		}
		noise := (g.rng.Float64()*2 - 1) * g.scenario.Volatility
		next := price * (1 + g.scenario.Trend + shapeAdjustment + impulse + noise)
		if next < floor {
			next = floor
		}
		if next > ceiling {
			next = ceiling
		}
		points[i] = PricePoint{
			Timestamp: g.start.Add(time.Duration(i) * g.tickInterval),
			Price:     next,
			Change:    next/price - 1,
		}
		price = next
	}
	return points
}
