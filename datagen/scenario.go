package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// ShapeFunc returns a deterministic price level offset, as a fraction of
// price, for normalised run progress p in [0, 1]. The generator applies the
// tick-over-tick difference of the shape so that the level offset compounds
// to approximately the returned value
type ShapeFunc func(p float64) float64

// JumpFunc returns a randomised per-tick impulse, zero on most ticks
type JumpFunc func(rng *rand.Rand) float64

// Scenario is a closed, validated market profile. Free-form scenario maps
// are deliberately not supported
type Scenario struct {
	Name       string
	Trend      float64
	Volatility float64
	Shape      ShapeFunc
	Jump       JumpFunc
}

// Flash crash shape window and magnitude. Tests and downstream benchmark
// fixtures rely on these exact values
const (
	FlashCrashStart = 0.3
	FlashCrashEnd   = 0.5
	FlashCrashDip   = 0.15

	choppyAmplitude = 0.01
	choppyCycles    = 8

	newsImpulseChance = 0.002
	newsImpulseScale  = 0.02
)

var scenarios = map[string]*Scenario{
	"trending-bull": {
		Name:       "trending-bull",
		Trend:      0.0002,
		Volatility: 0.002,
	},
	"trending-bear": {
		Name:       "trending-bear",
		Trend:      -0.0002,
		Volatility: 0.002,
	},
	"sideways": {
		Name:       "sideways",
		Trend:      0,
		Volatility: 0.001,
	},
	"choppy": {
		Name:       "choppy",
		Trend:      0,
		Volatility: 0.004,
		Shape:      choppyShape,
	},
	"flash-crash": {
		Name:       "flash-crash",
		Trend:      0.0001,
		Volatility: 0.002,
		Shape:      flashCrashShape,
	},
	"news-driven": {
		Name:       "news-driven",
		Trend:      0.0001,
		Volatility: 0.003,
		Jump:       newsImpulse,
	},
}

// GetScenario resolves a scenario tag to its registered profile
func GetScenario(name string) (*Scenario, error) {
	s, ok := scenarios[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w '%v', supported: %v", ErrUnknownScenario, name, Scenarios())
	}
	return s, nil
}

// Scenarios returns all registered scenario tags, sorted
func Scenarios() []string {
	resp := make([]string, 0, len(scenarios))
	for k := range scenarios {
		resp = append(resp, k)
	}
	sort.Strings(resp)
	return resp
}

// flashCrashShape subtracts a half-sine dip of FlashCrashDip magnitude
// across the [FlashCrashStart, FlashCrashEnd] progress window
func flashCrashShape(p float64) float64 {
	if p < FlashCrashStart || p > FlashCrashEnd {
		return 0
	}
	window := (p - FlashCrashStart) / (FlashCrashEnd - FlashCrashStart)
	return -FlashCrashDip * math.Sin(math.Pi*window)
}

func choppyShape(p float64) float64 {
	return choppyAmplitude * math.Sin(2*math.Pi*choppyCycles*p)
}

func newsImpulse(rng *rand.Rand) float64 {
	if rng.Float64() >= newsImpulseChance {
		return 0
	}
	return (rng.Float64()*2 - 1) * newsImpulseScale
}
