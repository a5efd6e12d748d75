package config

import (
	"errors"
	"time"
)

var (
	// ErrNilConfig is returned when engine setup receives no configuration
	ErrNilConfig = errors.New("received nil config")

	errInvalidDuration     = errors.New("simulation duration must be positive")
	errInvalidTickInterval = errors.New("tick interval must be positive and no longer than the duration")
	errUnevenTickInterval  = errors.New("simulation duration must be divisible by the tick interval")
	errInvalidBasePrice    = errors.New("base price must be positive")
	errNoTradingPairs      = errors.New("at least one trading pair is required")
	errInvalidInitialFunds = errors.New("initial funds must be positive")
	errInvalidFeeRate      = errors.New("fee rate cannot be negative")
	errInvalidSampleRate   = errors.New("timeline sample rate must be positive")
	errNoScenario          = errors.New("a market scenario is required")
	errNoStrategy          = errors.New("a strategy name is required")
	errNoStartTime         = errors.New("a simulated start time is required")
)

// Config defines everything an individual simulation run needs
type Config struct {
	Scenario string `json:"scenario"`
	// Start anchors the simulated clock. It is part of the config rather
	// than read from the wall clock so that equal seeds replay identical runs
	Start        time.Time     `json:"start-time"`
	Duration     time.Duration `json:"duration"`
	TickInterval time.Duration `json:"tick-interval"`
	BasePrice    float64       `json:"base-price"`
	Pairs        []string      `json:"pairs"`
	InitialFunds float64       `json:"initial-funds"`
	FeeRate      float64       `json:"fee-rate"`
	Seed         int64         `json:"seed"`
	// TimelineSampleRate is the tick cadence at which portfolio snapshots
	// are appended to the run timeline
	TimelineSampleRate int64            `json:"timeline-sample-rate"`
	Strategy           StrategySettings `json:"strategy-settings"`
	Hints              HintSettings     `json:"hints"`
	Benchmarks         BenchmarkTargets `json:"benchmarks"`
}

// StrategySettings contains what strategy to load along with any custom
// settings to pass through to it
type StrategySettings struct {
	Name           string         `json:"name"`
	CustomSettings map[string]any `json:"custom-settings,omitempty"`
}

// HintSettings carries externally supplied regime/ML hints which are
// forwarded verbatim to the decision hook every tick
type HintSettings struct {
	Regime  string             `json:"regime,omitempty"`
	Signals map[string]float64 `json:"signals,omitempty"`
}

// BenchmarkTargets are the pass/fail thresholds the performance analyzer
// grades a run against
type BenchmarkTargets struct {
	MinTotalReturn  float64 `json:"min-total-return"`
	MaxDrawdown     float64 `json:"max-drawdown"`
	MinSharpeRatio  float64 `json:"min-sharpe-ratio"`
	MinWinRate      float64 `json:"min-win-rate"`
	MinProfitFactor float64 `json:"min-profit-factor"`
	MaxValueAtRisk  float64 `json:"max-value-at-risk"`
}
