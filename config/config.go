// Package config handles loading and validation of simulation run settings
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default returns a runnable baseline configuration
func Default() *Config {
	return &Config{
		Scenario:           "trending-bull",
		Start:              time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:           time.Hour,
		TickInterval:       time.Second,
		BasePrice:          100,
		Pairs:              []string{"BTC-USDT"},
		InitialFunds:       10000,
		FeeRate:            0.001,
		Seed:               time.Now().UnixNano(),
		TimelineSampleRate: 60,
		Strategy: StrategySettings{
			Name: "buyandhold",
		},
		Benchmarks: BenchmarkTargets{
			MinTotalReturn:  0,
			MaxDrawdown:     20,
			MinSharpeRatio:  0.5,
			MinWinRate:      0.4,
			MinProfitFactor: 1.1,
			MaxValueAtRisk:  5,
		},
	}
}

// ReadConfigFromFile loads a run configuration from a json file on disk
func ReadConfigFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%v file not found: %w", path, err)
	}
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(fileData)
}

// LoadConfig unmarshals raw json into a validated run configuration
func LoadConfig(data []byte) (*Config, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks all fundamental run settings. It does not know which
// scenarios or strategies exist; those registries perform their own
// validation on load
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Scenario == "" {
		return errNoScenario
	}
	if c.Start.IsZero() {
		return errNoStartTime
	}
	if c.Duration <= 0 {
		return errInvalidDuration
	}
	if c.TickInterval <= 0 || c.TickInterval > c.Duration {
		return fmt.Errorf("%w, received '%v'", errInvalidTickInterval, c.TickInterval)
	}
	if c.Duration%c.TickInterval != 0 {
		return fmt.Errorf("%w, %v %% %v != 0", errUnevenTickInterval, c.Duration, c.TickInterval)
	}
	if c.BasePrice <= 0 {
		return errInvalidBasePrice
	}
	if len(c.Pairs) == 0 {
		return errNoTradingPairs
	}
	if c.InitialFunds <= 0 {
		return errInvalidInitialFunds
	}
	if c.FeeRate < 0 {
		return errInvalidFeeRate
	}
	if c.TimelineSampleRate <= 0 {
		return errInvalidSampleRate
	}
	if c.Strategy.Name == "" {
		return errNoStrategy
	}
	return nil
}

// TotalTicks returns the number of discrete simulation steps for the run
func (c *Config) TotalTicks() int64 {
	return int64(c.Duration / c.TickInterval)
}
