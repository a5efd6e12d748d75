// Package script runs a tengo-scripted decision hook. The script receives
// the tick's market view as globals and writes its decision back through the
// side and amount globals
package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/strategies/base"
)

const (
	// Name is the strategy name
	Name          = "script"
	scriptKey     = "script"
	scriptFileKey = "script-file"
	description   = `Script hands each tick to a user supplied tengo script. The script reads price, change, sentiment, imbalance, cash, position and regime globals and writes side and amount back`
)

// defaultScript buys a fixed amount whenever the tick printed a sharp down
// move, a small dip buyer used when no script is configured
const defaultScript = `
side := ""
amount := 0.0
if change < -0.005 && cash > 100.0 {
	side = "BUY"
	amount = 100.0
}
`

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	source string
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick exposes the tick to the script and converts its side/amount globals
// into an order intent
func (s *Strategy) OnTick(t *base.Tick) (*common.Order, error) {
	if err := base.Validate(t); err != nil {
		return nil, err
	}
	latest, err := t.Data.Latest()
	if err != nil {
		return nil, err
	}

	var sentimentScore, imbalance float64
	if t.Sentiment != nil {
		sentimentScore = t.Sentiment.Score
	}
	if t.OrderBook != nil {
		imbalance = t.OrderBook.Imbalance
	}
	var held float64
	if pos, posErr := t.Portfolio.GetPosition(t.Pair); posErr == nil {
		held = pos.Quantity.InexactFloat64()
	}

	compiled, err := newScript(s.source, map[string]any{
		"tick":      t.Tick,
		"price":     latest.Price,
		"change":    latest.Change,
		"sentiment": sentimentScore,
		"imbalance": imbalance,
		"cash":      t.Portfolio.Cash().InexactFloat64(),
		"position":  held,
		"regime":    t.Hints.Regime,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("script run failed at tick %v: %w", t.Tick, err)
	}

	side := strings.ToUpper(compiled.Get("side").String())
	if side == "" {
		return nil, nil
	}
	amount := compiled.Get("amount").Float()
	if amount <= 0 {
		return nil, nil
	}
	return &common.Order{
		Pair:       t.Pair,
		Side:       common.Side(side),
		Amount:     decimal.NewFromFloat(amount),
		Confidence: 1,
	}, nil
}

// SetCustomSettings accepts an inline script or a script file path. The
// source is compile-checked immediately so a broken script aborts before the
// run starts
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		switch k {
		case scriptKey:
			source, ok := v.(string)
			if !ok || source == "" {
				return fmt.Errorf("%w provided script value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.source = source
		case scriptFileKey:
			file, ok := v.(string)
			if !ok || file == "" {
				return fmt.Errorf("%w provided script-file value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			code, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("%w could not read script-file %v: %v", base.ErrInvalidCustomSettings, file, err)
			}
			s.source = string(code)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	if _, err := newScript(s.source, nil).Compile(); err != nil {
		return fmt.Errorf("%w script does not compile: %v", base.ErrInvalidCustomSettings, err)
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.source = defaultScript
}

// newScript builds a fresh script instance with the tick globals defined.
// Zero values stand in when compile-checking without a live tick
func newScript(source string, globals map[string]any) *tengo.Script {
	script := tengo.NewScript([]byte(source))
	defaults := map[string]any{
		"tick":      int64(0),
		"price":     0.0,
		"change":    0.0,
		"sentiment": 0.0,
		"imbalance": 0.0,
		"cash":      0.0,
		"position":  0.0,
		"regime":    "",
	}
	for name, v := range defaults {
		if live, ok := globals[name]; ok {
			v = live
		}
		// only fails on unsupported types, which these never are
		_ = script.Add(name, v)
	}
	return script
}
