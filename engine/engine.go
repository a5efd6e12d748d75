// Package engine drives a simulation run: it generates the market feeds,
// advances the tick clock, invokes the strategy decision hook per pair,
// routes orders to the execution simulator and records the run timeline.
// Failures while processing one pair on one tick are isolated in an error
// ledger and never halt the loop
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/config"
	"github.com/cryptickmill/marketsim/data"
	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/exchange"
	"github.com/cryptickmill/marketsim/log"
	"github.com/cryptickmill/marketsim/portfolio"
	"github.com/cryptickmill/marketsim/statistics"
	"github.com/cryptickmill/marketsim/strategies"
	"github.com/cryptickmill/marketsim/strategies/base"
)

// NewFromConfig validates the run settings and assembles a simulation in the
// NOT_STARTED state. Configuration problems surface here, before any tick
// executes
func NewFromConfig(cfg *config.Config) (*Simulation, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := datagen.GetScenario(cfg.Scenario); err != nil {
		return nil, err
	}
	strategy, err := strategies.LoadStrategyByName(cfg.Strategy.Name, cfg.Strategy.CustomSettings)
	if err != nil {
		return nil, err
	}
	pf, err := portfolio.Setup(decimal.NewFromFloat(cfg.InitialFunds))
	if err != nil {
		return nil, err
	}
	ex, err := exchange.New(exchange.Settings{FeeRate: decimal.NewFromFloat(cfg.FeeRate)})
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	pairs := make([]string, len(cfg.Pairs))
	for i := range cfg.Pairs {
		pairs[i] = strings.ToUpper(cfg.Pairs[i])
	}
	return &Simulation{
		RunID:    id,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		strategy: strategy,
		hints: base.Hints{
			Regime:  cfg.Hints.Regime,
			Signals: cfg.Hints.Signals,
		},
		status:    StatusNotStarted,
		pairs:     pairs,
		exchange:  ex,
		portfolio: pf,
	}, nil
}

// Status returns the run's lifecycle state
func (s *Simulation) Status() Status {
	return s.status
}

// Run generates the market feeds then executes the tick loop to completion.
// It is single threaded and strictly sequential: tick N fully completes
// before tick N+1 begins. Cancellation is honoured between ticks only
func (s *Simulation) Run(ctx context.Context) error {
	if s.status != StatusNotStarted {
		return fmt.Errorf("%w: %v", ErrAlreadyRan, s.status)
	}
	if err := s.generateData(); err != nil {
		s.status = StatusFailed
		return err
	}
	s.status = StatusRunning
	log.Infof(log.Engine, "run %v started: scenario %v, strategy %v, %v pairs, %v ticks",
		s.RunID, s.cfg.Scenario, s.strategy.Name(), len(s.pairs), s.cfg.TotalTicks())

	totalTicks := s.cfg.TotalTicks()
	lastSampled := int64(-1)
	for tick := int64(0); tick < totalTicks; tick++ {
		select {
		case <-ctx.Done():
			s.status = StatusFailed
			return fmt.Errorf("run %v aborted at tick %v: %w", s.RunID, tick, ctx.Err())
		default:
		}

		ts := s.cfg.Start.Add(time.Duration(tick) * s.cfg.TickInterval)
		for _, pair := range s.pairs {
			series, err := s.holder.GetDataForPair(pair)
			if err != nil {
				s.recordTickError(tick, ts, pair, err)
				continue
			}
			if !series.Next() {
				s.recordTickError(tick, ts, pair, data.ErrDataUnavailable)
				continue
			}
			if err = s.processPair(tick, pair, series); err != nil {
				s.recordTickError(tick, ts, pair, err)
			}
		}

		prices := s.latestPrices()
		s.portfolio.UpdateValue(prices)
		if tick%s.cfg.TimelineSampleRate == 0 {
			s.timeline = append(s.timeline, s.portfolio.SnapshotAt(ts, prices))
			lastSampled = tick
		}
	}
	if lastSampled != totalTicks-1 {
		finalTS := s.cfg.Start.Add(time.Duration(totalTicks-1) * s.cfg.TickInterval)
		s.timeline = append(s.timeline, s.portfolio.SnapshotAt(finalTS, s.latestPrices()))
	}

	s.status = StatusCompleted
	report, err := statistics.CalculateResults(s.exchange.Trades(), s.timeline, s.cfg.InitialFunds, s.cfg.Benchmarks)
	if err != nil {
		return err
	}
	s.report = report
	log.Infof(log.Engine, "run %v completed: %v trades, %v tick errors",
		s.RunID, len(s.exchange.Trades()), len(s.tickErrs))
	return nil
}

// generateData builds the correlated series bundle for every configured
// pair. A pair failing generation is logged and skipped; the run only fails
// when no pair at all has usable data
func (s *Simulation) generateData() error {
	generator, err := datagen.New(s.cfg.Scenario, s.cfg.Start, s.cfg.Duration, s.cfg.TickInterval, s.cfg.BasePrice, s.rng)
	if err != nil {
		return err
	}
	s.holder.Setup()
	var usable int
	for _, pair := range s.pairs {
		m, genErr := generator.Generate(pair)
		if genErr != nil {
			log.Errorf(log.Engine, "could not generate %v feeds: %v", pair, genErr)
			continue
		}
		series, dataErr := data.NewSeries(m)
		if dataErr != nil {
			log.Errorf(log.Engine, "could not load %v feeds: %v", pair, dataErr)
			continue
		}
		s.holder.SetDataForPair(pair, series)
		usable++
	}
	if usable == 0 {
		return errNoUsableData
	}
	return nil
}

// processPair invokes the decision hook for one pair on one tick and routes
// any resulting order to the execution simulator. A panicking hook is
// contained here and surfaces as an ordinary tick error
func (s *Simulation) processPair(tick int64, pair string, series *data.Series) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decision hook panic: %v", r)
		}
	}()

	hookTick := &base.Tick{
		Pair:      pair,
		Tick:      tick,
		Data:      series,
		Portfolio: s.portfolio,
		Hints:     s.hints,
	}
	if ob, obErr := series.LatestOrderBook(); obErr == nil {
		hookTick.OrderBook = ob
	}
	if mood, moodErr := series.LatestSentiment(); moodErr == nil {
		hookTick.Sentiment = mood
	}
	hookTick.News = series.ActiveNews()

	order, err := s.strategy.OnTick(hookTick)
	if err != nil {
		return err
	}
	if order == nil || order.Side == "" || order.Side == common.DoNothing {
		return nil
	}
	_, err = s.exchange.ExecuteOrder(order, tick, series, s.portfolio)
	return err
}

// latestPrices resolves the current reference price per pair for portfolio
// valuation. Pairs without a resolvable price are omitted and valued at cost
func (s *Simulation) latestPrices() map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(s.pairs))
	for _, pair := range s.pairs {
		series, err := s.holder.GetDataForPair(pair)
		if err != nil {
			continue
		}
		price, err := series.LatestPrice()
		if err != nil {
			continue
		}
		prices[pair] = decimal.NewFromFloat(price)
	}
	return prices
}

func (s *Simulation) recordTickError(tick int64, ts time.Time, pair string, err error) {
	s.tickErrs = append(s.tickErrs, TickError{
		Tick:      tick,
		Timestamp: ts,
		Pair:      pair,
		Message:   err.Error(),
	})
	log.Warnf(log.Engine, "tick %v %v: %v", tick, pair, err)
}

// Report returns the performance report of a completed run
func (s *Simulation) Report() (*statistics.Report, error) {
	if s.status != StatusCompleted || s.report == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFinished, s.status)
	}
	return s.report, nil
}

// Trades returns the run's trade ledger
func (s *Simulation) Trades() []exchange.TradeRecord {
	return s.exchange.Trades()
}

// Timeline returns the portfolio snapshots sampled across the run
func (s *Simulation) Timeline() []portfolio.Snapshot {
	resp := make([]portfolio.Snapshot, len(s.timeline))
	copy(resp, s.timeline)
	return resp
}

// Errors returns the per-pair, per-tick error ledger
func (s *Simulation) Errors() []TickError {
	resp := make([]TickError, len(s.tickErrs))
	copy(resp, s.tickErrs)
	return resp
}
