// Package statistics turns a finished run's trade ledger and portfolio
// timeline into a performance report: aggregate metrics, a benchmark
// comparison with grade, and follow-up recommendations
package statistics

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
	gctmath "github.com/cryptickmill/marketsim/common/math"
	"github.com/cryptickmill/marketsim/config"
	"github.com/cryptickmill/marketsim/exchange"
	"github.com/cryptickmill/marketsim/log"
	"github.com/cryptickmill/marketsim/portfolio"
)

// annualisation factor applied to the per-sample Sharpe ratio
const sharpeAnnualisation = 252

// CalculateResults builds the full report for a finished run
func CalculateResults(trades []exchange.TradeRecord, timeline []portfolio.Snapshot, initialFunds float64, benchmarks config.BenchmarkTargets) (*Report, error) {
	if initialFunds <= 0 {
		return nil, errInvalidInitialFunds
	}
	if len(timeline) == 0 {
		return nil, ErrNoTimeline
	}

	report := &Report{
		Summary:     summarise(trades, timeline, initialFunds),
		Performance: PerformanceMetrics{},
	}
	hours := report.Summary.SimulatedHours
	finalValue := report.Summary.FinalValue

	report.Performance.TotalReturn = (finalValue/initialFunds - 1) * 100
	if hours > 0 {
		report.Performance.HourlyReturn = report.Performance.TotalReturn / hours
		report.Performance.TradesPerHour = float64(len(trades)) / hours
	}
	report.Performance.WinRate = calculateWinRate(trades)
	report.Performance.ProfitFactor = calculateProfitFactor(trades)

	returns := sampleReturns(timeline)
	if len(returns) > 0 {
		sharpe, err := gctmath.CalculateSharpeRatio(returns, 0)
		if err != nil {
			return nil, err
		}
		report.Performance.SharpeRatio = sharpe * math.Sqrt(sharpeAnnualisation)

		valueAtRisk, err := gctmath.Percentile(returns, 0.05)
		if err != nil {
			return nil, err
		}
		report.Risk.ValueAtRisk95 = valueAtRisk * 100
	}
	report.Risk.MaxDrawdown = calculateMaxDrawdown(timeline)
	report.Risk.RunningDrawdown = calculateRunningDrawdown(timeline)

	report.Benchmarks = compareToBenchmarks(report, benchmarks)
	report.Recommendations = generateRecommendations(report.Benchmarks)
	return report, nil
}

func summarise(trades []exchange.TradeRecord, timeline []portfolio.Snapshot, initialFunds float64) Summary {
	s := Summary{
		InitialFunds:   initialFunds,
		FinalValue:     timeline[len(timeline)-1].PortfolioValue.InexactFloat64(),
		SimulatedHours: timeline[len(timeline)-1].Timestamp.Sub(timeline[0].Timestamp).Hours(),
		TotalTrades:    len(trades),
	}
	var fees decimal.Decimal
	for i := range trades {
		fees = fees.Add(trades[i].Fee)
		switch trades[i].Side {
		case common.Buy:
			s.BuyTrades++
		case common.Sell:
			s.SellTrades++
		}
	}
	s.TotalFees = fees.InexactFloat64()
	return s
}

// calculateWinRate counts a trade as a win when its realised PnL is
// positive. Buys realise nothing and therefore never count as wins
func calculateWinRate(trades []exchange.TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}
	var wins int
	for i := range trades {
		if trades[i].PnL.IsPositive() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

// calculateProfitFactor is gross profit over gross loss. When either side
// is empty there is nothing to divide, a neutral 1 is reported
func calculateProfitFactor(trades []exchange.TradeRecord) float64 {
	var grossProfit, grossLoss decimal.Decimal
	for i := range trades {
		switch {
		case trades[i].PnL.IsPositive():
			grossProfit = grossProfit.Add(trades[i].PnL)
		case trades[i].PnL.IsNegative():
			grossLoss = grossLoss.Add(trades[i].PnL.Abs())
		}
	}
	if grossProfit.IsZero() || grossLoss.IsZero() {
		return 1
	}
	return grossProfit.Div(grossLoss).InexactFloat64()
}

// sampleReturns converts the timeline into per-sample fractional returns
func sampleReturns(timeline []portfolio.Snapshot) []float64 {
	var returns []float64
	for i := 1; i < len(timeline); i++ {
		prev := timeline[i-1].PortfolioValue.InexactFloat64()
		if prev == 0 {
			continue
		}
		returns = append(returns, timeline[i].PortfolioValue.InexactFloat64()/prev-1)
	}
	return returns
}

// calculateMaxDrawdown is the simplified global peak-to-trough: highest
// timeline value against lowest, regardless of ordering. It matches the
// long-standing benchmark target definition
func calculateMaxDrawdown(timeline []portfolio.Snapshot) float64 {
	maxValue := timeline[0].PortfolioValue.InexactFloat64()
	minValue := maxValue
	for i := range timeline {
		v := timeline[i].PortfolioValue.InexactFloat64()
		if v > maxValue {
			maxValue = v
		}
		if v < minValue {
			minValue = v
		}
	}
	if maxValue == 0 {
		return 0
	}
	return (maxValue - minValue) / maxValue * 100
}

// calculateRunningDrawdown tracks the largest fall from a running peak,
// the ordering-aware counterpart to calculateMaxDrawdown
func calculateRunningDrawdown(timeline []portfolio.Snapshot) float64 {
	var worst float64
	peak := timeline[0].PortfolioValue.InexactFloat64()
	for i := range timeline {
		v := timeline[i].PortfolioValue.InexactFloat64()
		if v > peak {
			peak = v
			continue
		}
		if peak == 0 {
			continue
		}
		if dd := (peak - v) / peak * 100; dd > worst {
			worst = dd
		}
	}
	return worst
}

// Serialise returns the report as indented json
func (r *Report) Serialise() (string, error) {
	resp, err := json.MarshalIndent(r, "", " ")
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// PrintResults logs a human readable rendition of the report
func (r *Report) PrintResults() {
	log.Infof(log.Statistics, "------------------Run Results-------------------------------")
	log.Infof(log.Statistics, "Initial funds: $%.2f", r.Summary.InitialFunds)
	log.Infof(log.Statistics, "Final value: $%.2f", r.Summary.FinalValue)
	log.Infof(log.Statistics, "Total return: %.4f%% (%.4f%%/hr)", r.Performance.TotalReturn, r.Performance.HourlyReturn)
	log.Infof(log.Statistics, "Trades: %v (%.2f/hr), win rate %.2f%%", r.Summary.TotalTrades, r.Performance.TradesPerHour, r.Performance.WinRate*100)
	log.Infof(log.Statistics, "Profit factor: %.2f, Sharpe: %.2f", r.Performance.ProfitFactor, r.Performance.SharpeRatio)
	log.Infof(log.Statistics, "Max drawdown: %.2f%% (running %.2f%%), VaR95: %.4f%%", r.Risk.MaxDrawdown, r.Risk.RunningDrawdown, r.Risk.ValueAtRisk95)
	log.Infof(log.Statistics, "Benchmark: %v (grade %v, %v/%v checks)", r.Benchmarks.Status, r.Benchmarks.Grade, r.Benchmarks.Passes, len(r.Benchmarks.Checks))
	for i := range r.Recommendations {
		log.Infof(log.Statistics, "[%v/%v] %v: %v",
			r.Recommendations[i].Category,
			r.Recommendations[i].Priority,
			r.Recommendations[i].Issue,
			r.Recommendations[i].Recommendation)
	}
	log.Infof(log.Statistics, "------------------------------------------------------------")
}
