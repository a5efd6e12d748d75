package statistics

import (
	"fmt"
	"math"

	"github.com/cryptickmill/marketsim/config"
)

// benchmark metric names, also used as recommendation categories
const (
	metricTotalReturn  = "total-return"
	metricMaxDrawdown  = "max-drawdown"
	metricSharpeRatio  = "sharpe-ratio"
	metricWinRate      = "win-rate"
	metricProfitFactor = "profit-factor"
	metricValueAtRisk  = "value-at-risk"
)

// compareToBenchmarks evaluates every metric against its target, counts the
// passes and derives the overall status and letter grade
func compareToBenchmarks(r *Report, targets config.BenchmarkTargets) BenchmarkComparison {
	downside := math.Abs(math.Min(r.Risk.ValueAtRisk95, 0))
	comparison := BenchmarkComparison{
		Checks: []BenchmarkCheck{
			{Metric: metricTotalReturn, Target: targets.MinTotalReturn, Actual: r.Performance.TotalReturn, Pass: r.Performance.TotalReturn >= targets.MinTotalReturn},
			{Metric: metricMaxDrawdown, Target: targets.MaxDrawdown, Actual: r.Risk.MaxDrawdown, Pass: r.Risk.MaxDrawdown <= targets.MaxDrawdown},
			{Metric: metricSharpeRatio, Target: targets.MinSharpeRatio, Actual: r.Performance.SharpeRatio, Pass: r.Performance.SharpeRatio >= targets.MinSharpeRatio},
			{Metric: metricWinRate, Target: targets.MinWinRate, Actual: r.Performance.WinRate, Pass: r.Performance.WinRate >= targets.MinWinRate},
			{Metric: metricProfitFactor, Target: targets.MinProfitFactor, Actual: r.Performance.ProfitFactor, Pass: r.Performance.ProfitFactor >= targets.MinProfitFactor},
			{Metric: metricValueAtRisk, Target: targets.MaxValueAtRisk, Actual: downside, Pass: downside <= targets.MaxValueAtRisk},
		},
	}
	for i := range comparison.Checks {
		if comparison.Checks[i].Pass {
			comparison.Passes++
		}
	}
	comparison.PassRatio = float64(comparison.Passes) / float64(len(comparison.Checks))
	comparison.Status = StatusFail
	if comparison.PassRatio >= passThreshold {
		comparison.Status = StatusPass
	}
	comparison.Grade = gradeFromPassRatio(comparison.PassRatio)
	return comparison
}

func gradeFromPassRatio(ratio float64) string {
	switch {
	case ratio >= 0.9:
		return "A"
	case ratio >= 0.8:
		return "B"
	case ratio >= 0.7:
		return "C"
	case ratio >= 0.6:
		return "D"
	default:
		return "F"
	}
}

// generateRecommendations emits one entry per failed benchmark dimension,
// or a single positive entry when everything passed
func generateRecommendations(comparison BenchmarkComparison) []Recommendation {
	var resp []Recommendation
	for i := range comparison.Checks {
		if comparison.Checks[i].Pass {
			continue
		}
		resp = append(resp, recommendationFor(comparison.Checks[i]))
	}
	if len(resp) == 0 {
		resp = append(resp, Recommendation{
			Category:       "overall",
			Priority:       "low",
			Issue:          "all benchmark targets met",
			Recommendation: "consider tightening benchmark targets to keep pressure on the strategy",
		})
	}
	return resp
}

func recommendationFor(check BenchmarkCheck) Recommendation {
	rec := Recommendation{
		Category: check.Metric,
		Issue:    fmt.Sprintf("%v of %.4f missed target %.4f", check.Metric, check.Actual, check.Target),
	}
	switch check.Metric {
	case metricTotalReturn:
		rec.Priority = "high"
		rec.Recommendation = "strategy is not capturing the scenario's move, review entry signals and traded size"
	case metricMaxDrawdown:
		rec.Priority = "high"
		rec.Recommendation = "losses run too deep before recovery, add an exit rule or reduce position size"
	case metricSharpeRatio:
		rec.Priority = "medium"
		rec.Recommendation = "returns are not compensating for their volatility, smooth position sizing or trade less often"
	case metricWinRate:
		rec.Priority = "medium"
		rec.Recommendation = "most trades close at a loss, tighten entry conditions"
	case metricProfitFactor:
		rec.Priority = "medium"
		rec.Recommendation = "losses outweigh wins in aggregate, cut losers earlier or let winners run longer"
	case metricValueAtRisk:
		rec.Priority = "high"
		rec.Recommendation = "tail losses between samples are too large, reduce exposure per pair"
	}
	return rec
}
