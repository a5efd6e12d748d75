package statistics

import "errors"

var (
	// ErrNoTimeline is returned when a report is requested for a run that
	// produced no timeline samples
	ErrNoTimeline = errors.New("no timeline samples to analyse")

	errInvalidInitialFunds = errors.New("initial funds must be positive")
)

// statuses and grades assigned by the benchmark comparison
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"

	passThreshold = 0.7
)

// Summary holds the headline facts of a finished run
type Summary struct {
	InitialFunds   float64 `json:"initial-funds"`
	FinalValue     float64 `json:"final-value"`
	SimulatedHours float64 `json:"simulated-hours"`
	TotalTrades    int     `json:"total-trades"`
	BuyTrades      int     `json:"buy-trades"`
	SellTrades     int     `json:"sell-trades"`
	TotalFees      float64 `json:"total-fees"`
}

// PerformanceMetrics are the return and trade quality numbers computed from
// the ledger and timeline
type PerformanceMetrics struct {
	TotalReturn   float64 `json:"total-return"`
	HourlyReturn  float64 `json:"hourly-return"`
	TradesPerHour float64 `json:"trades-per-hour"`
	WinRate       float64 `json:"win-rate"`
	ProfitFactor  float64 `json:"profit-factor"`
	SharpeRatio   float64 `json:"sharpe-ratio"`
}

// RiskMetrics groups the downside measures. MaxDrawdown is the global
// peak-to-trough of timeline value, RunningDrawdown the largest drawdown
// from a running peak, both as percentages. ValueAtRisk95 is the 5th
// percentile of per-sample returns as a percentage, negative when losing
type RiskMetrics struct {
	MaxDrawdown     float64 `json:"max-drawdown"`
	RunningDrawdown float64 `json:"running-drawdown"`
	ValueAtRisk95   float64 `json:"value-at-risk-95"`
}

// BenchmarkCheck is a single metric evaluated against its target
type BenchmarkCheck struct {
	Metric string  `json:"metric"`
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
	Pass   bool    `json:"pass"`
}

// BenchmarkComparison is the outcome of grading a run against its benchmark
// targets
type BenchmarkComparison struct {
	Checks    []BenchmarkCheck `json:"checks"`
	Passes    int              `json:"passes"`
	PassRatio float64          `json:"pass-ratio"`
	Status    string           `json:"status"`
	Grade     string           `json:"grade"`
}

// Recommendation is one actionable follow-up derived from a failed
// benchmark dimension
type Recommendation struct {
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// Report is the full performance analysis of one simulation run
type Report struct {
	Summary         Summary             `json:"summary"`
	Performance     PerformanceMetrics  `json:"performance"`
	Risk            RiskMetrics         `json:"risk"`
	Benchmarks      BenchmarkComparison `json:"benchmarks"`
	Recommendations []Recommendation    `json:"recommendations"`
}
