package portfolio

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds is raised when a BUY's net amount exceeds
	// available cash. The order is dropped and the portfolio untouched
	ErrInsufficientFunds = errors.New("insufficient funds to cover order")
	// ErrInsufficientPosition is raised when a SELL asks for more base
	// quantity than is held. The order is dropped and the portfolio untouched
	ErrInsufficientPosition = errors.New("insufficient position to cover order")
	// ErrInitialFundsZero is an error when initial funds are zero or less
	ErrInitialFundsZero = errors.New("initial funds must be greater than zero")

	errNoPosition     = errors.New("no position held for pair")
	errNegativeAmount = errors.New("amounts must be positive")
)

// Position tracks base holdings for one pair. It is exclusively owned by
// the Portfolio and mutated only through buy/sell processing
type Position struct {
	Pair        string
	Quantity    decimal.Decimal
	AvgPrice    decimal.Decimal
	TotalCost   decimal.Decimal
	LastUpdated time.Time
}

// Portfolio holds quote cash plus all open positions and tracks running
// high/low watermarks of total value across the run
type Portfolio struct {
	initialFunds decimal.Decimal
	cash         decimal.Decimal
	positions    map[string]*Position
	totalValue   decimal.Decimal
	maxValue     decimal.Decimal
	minValue     decimal.Decimal
}

// Snapshot is an append-only timeline sample of portfolio state
type Snapshot struct {
	Timestamp      time.Time       `json:"timestamp"`
	PortfolioValue decimal.Decimal `json:"portfolio-value"`
	Cash           decimal.Decimal `json:"cash"`
	PositionsValue decimal.Decimal `json:"positions-value"`
	PositionsCount int             `json:"positions-count"`
}
