package engine

import (
	"errors"
	"math/rand"
	"time"

	"github.com/gofrs/uuid"

	"github.com/cryptickmill/marketsim/config"
	"github.com/cryptickmill/marketsim/data"
	"github.com/cryptickmill/marketsim/exchange"
	"github.com/cryptickmill/marketsim/portfolio"
	"github.com/cryptickmill/marketsim/statistics"
	"github.com/cryptickmill/marketsim/strategies/base"
)

// Status is the lifecycle state of a simulation run
type Status string

const (
	// StatusNotStarted is the state before Run is called
	StatusNotStarted Status = "NOT_STARTED"
	// StatusRunning is the state while the tick loop is executing
	StatusRunning Status = "RUNNING"
	// StatusCompleted is the terminal state of a finished run
	StatusCompleted Status = "COMPLETED"
	// StatusFailed is the terminal state after an unrecoverable
	// initialization error or an external abort
	StatusFailed Status = "FAILED"
)

var (
	// ErrAlreadyRan occurs when Run is invoked on a simulation that has
	// already left the NOT_STARTED state
	ErrAlreadyRan = errors.New("simulation has already run")
	// ErrNotFinished occurs when results are requested before the run
	// reaches a terminal state
	ErrNotFinished = errors.New("simulation has not finished")

	errNoUsableData = errors.New("no pair produced usable market data")
)

// TickError is one entry in the run's error ledger: a pair's processing
// failure on one tick, recorded without halting the loop
type TickError struct {
	Tick      int64     `json:"tick"`
	Timestamp time.Time `json:"timestamp"`
	Pair      string    `json:"pair"`
	Message   string    `json:"message"`
}

// Simulation owns one backtesting run from construction to report
type Simulation struct {
	RunID uuid.UUID

	cfg      *config.Config
	rng      *rand.Rand
	strategy base.Handler
	hints    base.Hints

	status    Status
	holder    data.HandlerHolder
	pairs     []string
	exchange  *exchange.Exchange
	portfolio *portfolio.Portfolio
	timeline  []portfolio.Snapshot
	tickErrs  []TickError
	report    *statistics.Report
}
