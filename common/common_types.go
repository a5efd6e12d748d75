package common

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Side dictates the direction of an order
type Side string

const (
	// Buy is an order intent to purchase the base currency with quote funds
	Buy Side = "BUY"
	// Sell is an order intent to liquidate base holdings back into quote funds
	Sell Side = "SELL"
	// DoNothing is an explicit signal for the engine to not perform an action
	// based upon strategy results
	DoNothing Side = "DO NOTHING"
)

// SimpleTimeFormat a common, but non-implicit time format
const SimpleTimeFormat = "2006-01-02 15:04:05"

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilOrder occurs when an order is routed for execution but is nil
	ErrNilOrder = errors.New("nil order received")
	// ErrInvalidSide occurs when an order side is not BUY or SELL
	ErrInvalidSide = errors.New("invalid order side received")
)

// Order is a strategy-issued intent to trade. It is not a trade until the
// execution simulator accepts it
type Order struct {
	Pair       string
	Side       Side
	Amount     decimal.Decimal // requested amount in quote currency
	Confidence float64
}

// Validate checks basic required fields on an order intent
func (o *Order) Validate() error {
	if o == nil {
		return ErrNilOrder
	}
	if o.Side != Buy && o.Side != Sell {
		return ErrInvalidSide
	}
	if o.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("order amount must be positive")
	}
	return nil
}
