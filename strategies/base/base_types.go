package base

import (
	"errors"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/data"
	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/portfolio"
)

var (
	// ErrInvalidCustomSettings is returned on unrecognised or malformed
	// custom strategy settings
	ErrInvalidCustomSettings = errors.New("invalid custom settings")
	// ErrNilTick occurs when a decision hook receives no tick context
	ErrNilTick = errors.New("nil tick context received")
)

// Hints carries externally supplied regime/ML signals. The engine forwards
// them to the hook verbatim and never interprets them itself
type Hints struct {
	Regime  string
	Signals map[string]float64
}

// Tick is the windowed view of the market a decision hook sees for one pair
// on one tick. Everything in it is read-only
type Tick struct {
	Pair      string
	Tick      int64
	Data      *data.Series
	OrderBook *datagen.OrderBookSnapshot
	Sentiment *datagen.SentimentSnapshot
	News      []datagen.NewsEvent
	Portfolio *portfolio.Portfolio
	Hints     Hints
}

// Handler is the decision hook contract. OnTick returns at most one order
// intent per pair per tick; nil means no action
type Handler interface {
	Name() string
	Description() string
	OnTick(t *Tick) (*common.Order, error)
	SetCustomSettings(map[string]any) error
	SetDefaults()
}
