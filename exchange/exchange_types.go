package exchange

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
)

var errInvalidFeeRate = errors.New("fee rate cannot be negative")

// Settings control execution behaviour for every order routed through the
// simulator
type Settings struct {
	FeeRate decimal.Decimal
}

// MarketConditions captures the state of the synthetic market at execution
// time. It is stored on the trade record for later analysis
type MarketConditions struct {
	Price          float64 `json:"price"`
	Spread         float64 `json:"spread"`
	Imbalance      float64 `json:"imbalance"`
	SentimentScore float64 `json:"sentiment-score"`
}

// TradeRecord is one append-only ledger entry for an accepted order
type TradeRecord struct {
	ID              uuid.UUID        `json:"id"`
	Timestamp       time.Time        `json:"timestamp"`
	Tick            int64            `json:"tick"`
	Pair            string           `json:"pair"`
	Side            common.Side      `json:"side"`
	Price           decimal.Decimal  `json:"price"`
	ExecPrice       decimal.Decimal  `json:"exec-price"`
	Slippage        decimal.Decimal  `json:"slippage"`
	Fee             decimal.Decimal  `json:"fee"`
	RequestedAmount decimal.Decimal  `json:"requested-amount"`
	NetAmount       decimal.Decimal  `json:"net-amount"`
	Quantity        decimal.Decimal  `json:"quantity"`
	PnL             decimal.Decimal  `json:"pnl"`
	Conditions      MarketConditions `json:"conditions"`
}

// Exchange simulates order execution: it applies slippage and fees,
// enforces portfolio constraints and appends to the trade ledger
type Exchange struct {
	settings Settings
	trades   []TradeRecord
}
