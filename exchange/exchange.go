// Package exchange simulates execution of strategy orders against the
// synthetic feeds: slippage and fee application, portfolio constraint
// enforcement and the append-only trade ledger
package exchange

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/data"
	"github.com/cryptickmill/marketsim/exchange/slippage"
	"github.com/cryptickmill/marketsim/log"
	"github.com/cryptickmill/marketsim/portfolio"
)

// New returns an execution simulator with the supplied settings
func New(settings Settings) (*Exchange, error) {
	if settings.FeeRate.IsNegative() {
		return nil, errInvalidFeeRate
	}
	return &Exchange{settings: settings}, nil
}

// ExecuteOrder resolves the order's reference price from the finest
// timeframe, applies slippage and fees, validates the order against the
// portfolio and mutates it on success. A rejected order leaves the
// portfolio exactly as it was
func (e *Exchange) ExecuteOrder(o *common.Order, tick int64, d *data.Series, pf *portfolio.Portfolio) (*TradeRecord, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if d == nil || pf == nil {
		return nil, common.ErrNilArguments
	}

	latest, err := d.Latest()
	if err != nil {
		return nil, err
	}
	refPrice, err := d.LatestPrice()
	if err != nil {
		return nil, err
	}
	tickVolume, err := d.LatestVolume()
	if err != nil {
		return nil, err
	}

	price := decimal.NewFromFloat(refPrice)
	slippageRate := slippage.Estimate(o.Amount, decimal.NewFromFloat(tickVolume))
	fee := o.Amount.Mul(e.settings.FeeRate)

	var execPrice, netAmount, quantity, pnl decimal.Decimal
	switch o.Side {
	case common.Buy:
		execPrice = price.Mul(decimal.NewFromInt(1).Add(slippageRate))
		netAmount = o.Amount.Add(fee)
		quantity = o.Amount.Div(execPrice)
		if err = pf.ProcessBuy(o.Pair, quantity, netAmount, latest.Timestamp); err != nil {
			return nil, err
		}
	case common.Sell:
		execPrice = price.Mul(decimal.NewFromInt(1).Sub(slippageRate))
		netAmount = o.Amount.Sub(fee)
		quantity = netAmount.Div(execPrice)
		posBefore, posErr := pf.GetPosition(o.Pair)
		if posErr != nil {
			return nil, fmt.Errorf("%w: %v not held", portfolio.ErrInsufficientPosition, o.Pair)
		}
		if err = pf.ProcessSell(o.Pair, quantity, netAmount, latest.Timestamp); err != nil {
			return nil, err
		}
		// realised against the average cost held at settlement time
		pnl = execPrice.Sub(posBefore.AvgPrice).Mul(quantity)
	default:
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidSide, o.Side)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	record := TradeRecord{
		ID:              id,
		Timestamp:       latest.Timestamp,
		Tick:            tick,
		Pair:            o.Pair,
		Side:            o.Side,
		Price:           price,
		ExecPrice:       execPrice,
		Slippage:        slippageRate,
		Fee:             fee,
		RequestedAmount: o.Amount,
		NetAmount:       netAmount,
		Quantity:        quantity,
		PnL:             pnl,
		Conditions:      e.conditionsAt(d, refPrice),
	}
	e.trades = append(e.trades, record)
	log.Debugf(log.ExchangeSim, "executed %v %v %v at %v, slippage %v fee %v",
		o.Side, o.Pair, o.Amount, execPrice, slippageRate, fee)
	return &record, nil
}

func (e *Exchange) conditionsAt(d *data.Series, refPrice float64) MarketConditions {
	conditions := MarketConditions{Price: refPrice}
	if ob, err := d.LatestOrderBook(); err == nil {
		conditions.Spread = ob.Spread
		conditions.Imbalance = ob.Imbalance
	}
	if mood, err := d.LatestSentiment(); err == nil {
		conditions.SentimentScore = mood.Score
	}
	return conditions
}

// Trades returns a copy of the append-only trade ledger
func (e *Exchange) Trades() []TradeRecord {
	resp := make([]TradeRecord, len(e.trades))
	copy(resp, e.trades)
	return resp
}
