package exchange

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptickmill/marketsim/common"
	"github.com/cryptickmill/marketsim/data"
	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/portfolio"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testFixture(t *testing.T) (*Exchange, *data.Series, *portfolio.Portfolio) {
	t.Helper()
	g, err := datagen.New("sideways", testStart, 5*time.Minute, time.Second, 100, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	m, err := g.Generate("BTC-USDT")
	require.NoError(t, err)
	d, err := data.NewSeries(m)
	require.NoError(t, err)
	require.True(t, d.Next())

	pf, err := portfolio.Setup(decimal.NewFromInt(10000))
	require.NoError(t, err)

	e, err := New(Settings{FeeRate: decimal.NewFromFloat(0.001)})
	require.NoError(t, err)
	return e, d, pf
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(Settings{FeeRate: decimal.NewFromFloat(-0.1)})
	assert.ErrorIs(t, err, errInvalidFeeRate)
}

func TestExecuteOrderValidation(t *testing.T) {
	t.Parallel()
	e, d, pf := testFixture(t)

	_, err := e.ExecuteOrder(nil, 0, d, pf)
	assert.ErrorIs(t, err, common.ErrNilOrder)

	_, err = e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: "HODL", Amount: decimal.NewFromInt(1)}, 0, d, pf)
	assert.ErrorIs(t, err, common.ErrInvalidSide)

	_, err = e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Buy, Amount: decimal.NewFromInt(100)}, 0, nil, pf)
	assert.ErrorIs(t, err, common.ErrNilArguments)
}

func TestExecuteBuy(t *testing.T) {
	t.Parallel()
	e, d, pf := testFixture(t)

	latest, err := d.Latest()
	require.NoError(t, err)
	amount := decimal.NewFromInt(100)

	record, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Buy, Amount: amount}, 0, d, pf)
	require.NoError(t, err)

	price := decimal.NewFromFloat(latest.Price)
	expectedSlippage := amount.Div(decimal.NewFromFloat(latest.Volume)).Mul(decimal.NewFromFloat(0.1))
	expectedExec := price.Mul(decimal.NewFromInt(1).Add(expectedSlippage))
	expectedFee := amount.Mul(decimal.NewFromFloat(0.001))

	assert.True(t, record.Slippage.Equal(expectedSlippage), "slippage %v want %v", record.Slippage, expectedSlippage)
	assert.True(t, record.ExecPrice.Equal(expectedExec))
	assert.True(t, record.Fee.Equal(expectedFee))
	assert.True(t, record.NetAmount.Equal(amount.Add(expectedFee)))
	assert.True(t, record.Quantity.Equal(amount.Div(expectedExec)))
	assert.True(t, pf.Cash().Equal(decimal.NewFromInt(10000).Sub(record.NetAmount)))
	assert.NotEqual(t, record.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Positive(t, record.Conditions.Price)
	assert.Len(t, e.Trades(), 1)
}

func TestExecuteBuyInsufficientFunds(t *testing.T) {
	t.Parallel()
	e, d, pf := testFixture(t)

	cashBefore := pf.Cash()
	_, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Buy, Amount: decimal.NewFromInt(10000)}, 0, d, pf)
	assert.ErrorIs(t, err, portfolio.ErrInsufficientFunds, "10000 + fee exceeds cash")
	assert.True(t, pf.Cash().Equal(cashBefore), "portfolio must be exactly unchanged")
	assert.Empty(t, pf.Positions())
	assert.Empty(t, e.Trades(), "rejected orders never reach the ledger")
}

func TestExecuteSell(t *testing.T) {
	t.Parallel()
	e, d, pf := testFixture(t)

	buyAmount := decimal.NewFromInt(5000)
	_, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Buy, Amount: buyAmount}, 0, d, pf)
	require.NoError(t, err)
	require.True(t, d.Next())

	posBefore, err := pf.GetPosition("BTC-USDT")
	require.NoError(t, err)

	sellAmount := decimal.NewFromInt(1000)
	record, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Sell, Amount: sellAmount}, 1, d, pf)
	require.NoError(t, err)

	expectedFee := sellAmount.Mul(decimal.NewFromFloat(0.001))
	assert.True(t, record.NetAmount.Equal(sellAmount.Sub(expectedFee)))
	assert.True(t, record.Quantity.Equal(record.NetAmount.Div(record.ExecPrice)))
	expectedPnL := record.ExecPrice.Sub(posBefore.AvgPrice).Mul(record.Quantity)
	assert.True(t, record.PnL.Equal(expectedPnL), "pnl realised against average cost")

	posAfter, err := pf.GetPosition("BTC-USDT")
	require.NoError(t, err)
	assert.True(t, posAfter.Quantity.Equal(posBefore.Quantity.Sub(record.Quantity)))
}

func TestExecuteSellInsufficientPosition(t *testing.T) {
	t.Parallel()
	e, d, pf := testFixture(t)

	cashBefore := pf.Cash()
	_, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Sell, Amount: decimal.NewFromInt(100)}, 0, d, pf)
	assert.ErrorIs(t, err, portfolio.ErrInsufficientPosition, "nothing held yet")
	assert.True(t, pf.Cash().Equal(cashBefore))

	// buy a tiny amount then oversell
	_, err = e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Buy, Amount: decimal.NewFromInt(10)}, 0, d, pf)
	require.NoError(t, err)
	_, err = e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Sell, Amount: decimal.NewFromInt(5000)}, 0, d, pf)
	assert.ErrorIs(t, err, portfolio.ErrInsufficientPosition)
	assert.Len(t, e.Trades(), 1, "only the buy reached the ledger")
}

func TestSlippageDirection(t *testing.T) {
	t.Parallel()
	e, d, pf := testFixture(t)

	buy, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Buy, Amount: decimal.NewFromInt(1000)}, 0, d, pf)
	require.NoError(t, err)
	assert.True(t, buy.ExecPrice.GreaterThan(buy.Price), "buys pay up")

	sell, err := e.ExecuteOrder(&common.Order{Pair: "BTC-USDT", Side: common.Sell, Amount: decimal.NewFromInt(100)}, 0, d, pf)
	require.NoError(t, err)
	assert.True(t, sell.ExecPrice.LessThan(sell.Price), "sells get marked down")
}
