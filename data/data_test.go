package data

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/kline"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testSeries(t *testing.T) *Series {
	t.Helper()
	g, err := datagen.New("sideways", testStart, 5*time.Minute, time.Second, 100, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	m, err := g.Generate("BTC-USDT")
	require.NoError(t, err)
	s, err := NewSeries(m)
	require.NoError(t, err)
	return s
}

func TestNewSeries(t *testing.T) {
	t.Parallel()
	_, err := NewSeries(nil)
	assert.ErrorIs(t, err, errNilSeries)

	_, err = NewSeries(&datagen.MarketSeries{Pair: "BTC-USDT"})
	assert.ErrorIs(t, err, errEmptySeries)

	s := testSeries(t)
	assert.Equal(t, "BTC-USDT", s.Pair())
	assert.Equal(t, 300, s.Total())
}

func TestCursorBeforeFirstAdvance(t *testing.T) {
	t.Parallel()
	s := testSeries(t)
	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrDataUnavailable)
	_, err = s.LatestOrderBook()
	assert.ErrorIs(t, err, ErrDataUnavailable)
	_, err = s.LatestSentiment()
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Empty(t, s.History())
}

func TestNextAndLatest(t *testing.T) {
	t.Parallel()
	s := testSeries(t)
	require.True(t, s.Next())
	assert.Equal(t, 1, s.Offset())

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, testStart, latest.Timestamp)

	var advances int
	for s.Next() {
		advances++
	}
	assert.Equal(t, 299, advances, "cursor stops at stream end")
	assert.False(t, s.Next())

	latest, err = s.Latest()
	require.NoError(t, err)
	assert.Equal(t, testStart.Add(299*time.Second), latest.Timestamp)
	assert.Len(t, s.History(), 300)
}

func TestLatestPriceTracksFinestTimeframe(t *testing.T) {
	t.Parallel()
	s := testSeries(t)
	require.True(t, s.Next())
	require.True(t, s.Next())

	latest, err := s.Latest()
	require.NoError(t, err)
	price, err := s.LatestPrice()
	require.NoError(t, err)
	assert.Equal(t, latest.Price, price, "1s candles mirror the tick feed")
}

func TestCandleHistoryWindowing(t *testing.T) {
	t.Parallel()
	s := testSeries(t)
	// advance 90 ticks: one full minute candle plus a forming one
	for i := 0; i < 90; i++ {
		require.True(t, s.Next())
	}
	candles, err := s.CandleHistory(kline.OneMinute)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, testStart, candles[0].Time)
	assert.EqualValues(t, 60, candles[0].Trades)
	assert.EqualValues(t, 30, candles[1].Trades, "second candle is still forming")

	_, err = s.CandleHistory(kline.Interval(7 * time.Second))
	assert.ErrorIs(t, err, kline.ErrUnsupportedInterval)
}

func TestHandlerHolder(t *testing.T) {
	t.Parallel()
	var h HandlerHolder
	s := testSeries(t)
	h.SetDataForPair("btc-usdt", s)

	got, err := h.GetDataForPair("BTC-USDT")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = h.GetDataForPair("ETH-USDT")
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Len(t, h.GetAllData(), 1)
}
