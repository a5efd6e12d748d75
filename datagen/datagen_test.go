package datagen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testGenerator(t *testing.T, scenario string, seed int64) *Generator {
	t.Helper()
	g, err := New(scenario, testStart, time.Hour, time.Second, 100, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))

	_, err := New("not-a-scenario", testStart, time.Hour, time.Second, 100, rng)
	assert.ErrorIs(t, err, ErrUnknownScenario)

	_, err = New("sideways", testStart, time.Hour, time.Second, 100, nil)
	assert.ErrorIs(t, err, errNoRandSource)

	_, err = New("sideways", testStart, time.Hour, time.Second, -1, rng)
	assert.ErrorIs(t, err, errInvalidBase)

	_, err = New("sideways", testStart, time.Second, time.Second, 100, rng)
	assert.ErrorIs(t, err, errInvalidTicks)

	g, err := New("SIDEWAYS", testStart, time.Hour, time.Second, 100, rng)
	require.NoError(t, err)
	assert.EqualValues(t, 3600, g.totalTicks, "scenario tags are case insensitive")
}

func TestScenarios(t *testing.T) {
	t.Parallel()
	names := Scenarios()
	require.NotEmpty(t, names)
	for i := range names {
		s, err := GetScenario(names[i])
		require.NoError(t, err)
		assert.Equal(t, names[i], s.Name)
	}
}

func TestPricePathStaysWithinBounds(t *testing.T) {
	t.Parallel()
	for _, scenario := range Scenarios() {
		for seed := int64(1); seed <= 5; seed++ {
			g := testGenerator(t, scenario, seed)
			series, err := g.Generate("BTC-USDT")
			require.NoError(t, err)
			require.Len(t, series.Prices, 3600)
			for i := range series.Prices {
				p := series.Prices[i].Price
				assert.GreaterOrEqualf(t, p, 70.0, "%v seed %v tick %v below floor", scenario, seed, i)
				assert.LessOrEqualf(t, p, 150.0, "%v seed %v tick %v above ceiling", scenario, seed, i)
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	for _, scenario := range Scenarios() {
		first, err := testGenerator(t, scenario, 1337).Generate("ETH-USDT")
		require.NoError(t, err)
		second, err := testGenerator(t, scenario, 1337).Generate("ETH-USDT")
		require.NoError(t, err)
		assert.Equalf(t, first, second, "scenario %v must replay identically from the same seed", scenario)
	}
}

func TestFlashCrashDip(t *testing.T) {
	t.Parallel()
	g := testGenerator(t, "flash-crash", 7)
	series, err := g.Generate("BTC-USDT")
	require.NoError(t, err)

	windowStart := int(FlashCrashStart * float64(len(series.Prices)))
	windowEnd := int(FlashCrashEnd * float64(len(series.Prices)))
	preCrash := series.Prices[windowStart-1].Price

	lowest := preCrash
	for i := windowStart; i <= windowEnd; i++ {
		if series.Prices[i].Price < lowest {
			lowest = series.Prices[i].Price
		}
	}
	require.Less(t, lowest, preCrash, "the crash window must dip below the pre-crash price")
	dip := (preCrash - lowest) / preCrash
	assert.InDelta(t, FlashCrashDip, dip, FlashCrashDip*0.5)
}

func TestVolumeCorrelation(t *testing.T) {
	t.Parallel()
	series, err := testGenerator(t, "choppy", 3).Generate("BTC-USDT")
	require.NoError(t, err)
	require.Len(t, series.Volumes, len(series.Prices))
	for i := range series.Volumes {
		v := series.Volumes[i]
		assert.Positive(t, v.Total)
		assert.InDelta(t, v.Total*0.5, v.Buy, v.Total*0.05, "buy share stays within 45-55%%")
		assert.InDelta(t, v.Total*0.5, v.Sell, v.Total*0.05, "sell share stays within 45-55%%")
		assert.Equal(t, v.Total, series.Prices[i].Volume, "tick volume mirrors the volume series")
	}
}

func TestOrderBookInvariants(t *testing.T) {
	t.Parallel()
	series, err := testGenerator(t, "trending-bull", 9).Generate("BTC-USDT")
	require.NoError(t, err)
	require.Len(t, series.OrderBook, len(series.Prices))
	for i := range series.OrderBook {
		ob := series.OrderBook[i]
		assert.Greater(t, ob.AskPrice, ob.BidPrice)
		assert.InDelta(t, ob.AskPrice-ob.BidPrice, ob.Spread, 1e-9)
		assert.GreaterOrEqual(t, ob.Spread, series.Prices[i].Price*spreadRateMin*0.999)
		assert.LessOrEqual(t, ob.Spread, series.Prices[i].Price*spreadRateMax*1.001)
		assert.GreaterOrEqual(t, ob.Imbalance, -1.0)
		assert.LessOrEqual(t, ob.Imbalance, 1.0)
		assert.LessOrEqual(t, len(ob.LargeOrders), 3)
	}
}

func TestSentimentBounds(t *testing.T) {
	t.Parallel()
	series, err := testGenerator(t, "trending-bear", 11).Generate("BTC-USDT")
	require.NoError(t, err)
	require.Len(t, series.Sentiment, len(series.Prices))
	for i := range series.Sentiment {
		s := series.Sentiment[i]
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
		assert.InDelta(t, s.Score*100, s.FearGreedIndex, 1e-9)
	}
}

func TestNewsEventRate(t *testing.T) {
	t.Parallel()
	var total int
	const runs = 10
	for seed := int64(0); seed < runs; seed++ {
		series, err := testGenerator(t, "sideways", seed).Generate("BTC-USDT")
		require.NoError(t, err)
		total += len(series.News)
		for i := range series.News {
			e := series.News[i]
			assert.GreaterOrEqual(t, e.Impact, -0.05)
			assert.LessOrEqual(t, e.Impact, 0.05)
			assert.GreaterOrEqual(t, e.Duration, 30*time.Second)
			assert.LessOrEqual(t, e.Duration, 10*time.Minute)
		}
	}
	average := float64(total) / runs
	assert.InDelta(t, 5, average, 3, "roughly five events per simulated hour")
}
