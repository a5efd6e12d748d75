package data

import (
	"errors"

	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/kline"
)

var (
	// ErrDataUnavailable is returned when no feed entry exists for the
	// requested pair and tick. The tick loop treats this as recoverable
	// and skips the pair for the tick
	ErrDataUnavailable = errors.New("no data available for pair at tick")

	errNilSeries   = errors.New("nil market series received")
	errEmptySeries = errors.New("market series holds no ticks")
)

// Series owns every feed for one pair, aggregated across all supported
// timeframes at construction. The feeds are immutable afterwards; only the
// cursor offset moves, and only the simulation clock moves it
type Series struct {
	pair    string
	prices  []datagen.PricePoint
	volumes []datagen.VolumePoint
	book    []datagen.OrderBookSnapshot
	mood    []datagen.SentimentSnapshot
	news    []datagen.NewsEvent
	klines  map[kline.Interval]*kline.Item
	offset  int
}

// HandlerHolder routes pair names to their series, mirroring how the
// simulation clock looks feeds up per pair per tick
type HandlerHolder struct {
	data map[string]*Series
}
