// Package data exposes tick-cursor windowed views over the generated market
// series. Strategies can only see history up to the current tick
package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/cryptickmill/marketsim/datagen"
	"github.com/cryptickmill/marketsim/kline"
)

// NewSeries wraps a generated market series, aggregating every supported
// timeframe up front
func NewSeries(m *datagen.MarketSeries) (*Series, error) {
	if m == nil {
		return nil, errNilSeries
	}
	if len(m.Prices) == 0 {
		return nil, fmt.Errorf("%w for %v", errEmptySeries, m.Pair)
	}
	klines, err := kline.AggregateAll(m.Pair, m.Prices)
	if err != nil {
		return nil, err
	}
	return &Series{
		pair:    m.Pair,
		prices:  m.Prices,
		volumes: m.Volumes,
		book:    m.OrderBook,
		mood:    m.Sentiment,
		news:    m.News,
		klines:  klines,
	}, nil
}

// Pair returns the series' trading pair
func (s *Series) Pair() string {
	return s.pair
}

// Next advances the cursor one tick, returning false once the stream is
// exhausted
func (s *Series) Next() bool {
	if s.offset >= len(s.prices) {
		return false
	}
	s.offset++
	return true
}

// Offset returns the current cursor position, 1-based after the first Next
func (s *Series) Offset() int {
	return s.offset
}

// Total returns the total tick count held by the series
func (s *Series) Total() int {
	return len(s.prices)
}

// Latest returns the price point at the cursor
func (s *Series) Latest() (*datagen.PricePoint, error) {
	if s.offset == 0 || s.offset > len(s.prices) {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, s.pair)
	}
	return &s.prices[s.offset-1], nil
}

// LatestPrice resolves the execution reference price from the finest
// available timeframe at the cursor
func (s *Series) LatestPrice() (float64, error) {
	candles, err := s.CandleHistory(kline.OneSecond)
	if err != nil {
		return 0, err
	}
	if len(candles) == 0 {
		return 0, fmt.Errorf("%w: %v", ErrDataUnavailable, s.pair)
	}
	return candles[len(candles)-1].Close, nil
}

// LatestVolume returns the tick volume at the cursor
func (s *Series) LatestVolume() (float64, error) {
	latest, err := s.Latest()
	if err != nil {
		return 0, err
	}
	return latest.Volume, nil
}

// LatestOrderBook returns the order book snapshot at the cursor
func (s *Series) LatestOrderBook() (*datagen.OrderBookSnapshot, error) {
	if s.offset == 0 || s.offset > len(s.book) {
		return nil, fmt.Errorf("%w: %v order book", ErrDataUnavailable, s.pair)
	}
	return &s.book[s.offset-1], nil
}

// LatestSentiment returns the sentiment snapshot at the cursor
func (s *Series) LatestSentiment() (*datagen.SentimentSnapshot, error) {
	if s.offset == 0 || s.offset > len(s.mood) {
		return nil, fmt.Errorf("%w: %v sentiment", ErrDataUnavailable, s.pair)
	}
	return &s.mood[s.offset-1], nil
}

// History returns all price points up to and including the cursor
func (s *Series) History() []datagen.PricePoint {
	return s.prices[:s.offset]
}

// CandleHistory returns the candles at the given timeframe visible at the
// cursor. Fully closed buckets come from the precomputed aggregation; the
// bucket containing the cursor is rebuilt from tick history so that no
// future ticks leak into a still-forming candle
func (s *Series) CandleHistory(interval kline.Interval) ([]kline.Candle, error) {
	item, ok := s.klines[interval]
	if !ok {
		return nil, fmt.Errorf("%w: %v", kline.ErrUnsupportedInterval, interval.Duration())
	}
	latest, err := s.Latest()
	if err != nil {
		return nil, err
	}

	var out []kline.Candle
	for i := range item.Candles {
		c := item.Candles[i]
		if c.Time.After(latest.Timestamp) {
			break
		}
		if !c.Time.Add(interval.Duration()).After(latest.Timestamp) {
			out = append(out, c)
			continue
		}
		out = append(out, s.formingCandle(c.Time))
		break
	}
	return out, nil
}

// formingCandle folds the visible ticks of the bucket opening at start into
// a partial candle
func (s *Series) formingCandle(start time.Time) kline.Candle {
	first := s.offset
	for first > 0 && !s.prices[first-1].Timestamp.Before(start) {
		first--
	}
	forming := kline.Candle{Time: start}
	for j := first; j < s.offset; j++ {
		p := s.prices[j]
		if forming.Trades == 0 {
			forming.Open = p.Price
			forming.High = p.Price
			forming.Low = p.Price
		}
		if p.Price > forming.High {
			forming.High = p.Price
		}
		if p.Price < forming.Low {
			forming.Low = p.Price
		}
		forming.Close = p.Price
		forming.Volume += p.Volume
		forming.Trades++
	}
	return forming
}

// ActiveNews returns the news events in effect at the cursor's timestamp
func (s *Series) ActiveNews() []datagen.NewsEvent {
	latest, err := s.Latest()
	if err != nil {
		return nil
	}
	var active []datagen.NewsEvent
	for i := range s.news {
		if !s.news[i].Timestamp.After(latest.Timestamp) &&
			s.news[i].Timestamp.Add(s.news[i].Duration).After(latest.Timestamp) {
			active = append(active, s.news[i])
		}
	}
	return active
}

// Setup creates the pair lookup map
func (h *HandlerHolder) Setup() {
	if h.data == nil {
		h.data = make(map[string]*Series)
	}
}

// SetDataForPair assigns a series to the holder by pair name
func (h *HandlerHolder) SetDataForPair(pair string, s *Series) {
	h.Setup()
	h.data[strings.ToUpper(pair)] = s
}

// GetDataForPair returns the series for a pair
func (h *HandlerHolder) GetDataForPair(pair string) (*Series, error) {
	s, ok := h.data[strings.ToUpper(pair)]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, pair)
	}
	return s, nil
}

// GetAllData returns every series held
func (h *HandlerHolder) GetAllData() map[string]*Series {
	return h.data
}
