package kline

import (
	"errors"
	"strings"
	"time"
)

// Interval type for kline bucketing
type Interval time.Duration

// Supported simulation timeframes
const (
	OneSecond      = Interval(time.Second)
	FiveSeconds    = Interval(5 * time.Second)
	FifteenSeconds = Interval(15 * time.Second)
	OneMinute      = Interval(time.Minute)
	FiveMinutes    = Interval(5 * time.Minute)
)

var (
	// ErrUnsupportedInterval is returned when an interval is not in the
	// supported timeframe set
	ErrUnsupportedInterval = errors.New("interval unsupported by timeframe aggregator")

	errNoTickData = errors.New("no tick data to aggregate")

	supportedIntervals = []Interval{
		OneSecond,
		FiveSeconds,
		FifteenSeconds,
		OneMinute,
		FiveMinutes,
	}
)

// Candle holds one open-high-low-close-volume aggregate for a timeframe
// bucket. Trades is the number of constituent ticks
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
	Trades int64     `json:"trades"`
}

// Item holds all candles for one pair at one timeframe
type Item struct {
	Pair     string
	Interval Interval
	Candles  []Candle
}

// Duration returns the interval casted as a time.Duration
func (i Interval) Duration() time.Duration {
	return time.Duration(i)
}

// Short returns a human readable label eg 1m0s -> 1m
func (i Interval) Short() string {
	s := i.Duration().String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// SupportedIntervals returns the closed timeframe set, finest first
func SupportedIntervals() []Interval {
	resp := make([]Interval, len(supportedIntervals))
	copy(resp, supportedIntervals)
	return resp
}

// IsSupported validates an interval against the closed timeframe set
func (i Interval) IsSupported() bool {
	for x := range supportedIntervals {
		if supportedIntervals[x] == i {
			return true
		}
	}
	return false
}
