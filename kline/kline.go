// Package kline buckets tick level series into OHLCV candles across the
// supported simulation timeframes
package kline

import (
	"fmt"
	"time"

	"github.com/cryptickmill/marketsim/datagen"
)

// Aggregate folds a tick series into candles at the requested interval.
// Points sharing floor(timestamp/interval) land in the same bucket; buckets
// finalise strictly in timestamp order as the bucket id changes. Empty
// intervals are not gap-filled
func Aggregate(pair string, prices []datagen.PricePoint, interval Interval) (*Item, error) {
	if !interval.IsSupported() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInterval, interval.Duration())
	}
	if len(prices) == 0 {
		return nil, errNoTickData
	}

	intervalLength := int64(interval.Duration() / time.Second)
	item := &Item{
		Pair:     pair,
		Interval: interval,
	}

	var current Candle
	currentBucket := int64(-1)
	for i := range prices {
		bucket := prices[i].Timestamp.Unix() / intervalLength
		if bucket != currentBucket {
			if currentBucket >= 0 {
				item.Candles = append(item.Candles, current)
			}
			currentBucket = bucket
			current = Candle{
				Time: time.Unix(bucket*intervalLength, 0).UTC(),
				Open: prices[i].Price,
				High: prices[i].Price,
				Low:  prices[i].Price,
			}
		}
		if prices[i].Price > current.High {
			current.High = prices[i].Price
		}
		if prices[i].Price < current.Low {
			current.Low = prices[i].Price
		}
		current.Close = prices[i].Price
		current.Volume += prices[i].Volume
		current.Trades++
	}
	item.Candles = append(item.Candles, current)

	return item, nil
}

// AggregateAll produces one Item per supported timeframe for a tick series
func AggregateAll(pair string, prices []datagen.PricePoint) (map[Interval]*Item, error) {
	resp := make(map[Interval]*Item, len(supportedIntervals))
	for _, interval := range SupportedIntervals() {
		item, err := Aggregate(pair, prices, interval)
		if err != nil {
			return nil, err
		}
		resp[interval] = item
	}
	return resp, nil
}
