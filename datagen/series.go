package datagen

import (
	"time"

	"github.com/cryptickmill/marketsim/common"
)

const (
	baseTickVolume    = 1_000_000.0
	volumeImpactScale = 50.0

	bookVolumeMin = 800_000.0
	bookVolumeMax = 1_200_000.0
	spreadRateMin = 0.0001
	spreadRateMax = 0.0005

	sentimentMomentum  = 0.1
	sentimentPriceGain = 200.0
	sentimentReversion = 0.95
	sentimentNeutral   = 0.5
	sentimentNoise     = 0.02

	newsEventsPerHour = 5.0
)

var newsEventTypes = []NewsEventType{
	NewsListing,
	NewsRegulatory,
	NewsPartnership,
	NewsExploit,
	NewsWhaleMove,
}

func (g *Generator) uniform(minVal, maxVal float64) float64 {
	return minVal + g.rng.Float64()*(maxVal-minVal)
}

// timeOfDayMultiplier scales volume by trading session. Buckets are in UTC
func timeOfDayMultiplier(t time.Time) float64 {
	switch hour := t.UTC().Hour(); {
	case hour < 6:
		return 0.6
	case hour < 12:
		return 1.0
	case hour < 18:
		return 1.4
	case hour < 22:
		return 1.2
	default:
		return 0.8
	}
}

func (g *Generator) generateVolumes(prices []PricePoint) []VolumePoint {
	volumes := make([]VolumePoint, len(prices))
	for i := range prices {
		change := prices[i].Change
		if change < 0 {
			change = -change
		}
		total := baseTickVolume *
			(1 + volumeImpactScale*change) *
			timeOfDayMultiplier(prices[i].Timestamp) *
			g.uniform(0.7, 1.3)
		volumes[i] = VolumePoint{
			Timestamp: prices[i].Timestamp,
			Total:     total,
			Buy:       total * g.uniform(0.45, 0.55),
			Sell:      total * g.uniform(0.45, 0.55),
		}
	}
	return volumes
}

func (g *Generator) generateOrderBook(prices []PricePoint) []OrderBookSnapshot {
	book := make([]OrderBookSnapshot, len(prices))
	for i := range prices {
		price := prices[i].Price
		spread := price * g.uniform(spreadRateMin, spreadRateMax)
		bidVolume := g.uniform(bookVolumeMin, bookVolumeMax)
		askVolume := g.uniform(bookVolumeMin, bookVolumeMax)

		var largeOrders []LargeOrder
		for j := g.rng.Intn(4); j > 0; j-- {
			side := common.Buy
			offset := -g.uniform(0.001, 0.01)
			if g.rng.Float64() < 0.5 {
				side = common.Sell
				offset = -offset
			}
			largeOrders = append(largeOrders, LargeOrder{
				Side:        side,
				Size:        g.uniform(50_000, 500_000),
				PriceOffset: offset,
			})
		}

		book[i] = OrderBookSnapshot{
			Timestamp:   prices[i].Timestamp,
			BidPrice:    price - spread/2,
			AskPrice:    price + spread/2,
			BidVolume:   bidVolume,
			AskVolume:   askVolume,
			Spread:      spread,
			Imbalance:   (bidVolume - askVolume) / (bidVolume + askVolume),
			LargeOrders: largeOrders,
		}
	}
	return book
}

// generateSentiment walks a mean-reverting score: price momentum pushes it
// away from neutral, reversion pulls it back, noise keeps it alive. The
// score is clamped to [0, 1] every tick
func (g *Generator) generateSentiment(prices []PricePoint, news []NewsEvent) []SentimentSnapshot {
	sentiment := make([]SentimentSnapshot, len(prices))
	score := sentimentNeutral
	for i := range prices {
		score += sentimentMomentum * (sentimentPriceGain * prices[i].Change)
		score = sentimentReversion*score + (1-sentimentReversion)*sentimentNeutral
		score += g.uniform(-sentimentNoise, sentimentNoise)
		score = clamp01(score)

		var newsImpact float64
		for j := range news {
			if !news[j].Timestamp.After(prices[i].Timestamp) &&
				news[j].Timestamp.Add(news[j].Duration).After(prices[i].Timestamp) {
				newsImpact += news[j].Impact
			}
		}

		sentiment[i] = SentimentSnapshot{
			Timestamp:      prices[i].Timestamp,
			Score:          score,
			NewsImpact:     newsImpact,
			SocialMomentum: clamp01(sentimentNeutral + 100*prices[i].Change + g.uniform(-0.05, 0.05)),
			FearGreedIndex: score * 100,
			Confidence:     g.uniform(0.5, 1),
		}
	}
	return sentiment
}

// generateNews draws a Bernoulli trial per tick calibrated to an average of
// newsEventsPerHour events
func (g *Generator) generateNews(prices []PricePoint) []NewsEvent {
	probability := newsEventsPerHour * g.tickInterval.Hours()
	var events []NewsEvent
	for i := range prices {
		if g.rng.Float64() >= probability {
			continue
		}
		events = append(events, NewsEvent{
			Timestamp:  prices[i].Timestamp,
			Type:       newsEventTypes[g.rng.Intn(len(newsEventTypes))],
			Impact:     g.uniform(-0.05, 0.05),
			Duration:   30*time.Second + time.Duration(g.rng.Int63n(int64(570*time.Second))),
			Confidence: g.uniform(0.3, 1),
		})
	}
	return events
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
