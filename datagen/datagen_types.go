package datagen

import (
	"errors"
	"time"

	"github.com/cryptickmill/marketsim/common"
)

var (
	// ErrUnknownScenario is returned when a scenario tag has no registered profile
	ErrUnknownScenario = errors.New("unknown market scenario")

	errNoRandSource   = errors.New("a random source is required")
	errInvalidTicks   = errors.New("duration and tick interval must produce at least two ticks")
	errInvalidBase    = errors.New("base price must be positive")
	errUnsetGenerator = errors.New("generator is unset")
)

// PricePoint is one tick of the base synthetic feed
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	Volume    float64   `json:"volume"`
}

// VolumePoint holds the per-tick traded volume split by aggressor side.
// Buy and sell shares are independently randomised and intentionally do not
// sum to the total
type VolumePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Total     float64   `json:"total"`
	Buy       float64   `json:"buy"`
	Sell      float64   `json:"sell"`
}

// LargeOrder is a resting order big enough to show up in book analysis
type LargeOrder struct {
	Side        common.Side `json:"side"`
	Size        float64     `json:"size"`
	PriceOffset float64     `json:"price-offset"`
}

// OrderBookSnapshot is the synthetic top-of-book state at one tick
type OrderBookSnapshot struct {
	Timestamp   time.Time    `json:"timestamp"`
	BidPrice    float64      `json:"bid-price"`
	AskPrice    float64      `json:"ask-price"`
	BidVolume   float64      `json:"bid-volume"`
	AskVolume   float64      `json:"ask-volume"`
	Spread      float64      `json:"spread"`
	Imbalance   float64      `json:"imbalance"`
	LargeOrders []LargeOrder `json:"large-orders,omitempty"`
}

// SentimentSnapshot is the synthetic crowd mood at one tick. Score is
// mean-reverting around neutral 0.5 and always within [0, 1]
type SentimentSnapshot struct {
	Timestamp      time.Time `json:"timestamp"`
	Score          float64   `json:"score"`
	NewsImpact     float64   `json:"news-impact"`
	SocialMomentum float64   `json:"social-momentum"`
	FearGreedIndex float64   `json:"fear-greed-index"`
	Confidence     float64   `json:"confidence"`
}

// NewsEventType classifies a synthetic news event
type NewsEventType string

// Synthetic news event classifications
const (
	NewsListing     NewsEventType = "LISTING"
	NewsRegulatory  NewsEventType = "REGULATORY"
	NewsPartnership NewsEventType = "PARTNERSHIP"
	NewsExploit     NewsEventType = "EXPLOIT"
	NewsWhaleMove   NewsEventType = "WHALE MOVEMENT"
)

// NewsEvent is a discrete market moving event with a decaying influence window
type NewsEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Type       NewsEventType `json:"type"`
	Impact     float64       `json:"impact"`
	Duration   time.Duration `json:"duration"`
	Confidence float64       `json:"confidence"`
}

// MarketSeries bundles every correlated feed for one pair. It is generated
// once per run and must not be mutated afterwards
type MarketSeries struct {
	Pair      string              `json:"pair"`
	Prices    []PricePoint        `json:"prices"`
	Volumes   []VolumePoint       `json:"volumes"`
	OrderBook []OrderBookSnapshot `json:"order-book"`
	Sentiment []SentimentSnapshot `json:"sentiment"`
	News      []NewsEvent         `json:"news"`
}
