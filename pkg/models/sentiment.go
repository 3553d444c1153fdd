package models

import "time"

// Sentiment labels shared by scorers and aggregation.
const (
	LabelBullish = "Bullish"
	LabelBearish = "Bearish"
	LabelNeutral = "Neutral"
)

// MarketSymbol tags content that mentions no known trading symbol.
// Such points still contribute to the market-wide aggregate.
const MarketSymbol = "MARKET"

// SentimentPoint is a single scored piece of content attributed to a symbol.
// Points are immutable once recorded; they leave the store only through
// decay-window expiry.
type SentimentPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Symbol     string    `json:"symbol"`
	Source     string    `json:"source"`
	Title      string    `json:"title,omitempty"`
	URL        string    `json:"url,omitempty"`
	Reasoning  string    `json:"reasoning,omitempty"`
	Score      int       `json:"score"`      // 0-100
	Confidence float64   `json:"confidence"` // 0.0-1.0
}

// SentimentResult is the outcome of scoring one piece of text.
type SentimentResult struct {
	Label      string  `json:"label"`
	Reasoning  string  `json:"reasoning,omitempty"`
	Score      int     `json:"score"`      // 0-100
	Confidence float64 `json:"confidence"` // 0.0-1.0
}

// NeutralResult is the safe default a scorer returns on internal failure.
func NeutralResult(reasoning string) SentimentResult {
	return SentimentResult{
		Score:      50,
		Label:      LabelNeutral,
		Confidence: 0.0,
		Reasoning:  reasoning,
	}
}

// AggregateResult is a decayed, confidence-weighted summary of sentiment
// points for one symbol (or market-wide).
type AggregateResult struct {
	LastUpdate  time.Time `json:"last_update"`
	Label       string    `json:"label"`
	Score       float64   `json:"score"`      // weighted mean, 0-100
	Confidence  float64   `json:"confidence"` // sample-adjusted mean, 0.0-1.0
	SampleCount int       `json:"sample_count"`
}

// NeutralAggregate is what aggregation yields for an empty or fully
// decayed series.
func NeutralAggregate() AggregateResult {
	return AggregateResult{
		Score:       50.0,
		Label:       LabelNeutral,
		Confidence:  0.0,
		SampleCount: 0,
	}
}

// ScoreLabel maps a 0-100 sentiment score to its label.
func ScoreLabel(score float64) string {
	switch {
	case score < 30:
		return LabelBearish
	case score > 70:
		return LabelBullish
	default:
		return LabelNeutral
	}
}
