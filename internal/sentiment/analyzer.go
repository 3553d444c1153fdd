package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// Analyzer is the keyword-based fallback scorer, used when no LLM
// backend is configured. Scores land on the 0-100 scale with 50 as
// neutral.
type Analyzer struct {
	positiveWords map[string]float64
	negativeWords map[string]float64
}

// NewAnalyzer creates a keyword sentiment analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positiveWords: buildPositiveWords(),
		negativeWords: buildNegativeWords(),
	}
}

func (a *Analyzer) GetName() string {
	return "keywords"
}

// Score analyzes title and content and never returns an error.
func (a *Analyzer) Score(_ context.Context, title, content string) (models.SentimentResult, error) {
	text := strings.TrimSpace(title + " " + content)
	if text == "" {
		return models.NeutralResult("empty text"), nil
	}

	words := strings.Fields(strings.ToLower(text))

	var raw float64
	matches := 0
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:'\"()")

		if weight, ok := a.positiveWords[word]; ok {
			raw += weight
			matches++
		}
		if weight, ok := a.negativeWords[word]; ok {
			raw -= weight
			matches++
		}
	}

	if matches == 0 {
		return models.NeutralResult("no sentiment keywords matched"), nil
	}

	// Normalize by match count so long articles do not dilute signal,
	// then map [-1, 1] onto the 0-100 scale.
	normalized := raw / float64(matches)
	normalized = math.Max(-1.0, math.Min(1.0, normalized))
	score := int(math.Round(50 + normalized*50))

	// Confidence grows with keyword density but stays modest; the
	// keyword approach cannot rival a model-backed scorer.
	density := float64(matches) / float64(len(words))
	confidence := math.Min(0.6, 0.2+density*2)

	return models.SentimentResult{
		Score:      score,
		Confidence: confidence,
		Label:      models.ScoreLabel(float64(score)),
		Reasoning:  fmt.Sprintf("matched %d sentiment keywords", matches),
	}, nil
}

// buildPositiveWords returns positive keywords for crypto.
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		// General positive
		"bullish":      1.0,
		"bull":         0.9,
		"rally":        0.9,
		"surge":        0.8,
		"soar":         0.8,
		"pump":         0.7,
		"moon":         0.7,
		"rocket":       0.7,
		"gain":         0.6,
		"profit":       0.6,
		"win":          0.6,
		"green":        0.6,
		"up":           0.5,
		"rise":         0.5,
		"grow":         0.5,
		"growth":       0.5,
		"increase":     0.5,
		"positive":     0.5,
		"optimistic":   0.5,
		"breakthrough": 0.6,
		"adoption":     0.6,
		"partnership":  0.5,
		"upgrade":      0.5,
		"innovation":   0.5,

		// Crypto specific
		"halving":       0.6,
		"breakout":      0.7,
		"ath":           0.8, // all-time high
		"institutional": 0.5,
		"etf":           0.7,
		"approved":      0.6,
		"accumulation":  0.5,
	}
}

// buildNegativeWords returns negative keywords for crypto.
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		// General negative
		"bearish":     1.0,
		"bear":        0.9,
		"crash":       1.0,
		"dump":        0.9,
		"plunge":      0.8,
		"fall":        0.6,
		"drop":        0.6,
		"decline":     0.6,
		"loss":        0.7,
		"red":         0.6,
		"down":        0.5,
		"negative":    0.5,
		"pessimistic": 0.5,
		"fear":        0.6,
		"panic":       0.8,
		"sell":        0.5,
		"selloff":     0.7,
		"correction":  0.6,

		// Crypto specific
		"hack":         1.0,
		"exploit":      1.0,
		"scam":         1.0,
		"rug":          1.0,
		"ponzi":        1.0,
		"fraud":        1.0,
		"lawsuit":      0.7,
		"ban":          0.8,
		"regulation":   0.5,
		"crackdown":    0.7,
		"liquidation":  0.8,
		"capitulation": 0.8,
		"fud":          0.7, // fear, uncertainty, doubt
		"bubble":       0.6,
		"overvalued":   0.6,
	}
}
