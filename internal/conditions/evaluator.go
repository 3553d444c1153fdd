package conditions

import (
	"context"
	"fmt"

	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/internal/indicators"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// SentimentReader is the slice of the sentiment store the evaluator
// needs.
type SentimentReader interface {
	Aggregate(symbol string) models.AggregateResult
}

// Evaluator combines RSI and sentiment sub-checks into one gate
// decision. Both collaborators are optional; a missing one skips its
// sub-check fail-open.
type Evaluator struct {
	market    exchange.MarketData
	store     SentimentReader
	rsiPeriod int
	interval  string
	limit     int
}

// NewEvaluator creates a condition evaluator. market and store may be
// nil.
func NewEvaluator(market exchange.MarketData, store SentimentReader, rsiPeriod int) *Evaluator {
	return &Evaluator{
		market:    market,
		store:     store,
		rsiPeriod: rsiPeriod,
		interval:  "1h",
		limit:     50,
	}
}

// Evaluate checks spec for a symbol. Overall met is the AND of all
// requested sub-checks; internal errors are fail-open and surface only
// as diagnostic strings.
func (e *Evaluator) Evaluate(ctx context.Context, symbol string, spec models.ConditionSpec) models.Evaluation {
	result := models.Evaluation{
		Met:     true,
		Details: make(map[string]models.CheckResult),
		Errors:  make([]string, 0),
	}

	if spec.Empty() {
		return result
	}

	if spec.HasRSI() {
		check := e.checkRSI(ctx, symbol, spec)
		result.Details["rsi"] = check
		if !check.Met {
			result.Met = false
		}
		if check.Error != "" {
			result.Errors = append(result.Errors, check.Error)
		}
	}

	if spec.HasSentiment() {
		check := e.checkSentiment(symbol, spec)
		result.Details["sentiment"] = check
		if !check.Met {
			result.Met = false
		}
		if check.Error != "" {
			result.Errors = append(result.Errors, check.Error)
		}
	}

	return result
}

func (e *Evaluator) checkRSI(ctx context.Context, symbol string, spec models.ConditionSpec) models.CheckResult {
	if e.market == nil {
		return models.CheckResult{
			Met:   true,
			Error: "no market data client available for RSI calculation, skipping check",
		}
	}

	closes, err := e.market.FetchCloses(ctx, symbol, e.interval, e.limit)
	if err != nil {
		return models.CheckResult{
			Met:   true,
			Error: fmt.Sprintf("failed to fetch price data for RSI calculation: %v", err),
		}
	}
	if len(closes) == 0 {
		return models.CheckResult{
			Met:   true,
			Error: "no price data available for RSI calculation",
		}
	}

	rsi, err := indicators.RSI(closes, e.rsiPeriod)
	if err != nil {
		return models.CheckResult{
			Met:   true,
			Error: fmt.Sprintf("RSI check error: %v", err),
		}
	}

	met := true
	description := fmt.Sprintf("RSI: %.2f", rsi)

	if spec.RSIBelow != nil && rsi >= *spec.RSIBelow {
		met = false
		description += fmt.Sprintf(" (should be < %g)", *spec.RSIBelow)
	}
	if spec.RSIAbove != nil && rsi <= *spec.RSIAbove {
		met = false
		description += fmt.Sprintf(" (should be > %g)", *spec.RSIAbove)
	}

	return models.CheckResult{
		Met:         met,
		Value:       &rsi,
		Description: description,
	}
}

func (e *Evaluator) checkSentiment(symbol string, spec models.ConditionSpec) models.CheckResult {
	if e.store == nil {
		return models.CheckResult{
			Met:   true,
			Error: "no sentiment store available, skipping check",
		}
	}

	aggregate := e.store.Aggregate(symbol)
	score := aggregate.Score
	label := aggregate.Label

	met := true
	description := fmt.Sprintf("%s (%g)", label, score)

	if spec.ScoreAbove != nil && score <= *spec.ScoreAbove {
		met = false
		description += fmt.Sprintf(" (should be > %g)", *spec.ScoreAbove)
	}
	if spec.ScoreBelow != nil && score >= *spec.ScoreBelow {
		met = false
		description += fmt.Sprintf(" (should be < %g)", *spec.ScoreBelow)
	}
	if spec.PauseOnBearish && label == models.LabelBearish {
		met = false
		description += " (paused on bearish)"
	}

	return models.CheckResult{
		Met:         met,
		Value:       &score,
		Label:       label,
		Description: description,
	}
}
