package workers

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/feeds"
	"github.com/zenith-trading/zenith-bot/internal/sentiment"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// fetchAll pulls items from every enabled provider. A single provider
// failing is logged and skipped; fetchAll errors only when every
// enabled provider fails, which triggers the worker's error backoff.
func fetchAll(ctx context.Context, providers []feeds.Provider, symbols []string) ([]models.FeedItem, error) {
	items := make([]models.FeedItem, 0)
	enabled, failed := 0, 0

	for _, provider := range providers {
		if !provider.IsEnabled() {
			continue
		}
		enabled++

		fetched, err := provider.Fetch(ctx, symbols)
		if err != nil {
			failed++
			logger.Warn("provider fetch failed",
				zap.String("provider", provider.GetName()),
				zap.Error(err),
			)
			continue
		}
		items = append(items, fetched...)
	}

	if enabled > 0 && failed == enabled {
		return nil, fmt.Errorf("all %d providers failed", enabled)
	}
	return items, nil
}

// ingest scores each item in order and records one point per tagged
// symbol. A failure on one item is logged and skipped; cancellation is
// observed between items, never mid-item.
func ingest(ctx context.Context, items []models.FeedItem, scorer sentiment.Scorer, store *sentiment.Store, adjustPopularity bool) int {
	recorded := 0
	for _, item := range items {
		if ctx.Err() != nil {
			return recorded
		}

		result, err := scorer.Score(ctx, item.Title, item.Content)
		if err != nil {
			logger.Warn("failed to score item",
				zap.String("title", item.Title),
				zap.Error(err),
			)
			continue
		}

		confidence := result.Confidence
		if adjustPopularity && item.Popularity != nil {
			confidence *= popularityMultiplier(*item.Popularity)
		}

		timestamp := item.PublishedAt
		if timestamp.IsZero() {
			timestamp = time.Now().UTC()
		}

		for _, symbol := range item.Symbols {
			store.Record(models.SentimentPoint{
				Symbol:     symbol,
				Score:      result.Score,
				Source:     item.Source,
				Confidence: confidence,
				Timestamp:  timestamp,
				Title:      item.Title,
				URL:        item.URL,
				Reasoning:  result.Reasoning,
			})
			recorded++
		}
	}
	return recorded
}

// popularityMultiplier scales confidence by engagement, from 0.5 for
// unnoticed posts up to 1.0 at 100+ upvotes or likes.
func popularityMultiplier(popularity float64) float64 {
	return 0.5 + 0.5*math.Min(1.0, popularity/100.0)
}
