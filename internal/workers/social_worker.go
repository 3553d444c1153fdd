package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/feeds"
	"github.com/zenith-trading/zenith-bot/internal/sentiment"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
)

// SocialWorker polls forum and microblog feeds. Unlike the news
// cycle it folds each item's popularity signal into its confidence.
type SocialWorker struct {
	providers []feeds.Provider
	scorer    sentiment.Scorer
	store     *sentiment.Store
	bus       *Bus
	symbols   []string
}

// NewSocialWorker creates the social poll worker.
func NewSocialWorker(providers []feeds.Provider, scorer sentiment.Scorer, store *sentiment.Store, bus *Bus, symbols []string) *SocialWorker {
	return &SocialWorker{
		providers: providers,
		scorer:    scorer,
		store:     store,
		bus:       bus,
		symbols:   symbols,
	}
}

func (w *SocialWorker) Name() string {
	return "social-poller"
}

// Run executes one poll cycle across the forum and microblog feeds.
func (w *SocialWorker) Run(ctx context.Context) error {
	items, err := fetchAll(ctx, w.providers, w.symbols)
	if err != nil {
		return err
	}

	recorded := ingest(ctx, items, w.scorer, w.store, true)

	logger.Debug("social cycle complete",
		zap.Int("items", len(items)),
		zap.Int("recorded", recorded),
	)

	if w.bus != nil {
		w.bus.Publish(Update{
			Cycle:  w.Name(),
			Market: w.store.MarketAggregate(),
			At:     time.Now().UTC(),
		})
	}
	return nil
}
