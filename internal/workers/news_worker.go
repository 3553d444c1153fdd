package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/feeds"
	"github.com/zenith-trading/zenith-bot/internal/sentiment"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
)

// NewsWorker polls editorial feeds, scores each item and records the
// results into the sentiment store.
type NewsWorker struct {
	providers []feeds.Provider
	scorer    sentiment.Scorer
	store     *sentiment.Store
	bus       *Bus
	symbols   []string
}

// NewNewsWorker creates the news poll worker.
func NewNewsWorker(providers []feeds.Provider, scorer sentiment.Scorer, store *sentiment.Store, bus *Bus, symbols []string) *NewsWorker {
	return &NewsWorker{
		providers: providers,
		scorer:    scorer,
		store:     store,
		bus:       bus,
		symbols:   symbols,
	}
}

func (w *NewsWorker) Name() string {
	return "news-poller"
}

// Run executes one poll cycle: fetch, score, record, publish.
func (w *NewsWorker) Run(ctx context.Context) error {
	items, err := fetchAll(ctx, w.providers, w.symbols)
	if err != nil {
		return err
	}

	recorded := ingest(ctx, items, w.scorer, w.store, false)

	logger.Debug("news cycle complete",
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
