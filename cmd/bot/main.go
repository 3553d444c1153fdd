package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/config"
	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/internal/adapters/feeds"
	"github.com/zenith-trading/zenith-bot/internal/bot"
	"github.com/zenith-trading/zenith-bot/internal/conditions"
	"github.com/zenith-trading/zenith-bot/internal/health"
	"github.com/zenith-trading/zenith-bot/internal/sentiment"
	"github.com/zenith-trading/zenith-bot/internal/strategy"
	"github.com/zenith-trading/zenith-bot/internal/workers"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("zenith bot starting",
		zap.Strings("symbols", cfg.Trading.Symbols),
		zap.Bool("testnet", cfg.Exchange.Testnet),
	)

	ex, err := initExchange(cfg)
	if err != nil {
		return err
	}
	defer ex.Close()

	symbolInfo := exchange.NewSymbolInfoCache(ex, cfg.Trading.SymbolInfoTTL)

	store := sentiment.NewStore(sentiment.StoreConfig{
		DecayWindow:     cfg.Sentiment.DecayWindow,
		CacheTTL:        cfg.Sentiment.CacheTTL,
		NewsWeight:      cfg.Sentiment.NewsWeight,
		ForumWeight:     cfg.Sentiment.ForumWeight,
		MicroblogWeight: cfg.Sentiment.MicroblogWeight,
	})

	scorer := initScorer(cfg)
	bus := workers.NewBus()

	newsWorker := workers.NewNewsWorker(
		[]feeds.Provider{feeds.NewNewsProvider(cfg.Sentiment.NewsFeeds)},
		scorer, store, bus, cfg.Trading.Symbols,
	)
	socialWorker := workers.NewSocialWorker(
		[]feeds.Provider{
			feeds.NewRedditProvider(cfg.Sentiment.Subreddits),
			feeds.NewNitterProvider(cfg.Sentiment.NitterFeeds),
		},
		scorer, store, bus, cfg.Trading.Symbols,
	)

	group := worker.NewGroup(ctx)
	group.Add(newsWorker, cfg.Sentiment.NewsPollInterval,
		worker.WithErrorBackoff(60*time.Second),
	)
	// The social cycle starts staggered to avoid a synchronized burst.
	group.Add(socialWorker, cfg.Sentiment.SocialPollInterval,
		worker.WithInitialDelay(10*time.Second),
		worker.WithErrorBackoff(60*time.Second),
	)
	group.Start()

	evaluator := conditions.NewEvaluator(ex, store, cfg.Trading.RSIPeriod)
	manager := strategy.NewManager()
	service := bot.NewService(store, evaluator, ex, symbolInfo, manager, bus, cfg.Trading.RSIPeriod)

	var healthServer *health.Server
	if cfg.Health.Enabled {
		healthServer = health.NewServer(cfg.Health.Port, service)
		go func() {
			if err := healthServer.Start(); err != nil {
				logger.Error("health server failed", zap.Error(err))
			}
		}()
		healthServer.SetReady(true)
	}

	logger.Info("zenith bot running")
	<-ctx.Done()

	logger.Info("shutting down...")
	manager.Shutdown()
	group.Stop(30 * time.Second)

	if healthServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := healthServer.Stop(shutdownCtx); err != nil {
			logger.Warn("health server shutdown failed", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// initExchange connects to Binance when credentials are configured and
// falls back to the in-memory mock otherwise, so the sentiment side
// works without keys.
func initExchange(cfg *config.Config) (exchange.Exchange, error) {
	if !cfg.HasExchangeKeys() {
		logger.Warn("no exchange credentials configured, using mock exchange")
		return exchange.NewMockExchange("mock", 0), nil
	}

	ex, err := exchange.NewBinanceAdapter(&cfg.Exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exchange: %w", err)
	}
	return ex, nil
}

func initScorer(cfg *config.Config) sentiment.Scorer {
	if cfg.Sentiment.OllamaEnabled {
		logger.Info("using ollama sentiment scorer",
			zap.String("host", cfg.Sentiment.OllamaHost),
			zap.String("model", cfg.Sentiment.OllamaModel),
		)
		return sentiment.NewOllamaScorer(cfg.Sentiment.OllamaHost, cfg.Sentiment.OllamaModel)
	}

	logger.Info("using keyword sentiment scorer")
	return sentiment.NewAnalyzer()
}
