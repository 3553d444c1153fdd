package bot

import (
	"context"

	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/internal/conditions"
	"github.com/zenith-trading/zenith-bot/internal/indicators"
	"github.com/zenith-trading/zenith-bot/internal/sentiment"
	"github.com/zenith-trading/zenith-bot/internal/strategy"
	"github.com/zenith-trading/zenith-bot/internal/workers"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// Service is the facade the CLI and any future surfaces talk to. It
// only reads the store; the pollers remain its single writer.
type Service struct {
	store     *sentiment.Store
	evaluator *conditions.Evaluator
	exchange  exchange.Exchange
	symbols   exchange.SymbolInfoProvider
	manager   *strategy.Manager
	bus       *workers.Bus
	rsiPeriod int
}

// NewService wires the facade over the shared components.
func NewService(store *sentiment.Store, evaluator *conditions.Evaluator, ex exchange.Exchange, symbols exchange.SymbolInfoProvider, manager *strategy.Manager, bus *workers.Bus, rsiPeriod int) *Service {
	return &Service{
		store:     store,
		evaluator: evaluator,
		exchange:  ex,
		symbols:   symbols,
		manager:   manager,
		bus:       bus,
		rsiPeriod: rsiPeriod,
	}
}

// GetSentiment returns the current aggregate for one symbol.
func (s *Service) GetSentiment(symbol string) models.AggregateResult {
	return s.store.Aggregate(symbol)
}

// GetMarketSentiment returns the market-wide aggregate.
func (s *Service) GetMarketSentiment() models.AggregateResult {
	return s.store.MarketAggregate()
}

// GetBreakdown returns per-source aggregates. An empty symbol means
// market-wide.
func (s *Service) GetBreakdown(symbol string) map[string]models.AggregateResult {
	return s.store.BreakdownBySource(symbol)
}

// GetHistory returns a symbol's retained points newer than hoursBack.
func (s *Service) GetHistory(symbol string, hoursBack float64) []models.SentimentPoint {
	return s.store.History(symbol, hoursBack)
}

// EvaluateConditions runs the gate checks for a symbol without
// executing anything.
func (s *Service) EvaluateConditions(ctx context.Context, symbol string, spec models.ConditionSpec) models.Evaluation {
	return s.evaluator.Evaluate(ctx, symbol, spec)
}

// GetIndicators computes an indicator snapshot from recent closes.
func (s *Service) GetIndicators(ctx context.Context, symbol string) (*models.IndicatorSnapshot, error) {
	closes, err := s.exchange.FetchCloses(ctx, symbol, "1h", 50)
	if err != nil {
		return nil, err
	}
	return indicators.Snapshot(closes, s.rsiPeriod)
}

// RunTWAP launches a time-sliced execution as a tracked background
// task and returns its handle.
func (s *Service) RunTWAP(ctx context.Context, params strategy.TWAPParams) (*strategy.Task, error) {
	runner, err := strategy.NewTWAP(s.exchange, s.evaluator, params)
	if err != nil {
		return nil, err
	}
	return s.manager.Launch(ctx, runner), nil
}

// RunGrid launches a grid execution as a tracked background task and
// returns its handle.
func (s *Service) RunGrid(ctx context.Context, params strategy.GridParams) (*strategy.Task, error) {
	runner, err := strategy.NewGrid(s.exchange, s.exchange, s.symbols, s.evaluator, params)
	if err != nil {
		return nil, err
	}
	return s.manager.Launch(ctx, runner), nil
}

// Task looks up a launched strategy task by ID.
func (s *Service) Task(id string) (*strategy.Task, bool) {
	return s.manager.Get(id)
}

// Subscribe returns a channel of poll-cycle updates.
func (s *Service) Subscribe() <-chan workers.Update {
	return s.bus.Subscribe()
}
