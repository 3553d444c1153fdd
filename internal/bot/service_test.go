package bot

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/internal/conditions"
	"github.com/zenith-trading/zenith-bot/internal/sentiment"
	"github.com/zenith-trading/zenith-bot/internal/strategy"
	"github.com/zenith-trading/zenith-bot/internal/workers"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

func newTestService(mock *exchange.MockExchange) *Service {
	store := sentiment.NewStore(sentiment.DefaultStoreConfig())
	evaluator := conditions.NewEvaluator(mock, store, 14)
	cache := exchange.NewSymbolInfoCache(mock, time.Minute)
	return NewService(store, evaluator, mock, cache, strategy.NewManager(), workers.NewBus(), 14)
}

func TestService_SentimentReads(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	service := newTestService(mock)

	service.store.Record(models.SentimentPoint{
		Symbol:     "BTCUSDT",
		Source:     "CoinDesk",
		Score:      80,
		Confidence: 1.0,
		Timestamp:  time.Now().UTC(),
	})

	if got := service.GetSentiment("BTCUSDT").Score; got != 80 {
		t.Errorf("GetSentiment score = %v, want 80", got)
	}
	if got := service.GetMarketSentiment().SampleCount; got != 1 {
		t.Errorf("market sample count = %d, want 1", got)
	}
	if got := service.GetBreakdown("BTCUSDT"); len(got) != 1 {
		t.Errorf("breakdown sources = %d, want 1", len(got))
	}
	if got := service.GetHistory("BTCUSDT", 1); len(got) != 1 {
		t.Errorf("history points = %d, want 1", len(got))
	}
}

func TestService_RunTWAPThroughManager(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	service := newTestService(mock)

	task, err := service.RunTWAP(context.Background(), strategy.TWAPParams{
		Symbol:    "BTCUSDT",
		Side:      models.SideBuy,
		Quantity:  decimal.NewFromInt(1),
		NumOrders: 2,
	})
	if err != nil {
		t.Fatalf("RunTWAP() error = %v", err)
	}

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("TWAP task did not finish")
	}

	report, err := task.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if report.Placed != 2 {
		t.Errorf("Placed = %d, want 2", report.Placed)
	}

	if _, ok := service.Task(task.ID); !ok {
		t.Error("expected task retrievable through the service")
	}
}

func TestService_RunTWAPValidation(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	service := newTestService(mock)

	_, err := service.RunTWAP(context.Background(), strategy.TWAPParams{
		Symbol:    "BTCUSDT",
		Side:      models.SideBuy,
		Quantity:  decimal.Zero,
		NumOrders: 2,
	})
	if err == nil {
		t.Error("expected validation error for zero quantity")
	}
}
