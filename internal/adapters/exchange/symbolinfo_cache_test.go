package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) FetchSymbolInfo(_ context.Context, symbol string) (*models.SymbolInfo, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &models.SymbolInfo{Symbol: symbol, PricePrecision: 2}, nil
}

func TestSymbolInfoCache_ServesFreshEntries(t *testing.T) {
	provider := &countingProvider{}
	cache := NewSymbolInfoCache(provider, time.Minute)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := cache.FetchSymbolInfo(ctx, "BTCUSDT"); err != nil {
		t.Fatalf("FetchSymbolInfo() error = %v", err)
	}
	if _, err := cache.FetchSymbolInfo(ctx, "BTCUSDT"); err != nil {
		t.Fatalf("FetchSymbolInfo() error = %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1 within TTL", provider.calls)
	}

	now = base.Add(2 * time.Minute)
	if _, err := cache.FetchSymbolInfo(ctx, "BTCUSDT"); err != nil {
		t.Fatalf("FetchSymbolInfo() error = %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want refetch after expiry", provider.calls)
	}
}

func TestSymbolInfoCache_PerSymbolEntries(t *testing.T) {
	provider := &countingProvider{}
	cache := NewSymbolInfoCache(provider, time.Minute)

	ctx := context.Background()
	cache.FetchSymbolInfo(ctx, "BTCUSDT")
	cache.FetchSymbolInfo(ctx, "ETHUSDT")

	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want one per symbol", provider.calls)
	}
}

func TestSymbolInfoCache_ErrorDoesNotPoison(t *testing.T) {
	provider := &countingProvider{err: errors.New("venue down")}
	cache := NewSymbolInfoCache(provider, time.Minute)

	ctx := context.Background()
	if _, err := cache.FetchSymbolInfo(ctx, "BTCUSDT"); err == nil {
		t.Fatal("expected error from provider")
	}

	provider.err = nil
	info, err := cache.FetchSymbolInfo(ctx, "BTCUSDT")
	if err != nil {
		t.Fatalf("FetchSymbolInfo() error = %v", err)
	}
	if info.Symbol != "BTCUSDT" {
		t.Errorf("Symbol = %q", info.Symbol)
	}

	if _, err := cache.FetchSymbolInfo(ctx, "BTCUSDT"); err != nil {
		t.Fatalf("FetchSymbolInfo() error = %v", err)
	}
	if provider.calls != 3 {
		t.Errorf("provider calls = %d, want cached after recovery", provider.calls)
	}
}

func TestSymbolInfoCache_Invalidate(t *testing.T) {
	provider := &countingProvider{}
	cache := NewSymbolInfoCache(provider, time.Minute)

	ctx := context.Background()
	cache.FetchSymbolInfo(ctx, "BTCUSDT")
	cache.Invalidate("BTCUSDT")
	cache.FetchSymbolInfo(ctx, "BTCUSDT")

	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want refetch after invalidation", provider.calls)
	}
}
