package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// SymbolInfoCache caches venue metadata for a fixed TTL. The cache is
// injected explicitly wherever metadata is needed; nothing below it
// keeps hidden per-call-site state.
type SymbolInfoCache struct {
	provider SymbolInfoProvider
	ttl      time.Duration
	mu       sync.Mutex
	entries  map[string]symbolInfoEntry
	now      func() time.Time
}

type symbolInfoEntry struct {
	info      *models.SymbolInfo
	fetchedAt time.Time
}

// NewSymbolInfoCache creates a TTL cache over the given provider.
func NewSymbolInfoCache(provider SymbolInfoProvider, ttl time.Duration) *SymbolInfoCache {
	return &SymbolInfoCache{
		provider: provider,
		ttl:      ttl,
		entries:  make(map[string]symbolInfoEntry),
		now:      time.Now,
	}
}

// FetchSymbolInfo returns cached metadata when fresh, otherwise fetches
// and caches. A fetch failure never poisons the cache.
func (c *SymbolInfoCache) FetchSymbolInfo(ctx context.Context, symbol string) (*models.SymbolInfo, error) {
	c.mu.Lock()
	if entry, ok := c.entries[symbol]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return entry.info, nil
	}
	c.mu.Unlock()

	info, err := c.provider.FetchSymbolInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[symbol] = symbolInfoEntry{info: info, fetchedAt: c.now()}
	c.mu.Unlock()

	return info, nil
}

// Invalidate drops the cached entry for one symbol.
func (c *SymbolInfoCache) Invalidate(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, symbol)
}

// InvalidateAll drops every cached entry.
func (c *SymbolInfoCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]symbolInfoEntry)
}
