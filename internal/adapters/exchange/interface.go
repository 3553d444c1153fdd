package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// MarketData provides read-only market information for the condition
// evaluator and the strategies.
type MarketData interface {
	// FetchPrice returns the last traded price for a symbol.
	FetchPrice(ctx context.Context, symbol string) (float64, error)

	// FetchCloses returns up to limit closing prices ordered oldest
	// first. An empty slice signals that data is unavailable.
	FetchCloses(ctx context.Context, symbol, interval string, limit int) ([]float64, error)
}

// OrderClient places orders on the venue. Price is ignored for market
// orders. Venue rejections surface as *APIError.
type OrderClient interface {
	PlaceOrder(ctx context.Context, symbol string, side models.OrderSide, orderType models.OrderType, quantity, price decimal.Decimal) (*models.Order, error)
}

// SymbolInfoProvider exposes venue precision and limit metadata.
type SymbolInfoProvider interface {
	FetchSymbolInfo(ctx context.Context, symbol string) (*models.SymbolInfo, error)
}

// Exchange is the full collaborator surface the bot consumes.
type Exchange interface {
	// GetName returns exchange name
	GetName() string

	MarketData
	OrderClient
	SymbolInfoProvider

	// Close releases exchange resources
	Close() error
}
