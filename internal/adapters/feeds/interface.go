package feeds

import (
	"context"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// Provider fetches raw content items for sentiment scoring. The symbol
// filter narrows symbol tagging; providers tag items mentioning none of
// the known symbols with models.MarketSymbol.
type Provider interface {
	// GetName returns provider name
	GetName() string

	// Fetch returns a bounded list of recent content items.
	Fetch(ctx context.Context, symbols []string) ([]models.FeedItem, error)

	// IsEnabled returns whether provider is enabled
	IsEnabled() bool
}
