package exchange

import (
	"context"
	"fmt"
	"strings"

	ccxt "github.com/ccxt/ccxt/go/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/config"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// BinanceAdapter wraps CCXT Binance exchange
type BinanceAdapter struct {
	exchange *ccxt.Binance
	config   *config.ExchangeConfig
}

// NewBinanceAdapter creates new Binance adapter
func NewBinanceAdapter(cfg *config.ExchangeConfig) (*BinanceAdapter, error) {
	options := map[string]interface{}{
		"apiKey": cfg.APIKey,
		"secret": cfg.Secret,
	}

	if cfg.Testnet {
		options["testnet"] = true
	}

	exchange := ccxt.NewBinance(options)

	exchange.SetOption("defaultType", "future")
	exchange.SetOption("adjustForTimeDifference", true)

	if err := exchange.LoadMarkets(); err != nil {
		return nil, fmt.Errorf("failed to load Binance markets: %w", err)
	}

	logger.Info("Binance adapter initialized",
		zap.Bool("testnet", cfg.Testnet),
		zap.Int("markets_count", len(exchange.Markets)),
	)

	return &BinanceAdapter{
		exchange: exchange,
		config:   cfg,
	}, nil
}

func (b *BinanceAdapter) GetName() string {
	return "binance"
}

func (b *BinanceAdapter) FetchPrice(ctx context.Context, symbol string) (float64, error) {
	ticker, err := b.exchange.FetchTicker(b.toUnified(symbol))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch ticker: %w", err)
	}
	if ticker.Last == nil {
		return 0, fmt.Errorf("ticker for %s has no last price", symbol)
	}
	return *ticker.Last, nil
}

func (b *BinanceAdapter) FetchCloses(ctx context.Context, symbol, interval string, limit int) ([]float64, error) {
	ohlcv, err := b.exchange.FetchOHLCV(
		b.toUnified(symbol),
		ccxt.WithFetchOHLCVTimeframe(interval),
		ccxt.WithFetchOHLCVLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch OHLCV: %w", err)
	}

	closes := make([]float64, 0, len(ohlcv))
	for _, bar := range ohlcv {
		closes = append(closes, bar[4])
	}

	return closes, nil
}

func (b *BinanceAdapter) PlaceOrder(ctx context.Context, symbol string, side models.OrderSide, orderType models.OrderType, quantity, price decimal.Decimal) (*models.Order, error) {
	amount := models.ToFloat64(quantity)

	var order *ccxt.Order
	var err error

	if orderType == models.TypeMarket {
		order, err = b.exchange.CreateOrder(
			b.toUnified(symbol),
			"market",
			string(side),
			amount,
		)
	} else {
		order, err = b.exchange.CreateOrder(
			b.toUnified(symbol),
			"limit",
			string(side),
			amount,
			ccxt.WithCreateOrderPrice(models.ToFloat64(price)),
		)
	}

	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	placed := &models.Order{
		Symbol: symbol,
		Type:   orderType,
		Side:   side,
		Amount: quantity,
		Price:  price,
	}
	if order.Id != nil {
		placed.ID = *order.Id
	}
	if order.Status != nil {
		placed.Status = *order.Status
	}
	if order.Price != nil {
		placed.Price = models.NewDecimal(*order.Price)
	}

	return placed, nil
}

func (b *BinanceAdapter) FetchSymbolInfo(ctx context.Context, symbol string) (*models.SymbolInfo, error) {
	result, err := b.exchange.PublicGetExchangeInfo(map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange info: %w", err)
	}

	symbolsRaw, ok := result["symbols"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("exchange info has no symbols list")
	}

	for _, raw := range symbolsRaw {
		entry, ok := raw.(map[string]interface{})
		if !ok || getString(entry, "symbol") != symbol {
			continue
		}

		info := &models.SymbolInfo{
			Symbol:            symbol,
			PricePrecision:    int32(getFloat(entry, "pricePrecision")),
			QuantityPrecision: int32(getFloat(entry, "quantityPrecision")),
			MinNotional:       models.NewDecimal(5.0),
		}

		filters, _ := entry["filters"].([]interface{})
		for _, f := range filters {
			filter, ok := f.(map[string]interface{})
			if !ok {
				continue
			}
			switch getString(filter, "filterType") {
			case "PRICE_FILTER":
				info.TickSize = parseDecimal(filter, "tickSize")
			case "LOT_SIZE":
				info.MinQty = parseDecimal(filter, "minQty")
				info.MaxQty = parseDecimal(filter, "maxQty")
			case "MIN_NOTIONAL":
				info.MinNotional = parseDecimal(filter, "notional")
			}
		}

		return info, nil
	}

	return nil, fmt.Errorf("symbol %s not found in exchange info", symbol)
}

func (b *BinanceAdapter) Close() error {
	// CCXT doesn't require explicit connection closing
	return nil
}

// toUnified converts BTCUSDT to CCXT's BTC/USDT form.
func (b *BinanceAdapter) toUnified(symbol string) string {
	if strings.Contains(symbol, "/") {
		return symbol
	}
	for _, quote := range []string{"USDT", "USDC", "BUSD", "BTC"} {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return symbol[:len(symbol)-len(quote)] + "/" + quote
		}
	}
	return symbol
}

// Helper functions
func getFloat(m map[string]interface{}, key string) float64 {
	switch val := m[key].(type) {
	case float64:
		return val
	case int:
		return float64(val)
	}
	return 0
}

func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func parseDecimal(m map[string]interface{}, key string) decimal.Decimal {
	switch val := m[key].(type) {
	case string:
		d, err := decimal.NewFromString(val)
		if err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(val)
	}
	return decimal.Zero
}
