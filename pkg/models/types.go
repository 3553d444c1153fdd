package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewDecimal creates decimal from float64
func NewDecimal(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// OrderSide represents buy or sell
type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// OrderType represents order type
type OrderType string

const (
	TypeMarket OrderType = "market"
	TypeLimit  OrderType = "limit"
)

// Order represents a placed exchange order
type Order struct {
	Timestamp time.Time       `json:"timestamp"`
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Status    string          `json:"status"`
	Type      OrderType       `json:"type"`
	Side      OrderSide       `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
}

// Candle represents OHLCV candlestick data
type Candle struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// SymbolInfo carries the venue's precision and limit rules for one symbol.
type SymbolInfo struct {
	Symbol            string          `json:"symbol"`
	PricePrecision    int32           `json:"price_precision"`
	QuantityPrecision int32           `json:"quantity_precision"`
	MinNotional       decimal.Decimal `json:"min_notional"`
	MinQty            decimal.Decimal `json:"min_qty"`
	MaxQty            decimal.Decimal `json:"max_qty"`
	TickSize          decimal.Decimal `json:"tick_size"`
}

// IndicatorSnapshot bundles the momentum and volatility readings the
// bot facade serves alongside sentiment.
type IndicatorSnapshot struct {
	RSI            decimal.Decimal `json:"rsi"`
	MACD           decimal.Decimal `json:"macd"`
	MACDSignal     decimal.Decimal `json:"macd_signal"`
	MACDHistogram  decimal.Decimal `json:"macd_histogram"`
	BollingerUpper decimal.Decimal `json:"bollinger_upper"`
	BollingerMid   decimal.Decimal `json:"bollinger_mid"`
	BollingerLower decimal.Decimal `json:"bollinger_lower"`
}
