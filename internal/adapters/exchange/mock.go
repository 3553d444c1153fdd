package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// MockExchange implements Exchange for tests and paper trading.
type MockExchange struct {
	mu     sync.Mutex
	name   string
	price  float64
	closes []float64
	info   *models.SymbolInfo
	orders []models.Order
	seq    int

	// RejectOrders makes every PlaceOrder fail with *APIError.
	RejectOrders bool
	// FailMarketData makes price and close fetches fail.
	FailMarketData bool
}

// NewMockExchange creates a mock venue with a fixed price and
// Binance-futures-like symbol rules.
func NewMockExchange(name string, price float64) *MockExchange {
	return &MockExchange{
		name:  name,
		price: price,
		info: &models.SymbolInfo{
			PricePrecision:    2,
			QuantityPrecision: 3,
			MinNotional:       models.NewDecimal(5.0),
			MinQty:            models.NewDecimal(0.001),
			MaxQty:            models.NewDecimal(10000),
			TickSize:          models.NewDecimal(0.01),
		},
	}
}

func (m *MockExchange) GetName() string {
	return m.name
}

// SetPrice updates the quoted price.
func (m *MockExchange) SetPrice(price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.price = price
}

// SetCloses sets the close series returned by FetchCloses.
func (m *MockExchange) SetCloses(closes []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes = closes
}

// SetSymbolInfo overrides the venue metadata.
func (m *MockExchange) SetSymbolInfo(info *models.SymbolInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = info
}

func (m *MockExchange) FetchPrice(ctx context.Context, symbol string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailMarketData {
		return 0, fmt.Errorf("mock market data unavailable")
	}
	return m.price, nil
}

func (m *MockExchange) FetchCloses(ctx context.Context, symbol, interval string, limit int) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailMarketData {
		return nil, fmt.Errorf("mock market data unavailable")
	}
	closes := m.closes
	if limit > 0 && len(closes) > limit {
		closes = closes[len(closes)-limit:]
	}
	out := make([]float64, len(closes))
	copy(out, closes)
	return out, nil
}

func (m *MockExchange) PlaceOrder(ctx context.Context, symbol string, side models.OrderSide, orderType models.OrderType, quantity, price decimal.Decimal) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RejectOrders {
		return nil, &APIError{Code: -2010, Message: "order rejected"}
	}

	m.seq++
	execPrice := price
	if orderType == models.TypeMarket {
		execPrice = models.NewDecimal(m.price)
	}

	order := models.Order{
		ID:        fmt.Sprintf("mock_%d", m.seq),
		Symbol:    symbol,
		Type:      orderType,
		Side:      side,
		Price:     execPrice,
		Amount:    quantity,
		Status:    "open",
		Timestamp: time.Now(),
	}
	m.orders = append(m.orders, order)

	return &order, nil
}

func (m *MockExchange) FetchSymbolInfo(ctx context.Context, symbol string) (*models.SymbolInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := *m.info
	info.Symbol = symbol
	return &info, nil
}

// Orders returns a copy of all placed orders.
func (m *MockExchange) Orders() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

func (m *MockExchange) Close() error {
	return nil
}
