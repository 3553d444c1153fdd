package strategy

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

func gridParams() GridParams {
	return GridParams{
		Symbol:     "BTCUSDT",
		LowerPrice: decimal.NewFromInt(100),
		UpperPrice: decimal.NewFromInt(200),
		Grids:      5,
		Quantity:   decimal.NewFromInt(1),
	}
}

func TestGrid_LevelSpacingAndProximitySkip(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	gate := &stubGate{met: true}

	grid, err := NewGrid(mock, mock, mock, gate, gridParams())
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	report, err := grid.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Levels are [100, 125, 150, 175, 200]; 150 sits inside the 0.1%
	// band around the market price and is skipped.
	if report.Placed != 4 || report.Skipped != 1 {
		t.Errorf("report = %+v, want 4 placed and 1 skipped", report)
	}

	orders := mock.Orders()
	wantPrices := []string{"100", "125", "175", "200"}
	wantSides := []models.OrderSide{models.SideBuy, models.SideBuy, models.SideSell, models.SideSell}
	if len(orders) != len(wantPrices) {
		t.Fatalf("got %d orders, want %d", len(orders), len(wantPrices))
	}
	for i, order := range orders {
		if !order.Price.Equal(decimal.RequireFromString(wantPrices[i])) {
			t.Errorf("order %d price = %s, want %s", i, order.Price, wantPrices[i])
		}
		if order.Side != wantSides[i] {
			t.Errorf("order %d side = %s, want %s", i, order.Side, wantSides[i])
		}
		if order.Type != models.TypeLimit {
			t.Errorf("order %d type = %s, want limit", i, order.Type)
		}
	}
}

func TestGrid_GateFailureAbortsBeforeAnyOrder(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	gate := &stubGate{met: false}

	grid, err := NewGrid(mock, mock, mock, gate, gridParams())
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	report, err := grid.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.Placed != 0 || report.GateMet {
		t.Errorf("report = %+v, want zero orders and GateMet false", report)
	}
	if gate.calls != 1 {
		t.Errorf("gate consulted %d times, want exactly once", gate.calls)
	}
	if len(mock.Orders()) != 0 {
		t.Error("expected no orders after gate abort")
	}
}

func TestGrid_MinimumQuantityFromNotional(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	mock.SetSymbolInfo(&models.SymbolInfo{
		Symbol:            "BTCUSDT",
		PricePrecision:    2,
		QuantityPrecision: 3,
		MinNotional:       decimal.NewFromInt(200),
		MinQty:            decimal.NewFromFloat(0.001),
		MaxQty:            decimal.NewFromInt(10000),
		TickSize:          decimal.NewFromFloat(0.01),
	})
	gate := &stubGate{met: true}

	params := gridParams()
	params.Quantity = decimal.NewFromFloat(0.5)

	grid, err := NewGrid(mock, mock, mock, gate, params)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	if _, err := grid.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// At level 100 the 200-notional floor needs 2.0 units, above the
	// requested 0.5.
	orders := mock.Orders()
	if len(orders) == 0 {
		t.Fatal("expected orders")
	}
	if !orders[0].Amount.Equal(decimal.NewFromInt(2)) {
		t.Errorf("level quantity = %s, want 2 from notional floor", orders[0].Amount)
	}
}

func TestGrid_OrderRejectionCountsSkipped(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	mock.RejectOrders = true
	gate := &stubGate{met: true}

	grid, err := NewGrid(mock, mock, mock, gate, gridParams())
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	report, err := grid.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// 4 rejected levels plus the proximity-skipped one.
	if report.Placed != 0 || report.Skipped != 5 {
		t.Errorf("report = %+v, want everything skipped", report)
	}
	if !report.Completed {
		t.Error("rejections must not abort the run")
	}
}

func TestNewGrid_Validation(t *testing.T) {
	mock := exchange.NewMockExchange("mock", 150)
	gate := &stubGate{met: true}

	params := gridParams()
	params.Grids = 1
	if _, err := NewGrid(mock, mock, mock, gate, params); err == nil {
		t.Error("expected error for fewer than 2 grids")
	}

	params = gridParams()
	params.UpperPrice = params.LowerPrice
	if _, err := NewGrid(mock, mock, mock, gate, params); err == nil {
		t.Error("expected error for inverted price range")
	}

	params = gridParams()
	params.Quantity = decimal.Zero
	if _, err := NewGrid(mock, mock, mock, gate, params); err == nil {
		t.Error("expected error for non-positive quantity")
	}
}
