package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// proximityBand is the fraction of the market price within which a
// grid level is skipped to avoid an immediate fill.
var proximityBand = decimal.NewFromFloat(0.001)

// GridParams configures a grid execution run.
type GridParams struct {
	Symbol     string
	LowerPrice decimal.Decimal
	UpperPrice decimal.Decimal
	Grids      int
	Quantity   decimal.Decimal
	Conditions models.ConditionSpec
}

// Grid places a ladder of limit orders at evenly spaced price levels.
// The gate is consulted once, before any orders: a failed gate aborts
// the whole run with nothing placed. Level sides are fixed against the
// market price sampled at the start and never re-evaluated.
type Grid struct {
	market exchange.MarketData
	orders exchange.OrderClient
	info   exchange.SymbolInfoProvider
	gate   Gate
	params GridParams

	step decimal.Decimal
}

// NewGrid validates params and creates a runner.
func NewGrid(market exchange.MarketData, orders exchange.OrderClient, info exchange.SymbolInfoProvider, gate Gate, params GridParams) (*Grid, error) {
	if params.Grids < 2 {
		return nil, errors.New("grids must be >= 2")
	}
	if !params.Quantity.IsPositive() {
		return nil, errors.New("quantity must be positive")
	}
	if params.UpperPrice.LessThanOrEqual(params.LowerPrice) {
		return nil, errors.New("upper price must exceed lower price")
	}

	return &Grid{
		market: market,
		orders: orders,
		info:   info,
		gate:   gate,
		params: params,
		step:   params.UpperPrice.Sub(params.LowerPrice).Div(decimal.NewFromInt(int64(params.Grids - 1))),
	}, nil
}

func (g *Grid) Name() string {
	return "grid"
}

// Execute places the ladder. Single-order failures are logged and
// counted as skipped; the remaining levels still go out.
func (g *Grid) Execute(ctx context.Context) (Report, error) {
	logger.Info("starting grid run",
		zap.String("symbol", g.params.Symbol),
		zap.String("lower", g.params.LowerPrice.String()),
		zap.String("upper", g.params.UpperPrice.String()),
		zap.Int("grids", g.params.Grids),
	)

	evaluation := g.gate.Evaluate(ctx, g.params.Symbol, g.params.Conditions)
	if !evaluation.Met {
		logger.Info("grid run aborted, conditions not met",
			zap.Strings("errors", evaluation.Errors),
		)
		return Report{Completed: true}, nil
	}

	marketPrice, err := g.market.FetchPrice(ctx, g.params.Symbol)
	if err != nil {
		return Report{GateMet: true}, fmt.Errorf("failed to fetch market price: %w", err)
	}
	market := models.NewDecimal(marketPrice)

	info, err := g.info.FetchSymbolInfo(ctx, g.params.Symbol)
	if err != nil {
		return Report{GateMet: true}, fmt.Errorf("failed to fetch symbol info: %w", err)
	}

	report := Report{GateMet: true}
	skipBand := market.Mul(proximityBand)

	for i := 0; i < g.params.Grids; i++ {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		price := g.levelPrice(i, info)
		quantity := g.levelQuantity(price, info)

		if price.Sub(market).Abs().LessThan(skipBand) {
			report.Skipped++
			logger.Debug("grid level skipped, too close to market price",
				zap.String("price", price.String()),
				zap.String("market", market.String()),
			)
			continue
		}
		if price.Mul(quantity).LessThan(info.MinNotional) {
			report.Skipped++
			logger.Debug("grid level skipped, below minimum notional",
				zap.String("price", price.String()),
				zap.String("quantity", quantity.String()),
			)
			continue
		}

		side := models.SideSell
		if price.LessThan(market) {
			side = models.SideBuy
		}

		_, err := g.orders.PlaceOrder(ctx, g.params.Symbol, side, models.TypeLimit, quantity, price)
		if err != nil {
			report.Skipped++
			logger.Error("failed to place grid order",
				zap.Int("level", i+1),
				zap.String("price", price.String()),
				zap.Error(err),
			)
			continue
		}

		report.Placed++
		logger.Info("grid order placed",
			zap.Int("level", i+1),
			zap.String("side", string(side)),
			zap.String("price", price.String()),
			zap.String("quantity", quantity.String()),
		)
	}

	report.Completed = true
	logger.Info("grid run completed",
		zap.Int("placed", report.Placed),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// levelPrice computes level i snapped to the venue's tick size and
// price precision.
func (g *Grid) levelPrice(i int, info *models.SymbolInfo) decimal.Decimal {
	price := g.params.LowerPrice.Add(g.step.Mul(decimal.NewFromInt(int64(i))))
	if info.TickSize.IsPositive() {
		price = price.Div(info.TickSize).Round(0).Mul(info.TickSize)
	}
	return price.Round(info.PricePrecision)
}

// levelQuantity returns the larger of the requested amount and the
// venue minimum derived from its notional and quantity floors.
func (g *Grid) levelQuantity(price decimal.Decimal, info *models.SymbolInfo) decimal.Decimal {
	quantity := g.params.Quantity

	if price.IsPositive() && info.MinNotional.IsPositive() {
		derived := info.MinNotional.Div(price).RoundUp(info.QuantityPrecision)
		if derived.GreaterThan(quantity) {
			quantity = derived
		}
	}
	if info.MinQty.IsPositive() && info.MinQty.GreaterThan(quantity) {
		quantity = info.MinQty
	}
	if info.MaxQty.IsPositive() && quantity.GreaterThan(info.MaxQty) {
		quantity = info.MaxQty
	}

	return quantity.RoundUp(info.QuantityPrecision)
}
