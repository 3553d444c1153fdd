package strategy

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/adapters/exchange"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// TWAPParams configures a time-sliced execution run.
type TWAPParams struct {
	Symbol     string
	Side       models.OrderSide
	Quantity   decimal.Decimal
	Duration   time.Duration
	NumOrders  int
	Conditions models.ConditionSpec
}

// TWAP splits a total quantity into equal market-order slices spread
// evenly over a duration. The gate is re-evaluated before every slice;
// a failed gate skips the slice but never shortens the schedule, so a
// run always walks all its checkpoints.
type TWAP struct {
	orders exchange.OrderClient
	gate   Gate
	params TWAPParams

	sliceQty decimal.Decimal
	interval time.Duration
}

// NewTWAP validates params and creates a runner.
func NewTWAP(orders exchange.OrderClient, gate Gate, params TWAPParams) (*TWAP, error) {
	if params.NumOrders < 1 {
		return nil, errors.New("number of orders must be >= 1")
	}
	if !params.Quantity.IsPositive() {
		return nil, errors.New("quantity must be positive")
	}
	if params.Duration < 0 {
		return nil, errors.New("duration must not be negative")
	}

	return &TWAP{
		orders:   orders,
		gate:     gate,
		params:   params,
		sliceQty: params.Quantity.Div(decimal.NewFromInt(int64(params.NumOrders))),
		interval: params.Duration / time.Duration(params.NumOrders),
	}, nil
}

func (t *TWAP) Name() string {
	return "twap"
}

// Execute runs all slices. Cancellation between slices ends the run
// early with ctx.Err; order failures and gate rejections only skip.
func (t *TWAP) Execute(ctx context.Context) (Report, error) {
	logger.Info("starting TWAP run",
		zap.String("symbol", t.params.Symbol),
		zap.String("side", string(t.params.Side)),
		zap.String("quantity", t.params.Quantity.String()),
		zap.Int("orders", t.params.NumOrders),
		zap.Duration("duration", t.params.Duration),
	)

	report := Report{GateMet: true}

	for i := 0; i < t.params.NumOrders; i++ {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		evaluation := t.gate.Evaluate(ctx, t.params.Symbol, t.params.Conditions)
		if !evaluation.Met {
			report.Skipped++
			report.GateMet = false
			logger.Info("TWAP slice skipped, conditions not met",
				zap.Int("slice", i+1),
				zap.Strings("errors", evaluation.Errors),
			)
		} else {
			report.GateMet = true
			_, err := t.orders.PlaceOrder(ctx, t.params.Symbol, t.params.Side, models.TypeMarket, t.sliceQty, decimal.Zero)
			if err != nil {
				report.Skipped++
				logger.Error("failed to place TWAP slice",
					zap.Int("slice", i+1),
					zap.Error(err),
				)
			} else {
				report.Placed++
				logger.Info("TWAP slice placed",
					zap.Int("slice", i+1),
					zap.Int("total", t.params.NumOrders),
				)
			}
		}

		// The schedule is fixed: skipped slices wait the same interval.
		if i < t.params.NumOrders-1 {
			if !waitCtx(ctx, t.interval) {
				return report, ctx.Err()
			}
		}
	}

	report.Completed = true
	logger.Info("TWAP run completed",
		zap.Int("placed", report.Placed),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}
