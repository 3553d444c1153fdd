package strategy

import (
	"context"
	"time"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// Gate decides whether trading conditions currently allow execution.
type Gate interface {
	Evaluate(ctx context.Context, symbol string, spec models.ConditionSpec) models.Evaluation
}

// Report summarizes one finished strategy run. GateMet reflects the
// most recent gate consultation.
type Report struct {
	Placed    int
	Skipped   int
	GateMet   bool
	Completed bool
}

// Runner is a finite strategy execution.
type Runner interface {
	Name() string
	Execute(ctx context.Context) (Report, error)
}

// waitCtx sleeps for d unless ctx is cancelled first. Returns false on
// cancellation.
func waitCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
