package indicators

import (
	"errors"
	"math"
)

// ErrInsufficientData signals fewer prices than the period requires.
var ErrInsufficientData = errors.New("insufficient data for RSI calculation")

// RSI computes Wilder's Relative Strength Index over closing prices,
// most-recent last. It needs at least period+1 prices to form period
// deltas. An all-gains series returns exactly 100.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("RSI period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains = append(gains, delta)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -delta)
		}
	}

	// Seed with the simple mean of the first period deltas, then apply
	// Wilder's smoothing over the rest.
	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}

	rsi := 100.0 - 100.0/(1.0+avgGain/avgLoss)
	return math.Round(rsi*100) / 100, nil
}
