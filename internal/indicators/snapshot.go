package indicators

import (
	"fmt"

	"github.com/cinar/indicator"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

const snapshotMinCloses = 26 // MACD slow EMA warmup

// Snapshot bundles momentum and volatility readings for one symbol,
// served by the bot facade alongside sentiment.
func Snapshot(closes []float64, rsiPeriod int) (*models.IndicatorSnapshot, error) {
	if len(closes) < snapshotMinCloses {
		return nil, fmt.Errorf("insufficient closes for snapshot (need at least %d, got %d)", snapshotMinCloses, len(closes))
	}

	rsi, err := RSI(closes, rsiPeriod)
	if err != nil {
		return nil, err
	}

	macdLine, signalLine := indicator.Macd(closes)
	bbMiddle, bbUpper, bbLower := indicator.BollingerBands(closes)

	last := len(closes) - 1
	return &models.IndicatorSnapshot{
		RSI:            models.NewDecimal(rsi),
		MACD:           models.NewDecimal(macdLine[last]),
		MACDSignal:     models.NewDecimal(signalLine[last]),
		MACDHistogram:  models.NewDecimal(macdLine[last] - signalLine[last]),
		BollingerUpper: models.NewDecimal(bbUpper[last]),
		BollingerMid:   models.NewDecimal(bbMiddle[last]),
		BollingerLower: models.NewDecimal(bbLower[last]),
	}, nil
}
