package indicators

import (
	"errors"
	"math"
	"testing"
)

func TestRSI_MonotonicIncreaseIs100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	rsi, err := RSI(closes, 14)
	if err != nil {
		t.Fatalf("RSI() error = %v", err)
	}
	if rsi != 100.0 {
		t.Errorf("RSI = %v, want 100.0 for strictly increasing series", rsi)
	}
}

func TestRSI_MonotonicDecreaseIsNearZero(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	rsi, err := RSI(closes, 14)
	if err != nil {
		t.Fatalf("RSI() error = %v", err)
	}
	if rsi != 0.0 {
		t.Errorf("RSI = %v, want 0.0 for strictly decreasing series", rsi)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	closes := []float64{100, 101, 102}

	_, err := RSI(closes, 14)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}

	// Exactly period prices is still one short.
	closes = make([]float64, 14)
	if _, err := RSI(closes, 14); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData at period prices, got %v", err)
	}
}

func TestRSI_KnownSeries(t *testing.T) {
	// Alternating moves with a bullish bias.
	closes := []float64{44, 44.5, 44.2, 44.8, 45.1, 44.9, 45.4, 45.8, 45.6, 46.0, 46.5, 46.3, 46.8, 47.0, 46.7, 47.2}

	rsi, err := RSI(closes, 14)
	if err != nil {
		t.Fatalf("RSI() error = %v", err)
	}
	if rsi <= 50 || rsi >= 100 {
		t.Errorf("RSI = %v, want between 50 and 100 for an uptrending series", rsi)
	}
	// Rounded to 2 decimal places.
	if rsi != math.Round(rsi*100)/100 {
		t.Errorf("RSI = %v not rounded to 2 decimals", rsi)
	}
}

func TestRSI_InvalidPeriod(t *testing.T) {
	if _, err := RSI([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}
