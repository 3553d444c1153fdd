package sentiment

import (
	"testing"
	"time"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

func newTestStore(now time.Time) (*Store, *time.Time) {
	current := now
	store := NewStore(DefaultStoreConfig())
	store.now = func() time.Time { return current }
	return store, &current
}

func point(symbol, source string, score int, confidence float64, ts time.Time) models.SentimentPoint {
	return models.SentimentPoint{
		Symbol:     symbol,
		Source:     source,
		Score:      score,
		Confidence: confidence,
		Timestamp:  ts,
	}
}

func TestTimeWeight(t *testing.T) {
	window := 24 * time.Hour

	tests := []struct {
		age  time.Duration
		want float64
	}{
		{0, 1.0},
		{12 * time.Hour, 0.5},
		{24 * time.Hour, 0.0},
		{48 * time.Hour, 0.0},
	}

	for _, tt := range tests {
		if got := timeWeight(tt.age, window); got != tt.want {
			t.Errorf("timeWeight(%v) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	store, _ := newTestStore(time.Now())

	result := store.Aggregate("BTCUSDT")
	if result.Score != 50 || result.Label != models.LabelNeutral {
		t.Errorf("expected neutral default, got %+v", result)
	}
	if result.Confidence != 0 || result.SampleCount != 0 {
		t.Errorf("expected zero confidence and samples, got %+v", result)
	}
}

func TestAggregate_FullyDecayed(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, clock := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 90, 0.9, base))

	// Move the clock past the decay window; the point still sits in
	// the series but must contribute nothing.
	*clock = base.Add(25 * time.Hour)

	result := store.Aggregate("BTCUSDT")
	if result.Score != 50 || result.SampleCount != 0 {
		t.Errorf("expected neutral for fully decayed series, got %+v", result)
	}
}

func TestAggregate_WeightedScore(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 80, 1.0, base))
	store.Record(point("BTCUSDT", "r/cryptocurrency", 20, 1.0, base))

	// News weight 0.5, forum weight 0.3: (80*0.5 + 20*0.3) / 0.8 = 57.5
	result := store.Aggregate("BTCUSDT")
	if result.Score != 57.5 {
		t.Errorf("Score = %v, want 57.5", result.Score)
	}
	if result.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", result.SampleCount)
	}
}

func TestAggregate_MonotonicInRecentHighScores(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 50, 0.5, base))
	before := store.Aggregate("BTCUSDT").Score

	store.Record(point("BTCUSDT", "CoinDesk", 95, 1.0, base))
	after := store.Aggregate("BTCUSDT").Score

	if after < before {
		t.Errorf("score decreased after high-score point: %v -> %v", before, after)
	}
}

func TestAggregate_ConfidenceSampleAdjustment(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	// 5 points at confidence 0.8: mean 0.8 * min(1, 5/10) = 0.4
	for i := 0; i < 5; i++ {
		store.Record(point("BTCUSDT", "CoinDesk", 60, 0.8, base))
	}

	result := store.Aggregate("BTCUSDT")
	if result.Confidence != 0.4 {
		t.Errorf("Confidence = %v, want 0.4", result.Confidence)
	}
}

func TestAggregate_CacheWithinTTL(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, clock := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 70, 0.9, base))

	first := store.Aggregate("BTCUSDT")
	*clock = base.Add(10 * time.Second)
	second := store.Aggregate("BTCUSDT")

	if first != second {
		t.Errorf("cached result differs within TTL: %+v vs %+v", first, second)
	}

	// Past the TTL the aggregate recomputes against the new clock, so
	// the decayed score may shift.
	*clock = base.Add(31 * time.Second)
	if _, ok := store.cache["BTCUSDT"]; !ok {
		t.Fatal("expected cache entry before expiry check")
	}
	store.Aggregate("BTCUSDT")
	if store.cacheTime != *clock {
		t.Error("expected cache clock reset after TTL expiry")
	}
}

func TestRecord_InvalidatesAllCacheKeys(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 70, 0.9, base))
	store.Aggregate("BTCUSDT")
	store.MarketAggregate()

	if len(store.cache) != 2 {
		t.Fatalf("expected 2 cached keys, got %d", len(store.cache))
	}

	// A write to an unrelated symbol clears every cached key.
	store.Record(point("ETHUSDT", "CoinDesk", 40, 0.5, base))

	if len(store.cache) != 0 {
		t.Errorf("expected empty cache after record, got %d keys", len(store.cache))
	}
	if !store.cacheTime.IsZero() {
		t.Error("expected zeroed cache clock after record")
	}
}

func TestMarketAggregate_UnionOfSymbols(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 80, 1.0, base))
	store.Record(point("ETHUSDT", "CoinDesk", 40, 1.0, base))
	store.Record(point(models.MarketSymbol, "CoinDesk", 60, 1.0, base))

	result := store.MarketAggregate()
	if result.SampleCount != 3 {
		t.Errorf("SampleCount = %d, want 3", result.SampleCount)
	}
	if result.Score != 60 {
		t.Errorf("Score = %v, want 60", result.Score)
	}
}

func TestBreakdownBySource(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 80, 1.0, base))
	store.Record(point("BTCUSDT", "r/bitcoin", 30, 1.0, base))

	breakdown := store.BreakdownBySource("BTCUSDT")
	if len(breakdown) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(breakdown))
	}
	if breakdown["CoinDesk"].Score != 80 {
		t.Errorf("CoinDesk score = %v, want 80", breakdown["CoinDesk"].Score)
	}
	if breakdown["r/bitcoin"].Score != 30 {
		t.Errorf("r/bitcoin score = %v, want 30", breakdown["r/bitcoin"].Score)
	}
}

func TestHistory(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, _ := newTestStore(base)

	store.Record(point("BTCUSDT", "CoinDesk", 70, 0.9, base.Add(-6*time.Hour)))
	store.Record(point("BTCUSDT", "CoinDesk", 60, 0.9, base.Add(-1*time.Hour)))

	recent := store.History("BTCUSDT", 2)
	if len(recent) != 1 {
		t.Fatalf("expected 1 point within 2h, got %d", len(recent))
	}
	if recent[0].Score != 60 {
		t.Errorf("Score = %d, want 60", recent[0].Score)
	}

	all := store.History("BTCUSDT", 24)
	if len(all) != 2 {
		t.Errorf("expected 2 points within 24h, got %d", len(all))
	}
}

func TestSourceWeight(t *testing.T) {
	store, _ := newTestStore(time.Now())

	tests := []struct {
		source string
		want   float64
	}{
		{"CoinDesk", 0.5},
		{"r/cryptocurrency", 0.3},
		{"reddit", 0.3},
		{"twitter", 0.2},
		{"nitter.net", 0.2},
	}

	for _, tt := range tests {
		if got := store.sourceWeight(tt.source); got != tt.want {
			t.Errorf("sourceWeight(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}
