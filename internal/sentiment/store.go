package sentiment

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// StoreConfig controls decay, caching and per-source weighting.
type StoreConfig struct {
	DecayWindow     time.Duration
	CacheTTL        time.Duration
	NewsWeight      float64
	ForumWeight     float64
	MicroblogWeight float64
}

// DefaultStoreConfig returns the standard weighting profile: editorial
// news counts more than forum chatter, which counts more than
// microblog noise.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DecayWindow:     24 * time.Hour,
		CacheTTL:        30 * time.Second,
		NewsWeight:      0.5,
		ForumWeight:     0.3,
		MicroblogWeight: 0.2,
	}
}

// Store owns all sentiment data points and the aggregate cache. It is
// the single writer surface: the poller records, everyone else reads.
type Store struct {
	mu     sync.Mutex
	config StoreConfig
	series map[string][]models.SentimentPoint

	// Aggregate cache with one shared validity clock: recording any
	// point anywhere invalidates every cached key at once.
	cache     map[string]models.AggregateResult
	cacheTime time.Time

	now func() time.Time
}

// NewStore creates an empty sentiment store.
func NewStore(config StoreConfig) *Store {
	return &Store{
		config: config,
		series: make(map[string][]models.SentimentPoint),
		cache:  make(map[string]models.AggregateResult),
		now:    time.Now,
	}
}

// Record appends a point to its symbol's series, purges every series
// of points older than the decay window, and invalidates the cache.
func (s *Store) Record(point models.SentimentPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series[point.Symbol] = append(s.series[point.Symbol], point)
	s.purgeLocked()

	s.cache = make(map[string]models.AggregateResult)
	s.cacheTime = time.Time{}
}

// purgeLocked drops points past the decay window, removing symbols
// whose series empty out. Caller holds s.mu.
func (s *Store) purgeLocked() {
	cutoff := s.now().Add(-s.config.DecayWindow)
	for symbol, points := range s.series {
		kept := points[:0]
		for _, p := range points {
			if p.Timestamp.After(cutoff) {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(s.series, symbol)
		} else {
			s.series[symbol] = kept
		}
	}
}

// Aggregate returns the decayed weighted aggregate for one symbol.
func (s *Store) Aggregate(symbol string) models.AggregateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregateLocked(symbol)
}

// MarketAggregate aggregates the union of every symbol's series.
func (s *Store) MarketAggregate() models.AggregateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aggregateLocked(marketCacheKey)
}

const marketCacheKey = "__market__"

func (s *Store) aggregateLocked(key string) models.AggregateResult {
	if !s.cacheTime.IsZero() && s.now().Sub(s.cacheTime) < s.config.CacheTTL {
		if cached, ok := s.cache[key]; ok {
			return cached
		}
	} else {
		s.cache = make(map[string]models.AggregateResult)
	}

	var points []models.SentimentPoint
	if key == marketCacheKey {
		for _, series := range s.series {
			points = append(points, series...)
		}
	} else {
		points = s.series[key]
	}

	result := s.computeLocked(points)
	s.cache[key] = result
	s.cacheTime = s.now()
	return result
}

// computeLocked runs the weighted aggregation over a set of points.
// Weight = timeWeight * sourceWeight * confidence; fully decayed
// points contribute nothing.
func (s *Store) computeLocked(points []models.SentimentPoint) models.AggregateResult {
	if len(points) == 0 {
		return models.NeutralAggregate()
	}

	now := s.now()
	var weightedSum, totalWeight, confidenceSum float64
	var lastUpdate time.Time
	counted := 0

	for _, p := range points {
		tw := timeWeight(now.Sub(p.Timestamp), s.config.DecayWindow)
		if tw <= 0 {
			continue
		}
		weight := tw * s.sourceWeight(p.Source) * p.Confidence
		weightedSum += float64(p.Score) * weight
		totalWeight += weight
		confidenceSum += p.Confidence
		counted++
		if p.Timestamp.After(lastUpdate) {
			lastUpdate = p.Timestamp
		}
	}

	if counted == 0 {
		return models.NeutralAggregate()
	}

	score := 50.0
	if totalWeight > 0 {
		score = weightedSum / totalWeight
	}

	// More samples raise confidence, capped at 10 points.
	confidence := (confidenceSum / float64(counted)) * math.Min(1.0, float64(counted)/10.0)

	return models.AggregateResult{
		Score:       math.Round(score*10) / 10,
		Label:       models.ScoreLabel(score),
		Confidence:  math.Round(confidence*100) / 100,
		SampleCount: counted,
		LastUpdate:  lastUpdate,
	}
}

// BreakdownBySource aggregates each source's subset independently.
// An empty symbol means market-wide.
func (s *Store) BreakdownBySource(symbol string) map[string]models.AggregateResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var points []models.SentimentPoint
	if symbol == "" {
		for _, series := range s.series {
			points = append(points, series...)
		}
	} else {
		points = s.series[symbol]
	}

	bySource := make(map[string][]models.SentimentPoint)
	for _, p := range points {
		bySource[p.Source] = append(bySource[p.Source], p)
	}

	breakdown := make(map[string]models.AggregateResult, len(bySource))
	for source, subset := range bySource {
		breakdown[source] = s.computeLocked(subset)
	}
	return breakdown
}

// History returns a symbol's retained points newer than hoursBack.
func (s *Store) History(symbol string, hoursBack float64) []models.SentimentPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-time.Duration(hoursBack * float64(time.Hour)))
	var out []models.SentimentPoint
	for _, p := range s.series[symbol] {
		if p.Timestamp.After(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// timeWeight decays linearly from 1 at age 0 to 0 at the window edge.
func timeWeight(age, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	w := 1.0 - age.Hours()/window.Hours()
	if w < 0 {
		return 0
	}
	return w
}

// sourceWeight resolves a source name to its category weight. Sources
// are free-form strings from the providers, so matching is by
// substring.
func (s *Store) sourceWeight(source string) float64 {
	lower := strings.ToLower(source)
	switch {
	case strings.Contains(lower, "reddit") || strings.HasPrefix(lower, "r/"):
		return s.config.ForumWeight
	case strings.Contains(lower, "twitter") || strings.Contains(lower, "nitter"):
		return s.config.MicroblogWeight
	default:
		return s.config.NewsWeight
	}
}
