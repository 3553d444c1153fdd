package sentiment

import (
	"context"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// Scorer turns a piece of text into a sentiment result on the 0-100
// scale. Implementations must not fail open with an error for routine
// model trouble; they return a neutral result instead so a degraded
// scorer never stalls ingestion.
type Scorer interface {
	GetName() string
	Score(ctx context.Context, title, content string) (models.SentimentResult, error)
}
