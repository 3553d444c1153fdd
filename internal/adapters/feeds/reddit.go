package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// RedditProvider fetches hot posts from a set of subreddits through
// the public JSON endpoints, no OAuth involved.
type RedditProvider struct {
	subreddits []string
	postLimit  int
	client     *http.Client
	baseURL    string
}

func NewRedditProvider(subreddits []string) *RedditProvider {
	return &RedditProvider{
		subreddits: subreddits,
		postLimit:  15,
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://www.reddit.com",
	}
}

func (p *RedditProvider) GetName() string {
	return "reddit"
}

func (p *RedditProvider) IsEnabled() bool {
	return len(p.subreddits) > 0
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title     string  `json:"title"`
	Selftext  string  `json:"selftext"`
	Permalink string  `json:"permalink"`
	Ups       float64 `json:"ups"`
	CreatedAt float64 `json:"created_utc"`
	Stickied  bool    `json:"stickied"`
}

// Fetch pulls hot posts from every configured subreddit. One subreddit
// failing is logged and skipped; Fetch errors only when all fail.
func (p *RedditProvider) Fetch(ctx context.Context, symbols []string) ([]models.FeedItem, error) {
	items := make([]models.FeedItem, 0)
	failed := 0

	for _, sub := range p.subreddits {
		posts, err := p.fetchSubreddit(ctx, sub, symbols)
		if err != nil {
			failed++
			logger.Warn("failed to fetch subreddit",
				zap.String("subreddit", sub),
				zap.Error(err),
			)
			continue
		}
		items = append(items, posts...)
	}

	if failed == len(p.subreddits) && len(p.subreddits) > 0 {
		return nil, fmt.Errorf("all %d subreddits failed", len(p.subreddits))
	}

	return items, nil
}

func (p *RedditProvider) fetchSubreddit(ctx context.Context, sub string, symbols []string) ([]models.FeedItem, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", p.baseURL, sub, p.postLimit)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Reddit rejects default Go user agents with 429.
	req.Header.Set("User-Agent", "ZenithBot/1.0 (sentiment monitor)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	source := "r/" + sub
	items := make([]models.FeedItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied {
			continue
		}

		content := post.Selftext
		if len(content) > 500 {
			content = content[:500]
		}

		popularity := post.Ups
		items = append(items, models.FeedItem{
			Title:       post.Title,
			Content:     content,
			Source:      source,
			URL:         "https://www.reddit.com" + post.Permalink,
			PublishedAt: time.Unix(int64(post.CreatedAt), 0).UTC(),
			Popularity:  &popularity,
			Symbols:     ExtractSymbols(post.Title+" "+content, symbols),
		})
	}

	return items, nil
}
