package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// RSSProvider fetches items from a set of RSS feeds. It backs both the
// news category (editorial crypto outlets) and the microblog category
// (Nitter mirrors of crypto accounts).
type RSSProvider struct {
	name         string
	source       string // overrides the feed channel title when set
	feeds        []string
	perFeedLimit int
	contentLimit int
	enabled      bool
	client       *http.Client
}

// NewNewsProvider creates a provider over editorial RSS feeds. Each
// item keeps the feed's channel title as its source so news sources
// stay distinguishable in the per-source breakdown.
func NewNewsProvider(feedURLs []string) *RSSProvider {
	return &RSSProvider{
		name:         "news",
		feeds:        feedURLs,
		perFeedLimit: 10,
		contentLimit: 1000,
		enabled:      len(feedURLs) > 0,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// NewNitterProvider creates a provider over Nitter RSS mirrors. Items
// are truncated to microblog length and tagged with a fixed source.
func NewNitterProvider(feedURLs []string) *RSSProvider {
	return &RSSProvider{
		name:         "nitter",
		source:       "twitter",
		feeds:        feedURLs,
		perFeedLimit: 15,
		contentLimit: 280,
		enabled:      len(feedURLs) > 0,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *RSSProvider) GetName() string {
	return p.name
}

func (p *RSSProvider) IsEnabled() bool {
	return p.enabled
}

// Fetch pulls every configured feed. A single feed failing is logged
// and skipped; Fetch errors only when all feeds fail.
func (p *RSSProvider) Fetch(ctx context.Context, symbols []string) ([]models.FeedItem, error) {
	items := make([]models.FeedItem, 0)
	failed := 0

	for _, feedURL := range p.feeds {
		feedItems, err := p.fetchFeed(ctx, feedURL, symbols)
		if err != nil {
			failed++
			logger.Warn("failed to fetch feed",
				zap.String("provider", p.name),
				zap.String("url", feedURL),
				zap.Error(err),
			)
			continue
		}
		items = append(items, feedItems...)
	}

	if failed == len(p.feeds) && len(p.feeds) > 0 {
		return nil, fmt.Errorf("all %d %s feeds failed", len(p.feeds), p.name)
	}

	logger.Debug("fetched feed items",
		zap.String("provider", p.name),
		zap.Int("count", len(items)),
	)

	return items, nil
}

type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

func (p *RSSProvider) fetchFeed(ctx context.Context, feedURL string, symbols []string) ([]models.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ZenithBot/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var doc rssDocument
	decoder := xml.NewDecoder(resp.Body)
	decoder.Strict = false
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := p.source
	if source == "" {
		source = doc.Channel.Title
		if source == "" {
			source = feedURL
		}
	}

	entries := doc.Channel.Items
	if len(entries) > p.perFeedLimit {
		entries = entries[:p.perFeedLimit]
	}

	items := make([]models.FeedItem, 0, len(entries))
	for _, entry := range entries {
		content := stripHTML(entry.Description)
		if len(content) > p.contentLimit {
			content = content[:p.contentLimit]
		}

		title := entry.Title
		if p.source != "" && len(title) > 100 {
			// Microblog posts have no real title; keep the first part.
			title = title[:100]
		}

		items = append(items, models.FeedItem{
			Title:       title,
			Content:     content,
			Source:      source,
			URL:         entry.Link,
			PublishedAt: parsePubDate(entry.PubDate),
			Symbols:     ExtractSymbols(entry.Title+" "+content, symbols),
		})
	}

	return items, nil
}

// stripHTML extracts plain text from feed bodies that carry markup.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// parsePubDate tries common feed timestamp layouts; unparsable dates
// fall back to now so the item still enters the decay window.
func parsePubDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}
