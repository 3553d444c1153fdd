package models

import "time"

// FeedItem is one piece of content returned by a feed provider before
// scoring. Popularity is a source-specific engagement signal (Reddit
// upvotes); nil when the source has no such concept.
type FeedItem struct {
	PublishedAt time.Time `json:"published_at"`
	Popularity  *float64  `json:"popularity,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Symbols     []string  `json:"symbols"`
}
