package collector

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"github.com/threatlens/threatlens/internal/models"
)

// RSSCollector pulls entries from RSS and Atom feeds.
type RSSCollector struct {
	parser *gofeed.Parser
}

// Ensure RSSCollector implements FeedCollector
var _ FeedCollector = (*RSSCollector)(nil)

// NewRSSCollector creates a feed collector.
func NewRSSCollector() *RSSCollector {
	parser := gofeed.NewParser()
	parser.UserAgent = "ThreatLens/1.0"
	return &RSSCollector{parser: parser}
}

// FetchEntries downloads and parses the feed at feedURL, returning at most
// maxItems entries in feed order.
func (c *RSSCollector) FetchEntries(ctx context.Context, feedURL string, maxItems int) ([]models.Entry, error) {
	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}

	items := feed.Items
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	entries := make([]models.Entry, 0, len(items))
	for _, item := range items {
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		entries = append(entries, models.Entry{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
			Summary:   summary,
		})
	}

	logrus.Infof("Fetched %d entries from feed %s", len(entries), feedURL)
	return entries, nil
}
