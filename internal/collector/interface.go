package collector

import (
	"context"

	"github.com/threatlens/threatlens/internal/models"
)

// FeedCollector fetches entries from a syndication feed.
type FeedCollector interface {
	FetchEntries(ctx context.Context, feedURL string, maxItems int) ([]models.Entry, error)
}

// PageFetcher retrieves readable text for a web page. Implementations
// return the empty string on any failure; fetching is best-effort and
// must never surface network errors to callers.
type PageFetcher interface {
	FetchPageText(ctx context.Context, pageURL string) string
}
