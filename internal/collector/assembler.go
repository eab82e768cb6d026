package collector

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DefaultSummaryThreshold is the summary length below which the full
// article page is fetched to supplement the feed text.
const DefaultSummaryThreshold = 200

// Assembler builds the raw text for a feed entry. Short feed summaries
// are padded out with the fetched article body; long summaries are used
// as-is without touching the network.
type Assembler struct {
	fetcher   PageFetcher
	threshold int
}

// NewAssembler creates an assembler over the given page fetcher.
func NewAssembler(fetcher PageFetcher, threshold int) *Assembler {
	if threshold <= 0 {
		threshold = DefaultSummaryThreshold
	}
	return &Assembler{fetcher: fetcher, threshold: threshold}
}

// Assemble returns the text to analyze for an entry. When summary is
// shorter than the threshold it attempts a single page fetch and appends
// the result after a newline. degraded reports whether a fetch was
// attempted but yielded nothing, in which case the summary alone is the
// assembled text. Network failures never propagate.
func (a *Assembler) Assemble(ctx context.Context, summary, link string) (text string, degraded bool) {
	if len(summary) >= a.threshold {
		return summary, false
	}

	pageText := a.fetcher.FetchPageText(ctx, link)
	if pageText == "" {
		if link != "" {
			logrus.Debugf("No page text for %s, keeping feed summary only", link)
		}
		return summary, true
	}

	if summary == "" {
		return pageText, false
	}
	return summary + "\n" + pageText, false
}
