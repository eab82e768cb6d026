package summarize

import "context"

// Summarizer shortens article text for the report listing. Implementations
// may fail (remote models, rate limits); callers fall back to Truncate so
// a report always carries a summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
