package summarize

import (
	"context"
	"strings"
)

// DefaultMaxChars bounds the length of a truncated summary.
const DefaultMaxChars = 400

// Truncator is the deterministic fallback summarizer: the first maxChars
// characters of the text with an ellipsis. It never fails.
type Truncator struct {
	maxChars int
}

// Ensure Truncator implements Summarizer
var _ Summarizer = (*Truncator)(nil)

// NewTruncator creates a truncating summarizer.
func NewTruncator(maxChars int) *Truncator {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Truncator{maxChars: maxChars}
}

// Summarize returns the leading maxChars characters of text.
func (t *Truncator) Summarize(_ context.Context, text string) (string, error) {
	return t.Truncate(text), nil
}

// Truncate is the error-free form used as the degraded path for other
// summarizers.
func (t *Truncator) Truncate(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= t.maxChars {
		return text
	}
	return string(runes[:t.maxChars]) + "..."
}
