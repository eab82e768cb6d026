package collector

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// PageClient fetches article pages and reduces them to readable text.
// One attempt per page, bounded by the client timeout; any failure
// (connection error, timeout, non-2xx status) resolves to "".
type PageClient struct {
	client *resty.Client
}

// Ensure PageClient implements PageFetcher
var _ PageFetcher = (*PageClient)(nil)

// NewPageClient creates a page fetcher with the given request timeout.
func NewPageClient(timeout time.Duration) *PageClient {
	return &PageClient{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "ThreatLens/1.0"),
	}
}

// FetchPageText downloads pageURL and returns the visible text of the
// document with markup, scripts, and styles stripped.
func (p *PageClient) FetchPageText(ctx context.Context, pageURL string) string {
	if pageURL == "" {
		return ""
	}

	resp, err := p.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		logrus.Warnf("Failed to fetch page %s: %v", pageURL, err)
		return ""
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		logrus.Warnf("Page %s returned status %d", pageURL, resp.StatusCode())
		return ""
	}

	return extractVisibleText(resp.String())
}

// extractVisibleText walks the parsed document collecting text nodes,
// skipping script and style subtrees, and collapses runs of whitespace.
func extractVisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
