package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>CTI Feed</title>
    <item>
      <title>Ransomware campaign hits healthcare</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 05 Aug 2024 10:00:00 GMT</pubDate>
      <description>LockBit affiliates deployed ransomware.</description>
    </item>
    <item>
      <title>Phishing wave</title>
      <link>https://example.com/b</link>
      <pubDate>Tue, 06 Aug 2024 10:00:00 GMT</pubDate>
      <description>Spearphishing with malicious attachments.</description>
    </item>
    <item>
      <title>Third advisory</title>
      <link>https://example.com/c</link>
      <description>Patch now.</description>
    </item>
  </channel>
</rss>`

func TestFetchEntries_ParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	entries, err := NewRSSCollector().FetchEntries(context.Background(), srv.URL, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Ransomware campaign hits healthcare", entries[0].Title)
	assert.Equal(t, "https://example.com/a", entries[0].Link)
	assert.Equal(t, "LockBit affiliates deployed ransomware.", entries[0].Summary)
	assert.NotEmpty(t, entries[0].Published)
}

func TestFetchEntries_TruncatesToMaxItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	entries, err := NewRSSCollector().FetchEntries(context.Background(), srv.URL, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Phishing wave", entries[1].Title)
}

func TestFetchEntries_FeedErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRSSCollector().FetchEntries(context.Background(), srv.URL, 5)
	assert.Error(t, err)
}
