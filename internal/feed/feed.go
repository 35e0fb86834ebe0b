// Package feed fetches and parses the Mastodon RSS feed.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Fetcher downloads and parses RSS feeds.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a Fetcher. If hc is nil a client with a tuned transport
// and timeout is used.
func NewFetcher(hc *http.Client) *Fetcher {
	if hc == nil {
		hc = &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	p := gofeed.NewParser()
	p.Client = hc
	return &Fetcher{parser: p}
}

// Fetch returns the feed items in feed order (Mastodon serves newest first).
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*gofeed.Item, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	return parsed.Items, nil
}
