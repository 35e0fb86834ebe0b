// Package poster mirrors unseen feed items to Bluesky and records them in
// the ledger.
package poster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/bsky"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/feed"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/richtext"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

// Client is the slice of the XRPC client the poster needs.
type Client interface {
	CreateRecord(ctx context.Context, record bsky.PostRecord) (bsky.CreateRecordOutput, error)
	UploadBlob(ctx context.Context, data []byte, contentType string) (bsky.Blob, error)
	GetRemoteContent(ctx context.Context, url string) ([]byte, string, error)
}

// Poster posts feed items that are not yet in the ledger.
type Poster struct {
	Client  Client
	Ledger  *store.Ledger
	FeedURL string

	// OriginalLinkPrefix labels the trailing link back to the toot.
	OriginalLinkPrefix string
	// PostTextLimit is the rune budget for the whole post text.
	PostTextLimit int

	// Out receives one result line per item.
	Out io.Writer
}

// Run posts items oldest-first (the feed serves newest first) and returns
// how many were posted. The first failing item aborts the run so the ledger
// never skips over an entry.
func (p *Poster) Run(ctx context.Context, items []*gofeed.Item) (int, error) {
	posted := 0
	for i := len(items) - 1; i >= 0; i-- {
		ok, err := p.postItem(ctx, items[i])
		if err != nil {
			return posted, err
		}
		if ok {
			posted++
		}
	}
	return posted, nil
}

// postItem reports whether the item was posted (false: already in the ledger).
func (p *Poster) postItem(ctx context.Context, item *gofeed.Item) (bool, error) {
	if item.Description == "" {
		return false, fmt.Errorf("feed item has no description")
	}
	if item.Link == "" {
		return false, fmt.Errorf("feed item has no link")
	}

	done, err := p.Ledger.Contains(item.Link)
	if err != nil {
		return false, err
	}
	if done {
		fmt.Fprintf(p.Out, "orig_link=%s: Already posted to Bluesky.\n", item.Link)
		return false, nil
	}

	segments, err := richtext.FromHTML(item.Description)
	if err != nil {
		return false, fmt.Errorf("parse description of %s: %w", item.Link, err)
	}
	text, facets := Compose(segments, p.OriginalLinkPrefix, item.Link, p.PostTextLimit)

	embed, err := p.imageEmbed(ctx, item)
	if err != nil {
		return false, err
	}

	out, err := p.Client.CreateRecord(ctx, bsky.PostRecord{
		Type:      bsky.TypePost,
		Text:      text,
		Facets:    facets,
		Embed:     embed,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("post %s: %w", item.Link, err)
	}

	fmt.Fprintf(p.Out, "orig_link=%s: Posted to Bluesky: cid=%s, uri=%s\n", item.Link, out.CID, out.URI)

	if err := p.Ledger.Record(store.Entry{
		Link:    item.Link,
		FeedURL: p.FeedURL,
		Cid:     out.CID,
		URI:     out.URI,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// imageEmbed uploads the item's attachment when it exists and is not rated
// sensitive. The attachment URL doubles as the alt text; Mastodon's RSS does
// not carry the media description.
func (p *Poster) imageEmbed(ctx context.Context, item *gofeed.Item) (*bsky.ImagesEmbed, error) {
	media := feed.GetMedia(item)
	if media == nil {
		return nil, nil
	}
	if media.Rating != feed.RatingNonAdult {
		slog.Warn("ignoring an image that might be sensitive", "url", media.URL)
		return nil, nil
	}

	data, contentType, err := p.Client.GetRemoteContent(ctx, media.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", media.URL, err)
	}
	if contentType == "" {
		contentType = media.Type
	}
	blob, err := p.Client.UploadBlob(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload image %s: %w", media.URL, err)
	}
	return &bsky.ImagesEmbed{
		Type:   bsky.TypeEmbedImages,
		Images: []bsky.Image{{Alt: media.URL, Image: blob}},
	}, nil
}
