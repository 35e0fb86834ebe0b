package feed

import (
	"log/slog"
	"strconv"

	"github.com/mmcdole/gofeed"
)

// Rating classifies a media:rating value.
type Rating int

const (
	// RatingNonAdult is the "nonadult" rating Mastodon assigns to
	// attachments not flagged as sensitive.
	RatingNonAdult Rating = iota
	// RatingOther covers every other (or unparseable) rating.
	RatingOther
)

// Media describes the first media:content attachment of a feed item.
type Media struct {
	URL      string
	FileSize int
	Type     string
	Rating   Rating
}

// GetMedia extracts the first Media RSS attachment from item. It returns nil
// when the item has no attachment or the extension is missing required
// attributes; malformed values are logged and skipped rather than failing
// the run.
func GetMedia(item *gofeed.Item) *Media {
	contents, ok := item.Extensions["media"]["content"]
	if !ok || len(contents) == 0 {
		return nil
	}
	content := contents[0]

	sizeAttr, ok := content.Attrs["fileSize"]
	if !ok {
		slog.Warn("media content has no 'fileSize' attribute", "link", item.Link)
		return nil
	}
	fileSize, err := strconv.Atoi(sizeAttr)
	if err != nil {
		slog.Warn("media content 'fileSize' attribute is not a number", "link", item.Link, "fileSize", sizeAttr)
		return nil
	}

	typ, ok := content.Attrs["type"]
	if !ok {
		slog.Warn("media content has no 'type' attribute", "link", item.Link)
		return nil
	}

	url, ok := content.Attrs["url"]
	if !ok {
		slog.Warn("media content has no 'url' attribute", "link", item.Link)
		return nil
	}

	ratings, ok := content.Children["rating"]
	if !ok || len(ratings) == 0 {
		slog.Warn("media content has no 'rating' child", "link", item.Link)
		return nil
	}
	rating := RatingOther
	switch ratings[0].Value {
	case "nonadult":
		rating = RatingNonAdult
	case "":
		slog.Warn("media rating has no value", "link", item.Link)
		return nil
	default:
		slog.Warn("unrecognized media rating", "link", item.Link, "rating", ratings[0].Value)
	}

	return &Media{
		URL:      url,
		FileSize: fileSize,
		Type:     typ,
		Rating:   rating,
	}
}
