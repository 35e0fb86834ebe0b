package poster

import (
	"strings"
	"unicode/utf8"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/bsky"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/richtext"
)

// Compose renders segments into post text and link facets. The text budget is
// postTextLimit runes minus room for the trailing "prefix + itemLink" line and
// the "...\n" truncation marker; the trailer itself is always appended with
// its own link facet. Facet offsets are byte offsets into the UTF-8 text.
func Compose(segments []richtext.Segment, prefix, itemLink string, postTextLimit int) (string, []bsky.Facet) {
	limitCount := postTextLimit - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(itemLink) - 4
	if limitCount < 0 {
		limitCount = 0
	}

	var content strings.Builder
	var facets []bsky.Facet
	needTruncate := false

	for _, seg := range segments {
		textCount := utf8.RuneCountInString(seg.Text)
		byteStart := content.Len()

		if textCount > limitCount {
			content.WriteString(firstRunes(seg.Text, limitCount))
			needTruncate = true
			limitCount = 0
		} else {
			content.WriteString(seg.Text)
			limitCount -= textCount
		}

		if seg.IsLink() {
			facets = append(facets, bsky.LinkFacet(byteStart, content.Len(), seg.Link))
		}

		if needTruncate {
			break
		}
	}

	if needTruncate {
		content.WriteString("...\n")
	}
	content.WriteString(prefix)

	byteStart := content.Len()
	content.WriteString(itemLink)
	facets = append(facets, bsky.LinkFacet(byteStart, content.Len(), itemLink))

	return content.String(), facets
}

func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
