package poster

import (
	"strings"
	"testing"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/richtext"
)

const (
	testPrefix = "[from]:"
	testLink   = "https://mstdn.example/@alice/1"
)

func TestCompose_PlainTextWithTrailer(t *testing.T) {
	segs := []richtext.Segment{{Text: "hello world"}}
	text, facets := Compose(segs, testPrefix, testLink, 300)

	want := "hello world" + testPrefix + testLink
	if text != want {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(facets) != 1 {
		t.Fatalf("expected 1 facet (trailer), got %d", len(facets))
	}
	f := facets[0]
	if f.Index.ByteStart != len("hello world"+testPrefix) || f.Index.ByteEnd != len(want) {
		t.Fatalf("unexpected trailer facet range: %+v", f.Index)
	}
	if f.Features[0].URI != testLink {
		t.Fatalf("unexpected trailer facet uri: %q", f.Features[0].URI)
	}
}

func TestCompose_LinkFacetUsesByteOffsets(t *testing.T) {
	// Multibyte text before the link: offsets must count bytes, not runes.
	segs := []richtext.Segment{
		{Text: "こんにちは "},
		{Text: "example", Link: "https://example.com/"},
	}
	text, facets := Compose(segs, testPrefix, testLink, 300)

	if len(facets) != 2 {
		t.Fatalf("expected 2 facets, got %d", len(facets))
	}
	f := facets[0]
	wantStart := len("こんにちは ") // 16 bytes, 6 runes
	if f.Index.ByteStart != wantStart {
		t.Fatalf("expected byteStart %d, got %d", wantStart, f.Index.ByteStart)
	}
	if f.Index.ByteEnd != wantStart+len("example") {
		t.Fatalf("unexpected byteEnd: %d", f.Index.ByteEnd)
	}
	if got := text[f.Index.ByteStart:f.Index.ByteEnd]; got != "example" {
		t.Fatalf("facet range covers %q", got)
	}
}

func TestCompose_Truncation(t *testing.T) {
	long := strings.Repeat("a", 400)
	segs := []richtext.Segment{{Text: long}}
	limit := 300
	text, _ := Compose(segs, testPrefix, testLink, limit)

	budget := limit - len([]rune(testPrefix)) - len([]rune(testLink)) - 4
	want := long[:budget] + "...\n" + testPrefix + testLink
	if text != want {
		t.Fatalf("unexpected truncated text:\n got %q\nwant %q", text, want)
	}
}

func TestCompose_TruncationStopsAtSegment(t *testing.T) {
	long := strings.Repeat("b", 400)
	segs := []richtext.Segment{
		{Text: long},
		{Text: "never", Link: "https://never.example/"},
	}
	_, facets := Compose(segs, testPrefix, testLink, 300)

	// Only the trailer facet: the link segment was never reached.
	if len(facets) != 1 {
		t.Fatalf("expected 1 facet, got %d", len(facets))
	}
	if facets[0].Features[0].URI != testLink {
		t.Fatalf("unexpected facet: %+v", facets[0])
	}
}

func TestCompose_TruncatedLinkKeepsFacet(t *testing.T) {
	segs := []richtext.Segment{
		{Text: strings.Repeat("c", 500), Link: "https://long.example/"},
	}
	text, facets := Compose(segs, testPrefix, testLink, 300)

	if len(facets) != 2 {
		t.Fatalf("expected 2 facets, got %d", len(facets))
	}
	f := facets[0]
	if f.Index.ByteStart != 0 {
		t.Fatalf("unexpected byteStart: %d", f.Index.ByteStart)
	}
	if got := text[f.Index.ByteStart:f.Index.ByteEnd]; !strings.HasPrefix(got, "c") || strings.Contains(got, ".") {
		t.Fatalf("facet range covers %q", got)
	}
}

func TestCompose_BudgetClampedToZero(t *testing.T) {
	segs := []richtext.Segment{{Text: "dropped"}}
	text, _ := Compose(segs, testPrefix, testLink, 10)

	want := "...\n" + testPrefix + testLink
	if text != want {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestFirstRunes(t *testing.T) {
	if got := firstRunes("こんにちは", 2); got != "こん" {
		t.Fatalf("firstRunes: %q", got)
	}
	if got := firstRunes("abc", 10); got != "abc" {
		t.Fatalf("firstRunes: %q", got)
	}
	if got := firstRunes("abc", 0); got != "" {
		t.Fatalf("firstRunes: %q", got)
	}
}
