package richtext

import (
	"testing"
)

func TestFromHTML_PlainText(t *testing.T) {
	segs, err := FromHTML("<p>hello world</p>")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segs), segs)
	}
	if segs[0].IsLink() {
		t.Fatalf("expected plain segment")
	}
	if segs[0].Text != "hello world" {
		t.Fatalf("unexpected text: %q", segs[0].Text)
	}
}

func TestFromHTML_BrBecomesNewline(t *testing.T) {
	segs, err := FromHTML("<p>one<br>two<br />three</p>")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segs), segs)
	}
	if segs[0].Text != "one\ntwo\nthree" {
		t.Fatalf("unexpected text: %q", segs[0].Text)
	}
}

func TestFromHTML_Link(t *testing.T) {
	segs, err := FromHTML(`<p>see <a href="https://example.com/x">here</a> now</p>`)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %v", len(segs), segs)
	}
	if segs[0].Text != "see " || segs[0].IsLink() {
		t.Fatalf("unexpected first segment: %+v", segs[0])
	}
	if segs[1].Text != "here" || segs[1].Link != "https://example.com/x" {
		t.Fatalf("unexpected link segment: %+v", segs[1])
	}
	if segs[2].Text != " now" || segs[2].IsLink() {
		t.Fatalf("unexpected trailing segment: %+v", segs[2])
	}
}

func TestFromHTML_MastodonSpanInsideAnchor(t *testing.T) {
	// Mastodon wraps URLs in spans for ellipsis display. The whole visible
	// text belongs to the anchor.
	in := `<a href="https://example.com/page"><span class="invisible">https://</span><span class="ellipsis">example.com/pa</span><span class="invisible">ge</span></a>`
	segs, err := FromHTML(in)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segs), segs)
	}
	if segs[0].Link != "https://example.com/page" {
		t.Fatalf("unexpected link: %q", segs[0].Link)
	}
	if segs[0].Text != "https://example.com/page" {
		t.Fatalf("unexpected text: %q", segs[0].Text)
	}
}

func TestFromHTML_AnchorClosedAtOpeningDepth(t *testing.T) {
	// The anchor segment is only emitted when the closing tag sits at the
	// depth the anchor was opened at; a stray inner close discards it.
	in := `<div><a href="https://outer.example/">out</a></div>`
	segs, err := FromHTML(in)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segs), segs)
	}
	if segs[0].Link != "https://outer.example/" || segs[0].Text != "out" {
		t.Fatalf("unexpected segment: %+v", segs[0])
	}
}

func TestFromHTML_AnchorWithoutHref(t *testing.T) {
	segs, err := FromHTML(`<a name="x">label</a>`)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segs), segs)
	}
	if segs[0].IsLink() {
		t.Fatalf("anchor without href must stay plain text: %+v", segs[0])
	}
	if segs[0].Text != "label" {
		t.Fatalf("unexpected text: %q", segs[0].Text)
	}
}

func TestFromHTML_EntitiesDecoded(t *testing.T) {
	segs, err := FromHTML("<p>a &amp; b</p>")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "a & b" {
		t.Fatalf("expected decoded entity, got %v", segs)
	}
}

func TestFromHTML_Empty(t *testing.T) {
	segs, err := FromHTML("")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(segs) != 0 {
		t.Fatalf("expected no segments, got %v", segs)
	}
}
