// Package richtext flattens the HTML body of a feed entry into a sequence of
// plain-text and link segments suitable for building a Bluesky post.
package richtext

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Segment is a run of text. Link is empty for plain text; for anchors it
// holds the href and Text the anchor's visible text.
type Segment struct {
	Text string
	Link string
}

// IsLink reports whether the segment came from an anchor element.
func (s Segment) IsLink() bool { return s.Link != "" }

type sinkState int

const (
	stateIdle sinkState = iota
	statePlain
	stateLink
)

// sink accumulates segments while walking the token stream. Anchors are
// closed at the depth they were opened so nested anchors keep the outer link.
type sink struct {
	segments []Segment

	tagDepth     int
	state        sinkState
	textContinue strings.Builder
	link         string
	linkTagDepth int
}

func (s *sink) pushText(text string) {
	if s.state == stateIdle {
		s.state = statePlain
	}
	s.textContinue.WriteString(text)
}

func (s *sink) startLink(href string) {
	switch s.state {
	case stateIdle, statePlain:
		s.flush()
		s.state = stateLink
		s.link = href
		s.linkTagDepth = s.tagDepth
	case stateLink:
		// nested anchor, keep the outer link
	}
}

func (s *sink) startTag(tok html.Token) {
	switch tok.Data {
	case "br":
		s.pushText("\n")
	case "a":
		for _, attr := range tok.Attr {
			if attr.Key == "href" {
				s.startLink(attr.Val)
				break
			}
		}
	}
	s.tagDepth++
}

func (s *sink) endTag(tok html.Token) {
	s.tagDepth--
	if tok.Data == "a" {
		s.flush()
	}
}

func (s *sink) flush() {
	switch s.state {
	case stateIdle:
	case statePlain:
		s.segments = append(s.segments, Segment{Text: s.textContinue.String()})
	case stateLink:
		if s.tagDepth <= s.linkTagDepth {
			s.segments = append(s.segments, Segment{Text: s.textContinue.String(), Link: s.link})
		}
	}
	s.state = stateIdle
	s.link = ""
	s.textContinue.Reset()
}

// FromHTML tokenizes content and returns its segments. Unknown tags are
// ignored; <br> becomes a newline.
func FromHTML(content string) ([]Segment, error) {
	z := html.NewTokenizer(strings.NewReader(content))
	s := &sink{}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			s.flush()
			return s.segments, nil
		case html.TextToken:
			s.pushText(z.Token().Data)
		case html.StartTagToken:
			s.startTag(z.Token())
		case html.SelfClosingTagToken:
			tok := z.Token()
			s.startTag(tok)
			s.endTag(tok)
		case html.EndTagToken:
			s.endTag(z.Token())
		}
	}
}
