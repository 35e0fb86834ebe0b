package bsky

import "encoding/json"

// Lexicon NSIDs and record $type values used by the client.
const (
	nsidCreateSession = "com.atproto.server.createSession"
	nsidCreateRecord  = "com.atproto.repo.createRecord"
	nsidUploadBlob    = "com.atproto.repo.uploadBlob"

	TypePost        = "app.bsky.feed.post"
	TypeFacetLink   = "app.bsky.richtext.facet#link"
	TypeEmbedImages = "app.bsky.embed.images"
)

// Session is the result of com.atproto.server.createSession.
type Session struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Handle     string `json:"handle"`
	DID        string `json:"did"`
}

// ByteSlice addresses a facet target by byte offsets into the post text.
// Offsets are bytes of the UTF-8 encoding, not runes.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// LinkFeature marks a facet range as a hyperlink.
type LinkFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri"`
}

// Facet decorates a byte range of the post text.
type Facet struct {
	Index    ByteSlice     `json:"index"`
	Features []LinkFeature `json:"features"`
}

// LinkFacet builds a link facet covering [byteStart, byteEnd).
func LinkFacet(byteStart, byteEnd int, uri string) Facet {
	return Facet{
		Index: ByteSlice{ByteStart: byteStart, ByteEnd: byteEnd},
		Features: []LinkFeature{
			{Type: TypeFacetLink, URI: uri},
		},
	}
}

// Blob is the blob reference returned by uploadBlob. The PDS returns a typed
// CID structure; it is carried opaquely and echoed back in the embed.
type Blob = json.RawMessage

// Image is one image of an images embed.
type Image struct {
	Alt   string `json:"alt"`
	Image Blob   `json:"image"`
}

// ImagesEmbed is the app.bsky.embed.images record embed.
type ImagesEmbed struct {
	Type   string  `json:"$type"`
	Images []Image `json:"images"`
}

// PostRecord is an app.bsky.feed.post record.
type PostRecord struct {
	Type      string       `json:"$type"`
	Text      string       `json:"text"`
	Facets    []Facet      `json:"facets,omitempty"`
	Embed     *ImagesEmbed `json:"embed,omitempty"`
	CreatedAt string       `json:"createdAt"`
}

type createRecordInput struct {
	Repo       string     `json:"repo"`
	Collection string     `json:"collection"`
	Record     PostRecord `json:"record"`
}

// CreateRecordOutput identifies the created record.
type CreateRecordOutput struct {
	CID string `json:"cid"`
	URI string `json:"uri"`
}

type uploadBlobOutput struct {
	Blob Blob `json:"blob"`
}

// xrpcError is the error body XRPC endpoints return on failure.
type xrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
