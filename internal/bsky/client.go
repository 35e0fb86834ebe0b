// Package bsky is a minimal XRPC client for the handful of AT Protocol
// endpoints this tool needs: createSession, createRecord and uploadBlob.
package bsky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrDryRun is returned by any method that would touch the network while the
// client is in dry-run mode.
var ErrDryRun = fmt.Errorf("bsky: dry run mode enabled")

// Client talks XRPC to a single PDS host. It is not safe for concurrent use
// while SetSession is being called.
type Client struct {
	hc        *http.Client
	host      string
	accessJwt string
	did       string
	dryRun    bool
}

// New creates a Client for host (e.g. https://bsky.social). If hc is nil a
// client with a tuned transport and timeout is used.
func New(host string, hc *http.Client, dryRun bool) *Client {
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
	return &Client{hc: hc, host: host, dryRun: dryRun}
}

// SetSession installs the access token and DID from a created session.
func (c *Client) SetSession(accessJwt, did string) {
	c.accessJwt = accessJwt
	c.did = did
}

// DID returns the DID of the authenticated session, or "" before login.
func (c *Client) DID() string { return c.did }

// CreateSession authenticates with an identifier (handle or DID) and an app
// password. The caller passes the result to SetSession.
func (c *Client) CreateSession(ctx context.Context, identifier, password string) (Session, error) {
	var out Session
	in := map[string]string{"identifier": identifier, "password": password}
	if err := c.procedure(ctx, nsidCreateSession, in, &out); err != nil {
		return Session{}, err
	}
	return out, nil
}

// CreateRecord creates record in the session repo's app.bsky.feed.post
// collection.
func (c *Client) CreateRecord(ctx context.Context, record PostRecord) (CreateRecordOutput, error) {
	var out CreateRecordOutput
	if c.did == "" {
		return out, fmt.Errorf("bsky: createRecord requires an authenticated session")
	}
	in := createRecordInput{
		Repo:       c.did,
		Collection: TypePost,
		Record:     record,
	}
	if err := c.procedure(ctx, nsidCreateRecord, in, &out); err != nil {
		return CreateRecordOutput{}, err
	}
	return out, nil
}

// UploadBlob uploads raw bytes and returns the blob reference to embed.
func (c *Client) UploadBlob(ctx context.Context, data []byte, contentType string) (Blob, error) {
	if c.dryRun {
		return nil, ErrDryRun
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/xrpc/"+nsidUploadBlob, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	var out uploadBlobOutput
	if err := c.do(req, nsidUploadBlob, &out); err != nil {
		return nil, err
	}
	return out.Blob, nil
}

// GetRemoteContent fetches an arbitrary URL (the toot's attached image) and
// returns its body and Content-Type. Any status other than 200 is an error.
func (c *Client) GetRemoteContent(ctx context.Context, url string) ([]byte, string, error) {
	if c.dryRun {
		return nil, "", ErrDryRun
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", err
	}
	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("bsky: fetch %s: status=%d body=%q", url, res.StatusCode, body)
	}
	return body, res.Header.Get("Content-Type"), nil
}

// procedure POSTs a JSON body to an XRPC procedure and decodes the JSON reply.
func (c *Client) procedure(ctx context.Context, nsid string, in, out any) error {
	if c.dryRun {
		return ErrDryRun
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/xrpc/"+nsid, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	return c.do(req, nsid, out)
}

func (c *Client) authorize(req *http.Request) {
	if c.accessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessJwt)
	}
}

func (c *Client) do(req *http.Request, nsid string, out any) error {
	slog.Debug("xrpc request", "nsid", nsid, "host", c.host)
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("bsky: %s: %w", nsid, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("bsky: %s: read response: %w", nsid, err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var xe xrpcError
		if json.Unmarshal(body, &xe) == nil && xe.Error != "" {
			return fmt.Errorf("bsky: %s: %s: %s", nsid, xe.Error, xe.Message)
		}
		return fmt.Errorf("bsky: %s: status=%d body=%q", nsid, res.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("bsky: %s: decode response: %w", nsid, err)
	}
	return nil
}
