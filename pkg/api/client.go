package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource supplies the current session bearer token. An empty string
// means no session is active and no Authorization header is sent; that is
// not an error.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to the TokenSource interface.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client is the HTTP core for the Search Casa admin API. It is safe for
// concurrent use: the token source is read at send time for each request and
// the client itself is immutable after construction.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Useful for tests and
// for callers that need a custom transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a client for the given base URL. The base URL is required;
// tokens may be nil for an unauthenticated client. No retry, backoff, or
// client-side timeout policy is applied beyond the transport defaults.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// requestOption tweaks a single outbound request.
type requestOption func(*requestConfig)

type requestConfig struct {
	bearer    string
	hasBearer bool
}

// withBearer forces a specific bearer token for one request, bypassing the
// token source. The login flow uses this to sign the credentials POST with
// the pre-auth token.
func withBearer(token string) requestOption {
	return func(rc *requestConfig) {
		rc.bearer = token
		rc.hasBearer = true
	}
}

// Do issues one request and decodes the response into out (which may be nil
// when the caller does not need the body). The request body, when non-nil,
// is JSON-encoded. Failures are returned as *Error; a 2xx body that cannot
// be decoded into out is returned as *DecodeError.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	return c.do(ctx, method, path, body, query, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, out any, opts ...requestOption) error {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Bearer auth: a per-request override wins; otherwise the token source
	// is consulted, and an absent token simply means no header.
	switch {
	case rc.hasBearer:
		if rc.bearer != "" {
			req.Header.Set("Authorization", "Bearer "+rc.bearer)
		}
	case c.tokens != nil:
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return normalizeError(0, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizeError(resp.StatusCode, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, respBody, nil)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := unwrap(respBody, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// unwrap decodes a response body into out, honoring the backend's envelope
// convention: when the body is an object with a "data" key, that key holds
// the payload; otherwise the body itself is the payload. The data key is
// authoritative whenever it is present.
func unwrap(body []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}
