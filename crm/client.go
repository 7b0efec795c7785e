// Package crm provides the glue around the form pipeline for a small CRM:
// an API client speaking the {success, data, message} envelope, auth with
// signed session tokens, user and customer services, and the declarative
// form, detail, and table configurations those records render with.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 30 * time.Second

// Envelope is the uniform response body shared by all API endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// DecodeData unmarshals the envelope payload into out.
func (e Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("crm: envelope has no data")
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("crm: decoding envelope data: %w", err)
	}
	return nil
}

// TokenSource supplies the bearer token attached to outgoing requests. A nil
// source or empty token leaves the request unauthenticated.
type TokenSource func() string

// Client talks to a CRM API server. Responses are decoded into the envelope;
// non-2xx statuses surface the envelope message as an error.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource sets the bearer token provider.
func WithTokenSource(tokens TokenSource) ClientOption {
	return func(c *Client) { c.tokens = tokens }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient constructs a client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request. Params become the query string.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*Envelope, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	return c.roundtrip(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.roundtrip(ctx, http.MethodPost, endpoint, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.roundtrip(ctx, http.MethodPut, endpoint, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.roundtrip(ctx, http.MethodPatch, endpoint, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.roundtrip(ctx, http.MethodDelete, endpoint, nil)
}

func (c *Client) roundtrip(ctx context.Context, method, endpoint string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("crm: encoding request body: %w", err)
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("crm: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crm: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	envelope := &Envelope{}
	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		return nil, fmt.Errorf("crm: %s %s: decoding response: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := envelope.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return envelope, fmt.Errorf("crm: %s %s: HTTP %d: %s", method, endpoint, resp.StatusCode, message)
	}
	return envelope, nil
}
