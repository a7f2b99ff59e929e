package salon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"salonctl/internal/shared"
)

// Client provides access to the salon backend API.
//
// The zero value is not usable; construct with [NewClient].
type Client struct {
	baseURL        string
	checkinBaseURL string
	httpClient     *http.Client
	tokens         oauth2.TokenSource
}

// NewClient creates a new backend API client.
//
// tokens may be nil for a purely unauthenticated client; when present, any
// token it yields is attached to outgoing requests as a bearer header.
func NewClient(baseURL, checkinBaseURL string, httpClient *http.Client, tokens oauth2.TokenSource) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080/v1"
	}
	if checkinBaseURL == "" {
		checkinBaseURL = baseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:        baseURL,
		checkinBaseURL: checkinBaseURL,
		httpClient:     httpClient,
		tokens:         tokens,
	}
}

// doRequest performs an HTTP request against the backend and decodes the JSON
// response into result when result is non-nil.
//
// A non-2xx status or an undecodable body is reported as kind (one of
// [shared.ErrFetch], [shared.ErrSubmit], [shared.ErrAuth]) so callers surface
// the right notification without inspecting the transport error.
func (c *Client) doRequest(ctx context.Context, method, fullURL string, body any, result any, kind error) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Token presence is the only local auth check; requests without a token
	// simply omit the header.
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok != nil {
			tok.SetAuthHeader(req)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", kind, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", kind, err)
		}
	}

	return nil
}

// get performs an authenticated GET against the main base URL.
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	return c.doRequest(ctx, http.MethodGet, c.baseURL+endpoint, nil, result, shared.ErrFetch)
}

// post performs an authenticated POST against the main base URL.
func (c *Client) post(ctx context.Context, endpoint string, body, result any, kind error) error {
	return c.doRequest(ctx, http.MethodPost, c.baseURL+endpoint, body, result, kind)
}
