package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// Client wraps HTTP operations with an identifying User-Agent.
//
// Public web services such as OpenStreetMap Nominatim require every request
// to identify the calling application, so the header is set on all requests.
//
// Example usage:
//
//	client := NewClient("clineup/1.0 (me@example.com)")
//
//	var out struct{ DisplayName string `json:"display_name"` }
//	err := client.GetJSON(ctx, "https://nominatim.openstreetmap.org/reverse", url.Values{
//	    "lat": {"48.85"}, "lon": {"2.29"}, "format": {"json"},
//	}, &out)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client sending the given User-Agent with a
// DefaultTimeout request timeout.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: userAgent,
	}
}

// UserAgent returns the User-Agent sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s: %s", e.StatusCode, e.Status, e.Body)
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	return io.ReadAll(resp.Body)
}

// GetJSON performs a GET request with the given query and decodes the JSON
// response into dest.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, dest any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", endpoint, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	body, err := c.Get(ctx, u.String())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response from %s: %w", u.Host, err)
	}
	return nil
}
