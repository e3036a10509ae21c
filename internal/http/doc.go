// Package http provides the HTTP client used to talk to web geocoding
// services.
//
// The Client in this package handles:
//   - An identifying User-Agent header on every request
//   - Timeout handling
//   - JSON decoding of successful responses
//
// # Basic Usage
//
//	client := http.NewClient("clineup/1.0 (me@example.com)")
//
//	var result map[string]any
//	err := client.GetJSON(ctx, endpoint, url.Values{"q": {"Paris"}}, &result)
//
// Non-200 responses are returned as *StatusError so callers can inspect the
// status code (for example 429 when a usage policy is exceeded).
package http
