package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONSendsUserAgentAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clineup-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "1.5", r.URL.Query().Get("lat"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient("clineup-test")
	var out struct {
		Name string `json:"name"`
	}
	err := c.GetJSON(context.Background(), srv.URL+"/reverse", url.Values{"lat": {"1.5"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestGetReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient("x").Get(context.Background(), srv.URL)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Contains(t, se.Error(), "slow down")
}

func TestGetJSONRejectsInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient("x").GetJSON(context.Background(), srv.URL, nil, &out)
	assert.Error(t, err)
}
