package upstream_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egstify/internal/upstream"
)

func TestDo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	body, err := upstream.Do(upstream.NewClient(5, 10), req, "test")

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestDo_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	_, err := upstream.Do(http.DefaultClient, req, "test")

	var statusErr *upstream.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Len(t, statusErr.Body, 503)
}

func TestDo_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	_, err := upstream.Do(http.DefaultClient, req, "test")

	var rlErr *upstream.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
	var statusErr *upstream.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestNewRateLimitError_DefaultRetry(t *testing.T) {
	err := upstream.NewRateLimitError("granite", errors.New("x"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Contains(t, err.Error(), "granite rate limited")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, upstream.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, upstream.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 12, upstream.ParseRetryAfterHeader("12"))
}

func TestNewClient_FallbackTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, upstream.NewClient(0, 10).Timeout)
	assert.Equal(t, 3*time.Second, upstream.NewClient(3, 10).Timeout)
}
