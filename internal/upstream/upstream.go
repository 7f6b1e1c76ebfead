// Package upstream holds the plumbing shared by the outbound HTTP clients
// (tax assistant, invoice verifier, news feed).
package upstream

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const maxErrorBody = 500

// StatusError is a non-2xx answer from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// RateLimitError indicates a provider returned HTTP 429. Callers do not retry;
// RetryAfter is surfaced for logging only.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// NewClient returns an http.Client with the given timeout in seconds,
// falling back to fallbackSecs when timeoutSecs is not positive.
func NewClient(timeoutSecs, fallbackSecs int) *http.Client {
	if timeoutSecs <= 0 {
		timeoutSecs = fallbackSecs
	}
	return &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second}
}

// Do sends req and returns the response body. Non-2xx statuses become a
// *StatusError, wrapped in a *RateLimitError for 429.
func Do(client *http.Client, req *http.Request, provider string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s API: %w", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: Truncate(string(body), maxErrorBody)}
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, NewRateLimitError(provider, statusErr, ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
		}
		return nil, statusErr
	}
	return body, nil
}

// Truncate shortens s to at most maxLen bytes, marking the cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
