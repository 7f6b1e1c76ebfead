// Package newsapi searches NewsAPI for GST-related articles.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"egstify/internal/config"
	"egstify/internal/domain"
	"egstify/internal/upstream"
)

const provider = "newsapi"

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("newsapi: api key not configured")

// Client implements port.NewsSource.
type Client struct {
	apiKey   string
	endpoint string
	query    string
	client   *http.Client
}

// NewClient creates a NewsAPI client from cfg.
func NewClient(cfg *config.NewsConfig) *Client {
	query := cfg.Query
	if query == "" {
		query = "GST India tax"
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: cfg.URL,
		query:    query,
		client:   upstream.NewClient(cfg.TimeoutSecs, 10),
	}
}

type searchResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Search returns up to limit articles, newest first.
func (c *Client) Search(ctx context.Context, limit int) ([]domain.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("q", c.query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	respBody, err := upstream.Do(c.client, req, provider)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w (raw: %s)", err, upstream.Truncate(string(respBody), 200))
	}
	if resp.Status != "" && resp.Status != "ok" {
		return nil, fmt.Errorf("%s search failed: %s", provider, resp.Message)
	}

	n := len(resp.Articles)
	if limit > 0 && n > limit {
		n = limit
	}
	articles := make([]domain.NewsArticle, 0, n)
	for _, a := range resp.Articles[:n] {
		articles = append(articles, domain.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
