package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"egstify/internal/domain"
	"egstify/internal/metrics"
	"egstify/internal/news"
	"egstify/internal/port"
)

// Feed sources reported in NewsFeed.Source.
const (
	FeedSourceLive     = "live"
	FeedSourceFallback = "fallback"
)

// NewsFeed is the news page payload.
type NewsFeed struct {
	Articles  []domain.NewsArticle `json:"articles"`
	Documents []domain.TaxDocument `json:"documents"`
	Source    string               `json:"source"`
}

// NewsService assembles the GST news page.
type NewsService interface {
	Feed(ctx context.Context) *NewsFeed
}

type newsService struct {
	source port.NewsSource
	limit  int
	now    func() time.Time
}

// NewNewsService creates a NewsService. A nil source always serves the
// fallback articles.
func NewNewsService(source port.NewsSource, limit int) NewsService {
	if limit <= 0 {
		limit = 10
	}
	return &newsService{source: source, limit: limit, now: time.Now}
}

// Feed never fails: any source error degrades to the fallback articles.
func (s *newsService) Feed(ctx context.Context) *NewsFeed {
	feed := &NewsFeed{Documents: news.TaxDocuments()}
	if s.source != nil {
		articles, err := s.source.Search(ctx, s.limit)
		if err == nil {
			feed.Articles = articles
			feed.Source = FeedSourceLive
			return feed
		}
		metrics.UpstreamFailures.WithLabelValues("news").Inc()
		zap.L().Warn("news source unavailable, serving fallback", zap.Error(err))
	}
	feed.Articles = news.FallbackArticles(s.now())
	feed.Source = FeedSourceFallback
	return feed
}
