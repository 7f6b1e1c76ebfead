package port

import (
	"context"

	"egstify/internal/domain"
)

// NewsSource searches for GST-related news articles.
type NewsSource interface {
	Search(ctx context.Context, limit int) ([]domain.NewsArticle, error)
}
