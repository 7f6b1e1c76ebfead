package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"egstify/internal/domain"
	"egstify/internal/port"
)

// MockTaxAssistant is a mock implementation of port.TaxAssistant.
type MockTaxAssistant struct {
	mock.Mock
}

func (m *MockTaxAssistant) Ask(ctx context.Context, q port.TaxQuery) (*port.TaxAnswer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TaxAnswer), args.Error(1)
}

// MockNewsSource is a mock implementation of port.NewsSource.
type MockNewsSource struct {
	mock.Mock
}

func (m *MockNewsSource) Search(ctx context.Context, limit int) ([]domain.NewsArticle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NewsArticle), args.Error(1)
}
