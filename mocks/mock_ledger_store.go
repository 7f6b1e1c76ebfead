package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"egstify/internal/domain"
	"egstify/internal/port"
)

// MockLedgerStore is a mock implementation of port.LedgerStore.
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) Load(ctx context.Context) (*domain.SalesLedger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesLedger), args.Error(1)
}

func (m *MockLedgerStore) Update(ctx context.Context, fn port.LedgerUpdateFunc) (*domain.SalesLedger, error) {
	args := m.Called(ctx, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesLedger), args.Error(1)
}

func (m *MockLedgerStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
