package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"egstify/internal/domain"
)

// MockIRNIssuer is a mock implementation of port.IRNIssuer.
type MockIRNIssuer struct {
	mock.Mock
}

func (m *MockIRNIssuer) Issue(ctx context.Context, inv *domain.Invoice) (*domain.IRNResult, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IRNResult), args.Error(1)
}

// MockReturnMatcher is a mock implementation of port.ReturnMatcher.
type MockReturnMatcher struct {
	mock.Mock
}

func (m *MockReturnMatcher) Match(ctx context.Context, inv *domain.Invoice) (bool, error) {
	args := m.Called(ctx, inv)
	return args.Bool(0), args.Error(1)
}

// MockInvoiceVerifier is a mock implementation of port.InvoiceVerifier.
type MockInvoiceVerifier struct {
	mock.Mock
}

func (m *MockInvoiceVerifier) Verify(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
