package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"egstify/internal/domain"
	"egstify/internal/port"
	"egstify/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Validate(inv *domain.Invoice) []string {
	args := m.Called(inv)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockInvoiceService) Submit(ctx context.Context, input service.SubmitInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Verify(ctx context.Context, invoiceNumber string) (*domain.VerificationResult, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationResult), args.Error(1)
}

func (m *MockInvoiceService) Reconcile(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Archive(ctx context.Context, inv *domain.Invoice) (*service.ArchiveResult, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

// MockLedgerService is a mock implementation of service.LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Record(ctx context.Context, inv *domain.Invoice) (*domain.SalesLedger, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesLedger), args.Error(1)
}

func (m *MockLedgerService) Read(ctx context.Context) (*domain.SalesLedger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesLedger), args.Error(1)
}

func (m *MockLedgerService) Snapshot(ctx context.Context) (*service.LedgerSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LedgerSnapshot), args.Error(1)
}

// MockAssistantService is a mock implementation of service.AssistantService.
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Chat(message string) *service.ChatReply {
	args := m.Called(message)
	return args.Get(0).(*service.ChatReply)
}

func (m *MockAssistantService) Ask(ctx context.Context, q port.TaxQuery) (*port.TaxAnswer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TaxAnswer), args.Error(1)
}

// MockNewsService is a mock implementation of service.NewsService.
type MockNewsService struct {
	mock.Mock
}

func (m *MockNewsService) Feed(ctx context.Context) *service.NewsFeed {
	args := m.Called(ctx)
	return args.Get(0).(*service.NewsFeed)
}
