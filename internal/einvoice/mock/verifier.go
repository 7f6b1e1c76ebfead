package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"egstify/internal/domain"
	"egstify/internal/port"
)

type verifier struct {
	latency time.Duration
}

// NewVerifier creates an InvoiceVerifier that answers every lookup with a
// fixed single-item invoice carrying the requested number.
func NewVerifier(latency time.Duration) port.InvoiceVerifier {
	return &verifier{latency: latency}
}

func (v *verifier) Verify(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, fmt.Errorf("mock.Verify: %w", domain.ErrNotFound)
	}
	if err := wait(ctx, v.latency); err != nil {
		return nil, fmt.Errorf("mock.Verify: %w", err)
	}
	return SampleInvoice(invoiceNumber), nil
}

// SampleInvoice is the invoice the mock authority holds for any number.
func SampleInvoice(invoiceNumber string) *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber:        invoiceNumber,
		InvoiceDate:          "01/03/2024",
		CustomerGSTIN:        "29AAAAA0000A1Z5",
		TotalAmount:          50000,
		GSTAmount:            9000,
		Status:               domain.InvoiceStatusPending,
		ReconciliationStatus: domain.ReconciliationStatusPending,
		ValidationErrors:     []string{},
		Items: []domain.LineItem{{
			Name:        "Test Item",
			Category:    domain.CategoryOthers,
			Quantity:    1,
			Price:       50000,
			Amount:      50000,
			GSTRate:     18,
			GSTAmount:   9000,
			TotalAmount: 59000,
		}},
	}
}
