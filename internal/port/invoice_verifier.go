package port

import (
	"context"

	"egstify/internal/domain"
)

// InvoiceVerifier looks up an invoice by number at an external verification service.
type InvoiceVerifier interface {
	Verify(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
}
