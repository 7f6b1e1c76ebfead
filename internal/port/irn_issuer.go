package port

import (
	"context"

	"egstify/internal/domain"
)

// IRNIssuer registers a validated invoice with the e-invoicing authority.
type IRNIssuer interface {
	Issue(ctx context.Context, inv *domain.Invoice) (*domain.IRNResult, error)
}

// ReturnMatcher checks an invoice against filed GST return data.
type ReturnMatcher interface {
	Match(ctx context.Context, inv *domain.Invoice) (bool, error)
}
