package port

import (
	"context"

	"egstify/internal/domain"
)

// LedgerUpdateFunc derives the next ledger state from the current one.
// Returning an error aborts the update and leaves the stored ledger untouched.
type LedgerUpdateFunc func(current *domain.SalesLedger) (*domain.SalesLedger, error)

// LedgerStore persists a single SalesLedger instance.
// Update must be all-or-nothing: either the ledger returned by fn is stored
// in full, or the stored ledger is unchanged.
type LedgerStore interface {
	Load(ctx context.Context) (*domain.SalesLedger, error)
	Update(ctx context.Context, fn LedgerUpdateFunc) (*domain.SalesLedger, error)
	Ping(ctx context.Context) error
}
