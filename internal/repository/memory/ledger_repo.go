// Package memory provides a process-local LedgerStore for tests and
// ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"egstify/internal/domain"
	"egstify/internal/port"
)

type ledgerRepo struct {
	mu     sync.Mutex
	ledger *domain.SalesLedger
}

// NewLedgerRepo creates an empty in-memory LedgerStore.
func NewLedgerRepo() port.LedgerStore {
	return &ledgerRepo{ledger: domain.NewSalesLedger()}
}

func (r *ledgerRepo) Load(_ context.Context) (*domain.SalesLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.Clone(), nil
}

func (r *ledgerRepo) Update(ctx context.Context, fn port.LedgerUpdateFunc) (*domain.SalesLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update: %w", err)
	}

	next, err := fn(r.ledger.Clone())
	if err != nil {
		return nil, err
	}
	r.ledger = next.Clone()
	return next, nil
}

func (r *ledgerRepo) Ping(_ context.Context) error {
	return nil
}
