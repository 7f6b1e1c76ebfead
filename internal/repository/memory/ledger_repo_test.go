package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egstify/internal/domain"
	"egstify/internal/repository/memory"
)

func entry(id string, amount, gst float64) domain.LedgerEntry {
	return domain.LedgerEntry{ID: id, Amount: amount, GST: gst, Products: []domain.LedgerProduct{{Name: "Widget", Quantity: 1, Price: amount - gst, GSTRate: 18}}}
}

func TestLedgerRepo_LoadEmpty(t *testing.T) {
	repo := memory.NewLedgerRepo()

	ledger, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, ledger.InvoiceCount)
	assert.NotNil(t, ledger.RecentInvoices)
	assert.Empty(t, ledger.RecentInvoices)
}

func TestLedgerRepo_UpdatePersists(t *testing.T) {
	repo := memory.NewLedgerRepo()
	ctx := context.Background()

	_, err := repo.Update(ctx, func(cur *domain.SalesLedger) (*domain.SalesLedger, error) {
		return cur.Apply(entry("INV-1", 118, 18)), nil
	})
	require.NoError(t, err)

	ledger, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.InvoiceCount)
	assert.InDelta(t, 118, ledger.TotalSales, 1e-9)
	assert.Equal(t, "INV-1", ledger.RecentInvoices[0].ID)
}

func TestLedgerRepo_UpdateErrorLeavesLedgerUntouched(t *testing.T) {
	repo := memory.NewLedgerRepo()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repo.Update(ctx, func(cur *domain.SalesLedger) (*domain.SalesLedger, error) {
		cur.InvoiceCount = 99
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	ledger, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.InvoiceCount)
}

func TestLedgerRepo_LoadReturnsCopy(t *testing.T) {
	repo := memory.NewLedgerRepo()
	ctx := context.Background()
	_, err := repo.Update(ctx, func(cur *domain.SalesLedger) (*domain.SalesLedger, error) {
		return cur.Apply(entry("INV-1", 118, 18)), nil
	})
	require.NoError(t, err)

	first, _ := repo.Load(ctx)
	first.RecentInvoices[0].ID = "tampered"
	first.InvoiceCount = 42

	second, _ := repo.Load(ctx)
	assert.Equal(t, "INV-1", second.RecentInvoices[0].ID)
	assert.Equal(t, 1, second.InvoiceCount)
}

func TestLedgerRepo_ConcurrentUpdates(t *testing.T) {
	repo := memory.NewLedgerRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, func(cur *domain.SalesLedger) (*domain.SalesLedger, error) {
				return cur.Apply(entry("INV", 10, 1)), nil
			})
		}()
	}
	wg.Wait()

	ledger, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, ledger.InvoiceCount)
	assert.InDelta(t, 500, ledger.TotalSales, 1e-9)
	assert.Len(t, ledger.RecentInvoices, domain.RecentInvoiceLimit)
}

func TestLedgerRepo_CanceledContext(t *testing.T) {
	repo := memory.NewLedgerRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Update(ctx, func(cur *domain.SalesLedger) (*domain.SalesLedger, error) {
		return cur.Apply(entry("INV-1", 1, 0)), nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, repo.Ping(context.Background()))
}
