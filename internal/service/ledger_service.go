package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"egstify/internal/domain"
	"egstify/internal/gst"
	"egstify/internal/metrics"
	"egstify/internal/port"
)

// LedgerSnapshot is the ledger plus its display-formatted totals.
type LedgerSnapshot struct {
	*domain.SalesLedger
	TotalSalesDisplay   string `json:"totalSalesDisplay"`
	GSTCollectedDisplay string `json:"gstCollectedDisplay"`
}

// LedgerService maintains the running sales ledger.
type LedgerService interface {
	Record(ctx context.Context, inv *domain.Invoice) (*domain.SalesLedger, error)
	Read(ctx context.Context) (*domain.SalesLedger, error)
	Snapshot(ctx context.Context) (*LedgerSnapshot, error)
}

type ledgerService struct {
	store port.LedgerStore
	now   func() time.Time
}

// NewLedgerService creates a LedgerService backed by store.
func NewLedgerService(store port.LedgerStore) LedgerService {
	return &ledgerService{store: store, now: time.Now}
}

// Record adds a processed invoice to the ledger. Either every aggregate field
// changes or none does.
func (s *ledgerService) Record(ctx context.Context, inv *domain.Invoice) (*domain.SalesLedger, error) {
	if inv.Status != domain.InvoiceStatusProcessed {
		return nil, fmt.Errorf("recording invoice %s in status %s: %w", inv.InvoiceNumber, inv.Status, domain.ErrInvalidStatusTransition)
	}

	entry := domain.NewLedgerEntry(inv, s.now())
	ledger, err := s.store.Update(ctx, func(current *domain.SalesLedger) (*domain.SalesLedger, error) {
		return current.Apply(entry), nil
	})
	if err != nil {
		return nil, fmt.Errorf("recording invoice %s: %w: %w", inv.InvoiceNumber, domain.ErrLedgerUnavailable, err)
	}

	observeLedger(ledger)
	zap.L().Info("invoice recorded in ledger",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("invoice_count", ledger.InvoiceCount),
	)
	return ledger, nil
}

func (s *ledgerService) Read(ctx context.Context) (*domain.SalesLedger, error) {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w: %w", domain.ErrLedgerUnavailable, err)
	}
	observeLedger(ledger)
	return ledger, nil
}

func (s *ledgerService) Snapshot(ctx context.Context) (*LedgerSnapshot, error) {
	ledger, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &LedgerSnapshot{
		SalesLedger:         ledger,
		TotalSalesDisplay:   gst.FormatRupees(ledger.TotalSales),
		GSTCollectedDisplay: gst.FormatRupees(ledger.GSTCollected),
	}, nil
}

func observeLedger(l *domain.SalesLedger) {
	metrics.LedgerTotalSales.Set(l.TotalSales)
	metrics.LedgerGSTCollected.Set(l.GSTCollected)
	metrics.LedgerInvoiceCount.Set(float64(l.InvoiceCount))
}
