package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"egstify/internal/domain"
	"egstify/internal/port"
)

type ledgerRow struct {
	TotalSales     float64 `db:"total_sales"`
	GSTCollected   float64 `db:"gst_collected"`
	InvoiceCount   int     `db:"invoice_count"`
	RecentInvoices string  `db:"recent_invoices"`
}

func (r *ledgerRow) toDomain() (*domain.SalesLedger, error) {
	ledger := domain.NewSalesLedger()
	ledger.TotalSales = r.TotalSales
	ledger.GSTCollected = r.GSTCollected
	ledger.InvoiceCount = r.InvoiceCount
	if err := json.Unmarshal([]byte(r.RecentInvoices), &ledger.RecentInvoices); err != nil {
		return nil, fmt.Errorf("decoding recent invoices: %w", err)
	}
	if ledger.RecentInvoices == nil {
		ledger.RecentInvoices = []domain.LedgerEntry{}
	}
	return ledger, nil
}

type ledgerRepo struct {
	db *sqlx.DB
	id string
}

// NewLedgerRepo creates a SQLite-backed LedgerStore for the ledger named id.
func NewLedgerRepo(db *sqlx.DB, id string) port.LedgerStore {
	return &ledgerRepo{db: db, id: id}
}

const selectLedger = `SELECT total_sales, gst_collected, invoice_count, recent_invoices
	FROM sales_ledgers WHERE id = ?`

func (r *ledgerRepo) Load(ctx context.Context) (*domain.SalesLedger, error) {
	var row ledgerRow
	err := r.db.GetContext(ctx, &row, selectLedger, r.id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewSalesLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Load: %w", err)
	}
	ledger, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Load: %w", err)
	}
	return ledger, nil
}

func (r *ledgerRepo) Update(ctx context.Context, fn port.LedgerUpdateFunc) (*domain.SalesLedger, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	current := domain.NewSalesLedger()
	var row ledgerRow
	switch err := tx.GetContext(ctx, &row, selectLedger, r.id); {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("ledgerRepo.Update select: %w", err)
	default:
		if current, err = row.toDomain(); err != nil {
			return nil, fmt.Errorf("ledgerRepo.Update: %w", err)
		}
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	recent, err := json.Marshal(next.RecentInvoices)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update encode: %w", err)
	}

	query := `INSERT INTO sales_ledgers (id, total_sales, gst_collected, invoice_count, recent_invoices, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_sales = excluded.total_sales,
			gst_collected = excluded.gst_collected,
			invoice_count = excluded.invoice_count,
			recent_invoices = excluded.recent_invoices,
			updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, query,
		r.id, next.TotalSales, next.GSTCollected, next.InvoiceCount, string(recent),
		time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update upsert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update commit: %w", err)
	}
	return next, nil
}

func (r *ledgerRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
