package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"egstify/internal/domain"
	"egstify/internal/port"
)

type ledgerRow struct {
	TotalSales     float64 `db:"total_sales"`
	GSTCollected   float64 `db:"gst_collected"`
	InvoiceCount   int     `db:"invoice_count"`
	RecentInvoices []byte  `db:"recent_invoices"`
}

type ledgerRepo struct {
	db *sqlx.DB
	id string
}

// NewLedgerRepo creates a PostgreSQL-backed LedgerStore for the ledger named id.
func NewLedgerRepo(db *sqlx.DB, id string) port.LedgerStore {
	return &ledgerRepo{db: db, id: id}
}

func decodeRow(row *ledgerRow) (*domain.SalesLedger, error) {
	ledger := domain.NewSalesLedger()
	ledger.TotalSales = row.TotalSales
	ledger.GSTCollected = row.GSTCollected
	ledger.InvoiceCount = row.InvoiceCount
	if len(row.RecentInvoices) > 0 {
		if err := json.Unmarshal(row.RecentInvoices, &ledger.RecentInvoices); err != nil {
			return nil, fmt.Errorf("decoding recent_invoices: %w", err)
		}
	}
	if ledger.RecentInvoices == nil {
		ledger.RecentInvoices = []domain.LedgerEntry{}
	}
	return ledger, nil
}

func (r *ledgerRepo) Load(ctx context.Context) (*domain.SalesLedger, error) {
	var row ledgerRow
	err := r.db.GetContext(ctx, &row,
		`SELECT total_sales, gst_collected, invoice_count, recent_invoices::text AS recent_invoices
		FROM sales_ledgers WHERE id = $1`, r.id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewSalesLedger(), nil
		}
		return nil, fmt.Errorf("ledgerRepo.Load: %w", err)
	}
	ledger, err := decodeRow(&row)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Load: %w", err)
	}
	return ledger, nil
}

// Update locks the ledger row for the duration of fn so concurrent recorders
// apply their entries one after another.
func (r *ledgerRepo) Update(ctx context.Context, fn port.LedgerUpdateFunc) (*domain.SalesLedger, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sales_ledgers (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, r.id); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update ensure: %w", err)
	}

	var row ledgerRow
	if err := tx.GetContext(ctx, &row,
		`SELECT total_sales, gst_collected, invoice_count, recent_invoices::text AS recent_invoices
		FROM sales_ledgers WHERE id = $1 FOR UPDATE`, r.id); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update lock: %w", err)
	}
	current, err := decodeRow(&row)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update: %w", err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	recent, err := json.Marshal(next.RecentInvoices)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update encode: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sales_ledgers
		SET total_sales = $2, gst_collected = $3, invoice_count = $4,
			recent_invoices = $5::jsonb, updated_at = NOW()
		WHERE id = $1`,
		r.id, next.TotalSales, next.GSTCollected, next.InvoiceCount, string(recent)); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update write: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ledgerRepo.Update commit: %w", err)
	}
	return next, nil
}

func (r *ledgerRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
