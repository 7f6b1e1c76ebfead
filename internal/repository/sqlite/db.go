// Package sqlite persists the sales ledger in a local SQLite file.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS sales_ledgers (
	id              TEXT PRIMARY KEY,
	total_sales     REAL    NOT NULL DEFAULT 0,
	gst_collected   REAL    NOT NULL DEFAULT 0,
	invoice_count   INTEGER NOT NULL DEFAULT 0,
	recent_invoices TEXT    NOT NULL DEFAULT '[]',
	updated_at      TEXT    NOT NULL
)`

// NewDB opens the SQLite database at path and ensures the ledger table exists.
// The pool is capped at one connection so writers are serialized.
func NewDB(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return db, nil
}
