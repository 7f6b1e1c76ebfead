package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentInvoiceLimit is the number of invoices kept in SalesLedger.RecentInvoices.
const RecentInvoiceLimit = 10

// SalesLedger is the running aggregate of recorded invoices.
type SalesLedger struct {
	TotalSales     float64       `json:"totalSales"`
	GSTCollected   float64       `json:"gstCollected"`
	InvoiceCount   int           `json:"invoiceCount"`
	RecentInvoices []LedgerEntry `json:"recentInvoices"`
}

// LedgerEntry is the summary of one recorded invoice.
type LedgerEntry struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Amount   float64         `json:"amount"`
	GST      float64         `json:"gst"`
	Products []LedgerProduct `json:"products"`
}

// LedgerProduct is a product line inside a LedgerEntry.
type LedgerProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	GSTRate  float64 `json:"gstRate"`
}

// NewSalesLedger returns the zero-initialized aggregate.
func NewSalesLedger() *SalesLedger {
	return &SalesLedger{RecentInvoices: []LedgerEntry{}}
}

// NewLedgerEntry summarizes an invoice for the ledger.
func NewLedgerEntry(inv *Invoice, recordedAt time.Time) LedgerEntry {
	products := make([]LedgerProduct, 0, len(inv.Items))
	for i := range inv.Items {
		item := &inv.Items[i]
		products = append(products, LedgerProduct{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			GSTRate:  item.GSTRate,
		})
	}
	return LedgerEntry{
		ID:       inv.InvoiceNumber,
		Date:     recordedAt.UTC().Format(time.RFC3339Nano),
		Amount:   inv.TotalAmount,
		GST:      inv.GSTAmount,
		Products: products,
	}
}

// Clone returns a deep copy of the ledger.
func (l *SalesLedger) Clone() *SalesLedger {
	out := &SalesLedger{
		TotalSales:     l.TotalSales,
		GSTCollected:   l.GSTCollected,
		InvoiceCount:   l.InvoiceCount,
		RecentInvoices: make([]LedgerEntry, len(l.RecentInvoices)),
	}
	for i, e := range l.RecentInvoices {
		e.Products = append([]LedgerProduct(nil), e.Products...)
		out.RecentInvoices[i] = e
	}
	return out
}

// Apply returns a new ledger with entry recorded: totals incremented, count
// bumped and the entry prepended, keeping only the newest RecentInvoiceLimit.
// The receiver is not modified.
func (l *SalesLedger) Apply(entry LedgerEntry) *SalesLedger {
	next := l.Clone()
	next.TotalSales = decimal.NewFromFloat(l.TotalSales).Add(decimal.NewFromFloat(entry.Amount)).InexactFloat64()
	next.GSTCollected = decimal.NewFromFloat(l.GSTCollected).Add(decimal.NewFromFloat(entry.GST)).InexactFloat64()
	next.InvoiceCount = l.InvoiceCount + 1

	recent := make([]LedgerEntry, 0, RecentInvoiceLimit)
	recent = append(recent, entry)
	recent = append(recent, next.RecentInvoices...)
	if len(recent) > RecentInvoiceLimit {
		recent = recent[:RecentInvoiceLimit]
	}
	next.RecentInvoices = recent
	return next
}
