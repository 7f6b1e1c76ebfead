package domain

import (
	"time"
)

// Product is a product row entered by the seller before GST is applied.
type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
}

// LineItem is a product row with its derived GST figures.
// Amounts are kept at full precision; round only for display.
type LineItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Amount      float64  `json:"amount"`
	GSTRate     float64  `json:"gstRate"`
	GSTAmount   float64  `json:"gstAmount"`
	TotalAmount float64  `json:"totalAmount"`
}

// Invoice is a GST invoice. InvoiceNumber is its identifier and never changes
// once assigned.
type Invoice struct {
	InvoiceNumber        string               `json:"invoiceNumber"`
	InvoiceDate          string               `json:"invoiceDate"`
	CreatedAt            time.Time            `json:"createdAt"`
	CustomerGSTIN        string               `json:"customerGSTIN"`
	Items                []LineItem           `json:"items"`
	TotalAmount          float64              `json:"totalAmount"`
	GSTAmount            float64              `json:"gstAmount"`
	Status               InvoiceStatus        `json:"status"`
	ReconciliationStatus ReconciliationStatus `json:"reconciliationStatus"`
	IRN                  string               `json:"irn,omitempty"`
	QRCode               string               `json:"qrCode,omitempty"`
	ValidationErrors     []string             `json:"validationErrors"`
}

// MarkProcessed moves a pending invoice to processed and attaches its IRN.
func (inv *Invoice) MarkProcessed(irn, qrCode string) error {
	if inv.Status != InvoiceStatusPending {
		return ErrInvalidStatusTransition
	}
	inv.Status = InvoiceStatusProcessed
	inv.IRN = irn
	inv.QRCode = qrCode
	return nil
}

// MarkError moves a pending invoice to error.
func (inv *Invoice) MarkError(validationErrors []string) error {
	if inv.Status != InvoiceStatusPending {
		return ErrInvalidStatusTransition
	}
	inv.Status = InvoiceStatusError
	if validationErrors != nil {
		inv.ValidationErrors = validationErrors
	}
	return nil
}

// MarkReconciled records a successful match against filed returns.
// Only processed invoices can be reconciled.
func (inv *Invoice) MarkReconciled() error {
	if inv.Status != InvoiceStatusProcessed || inv.ReconciliationStatus != ReconciliationStatusPending {
		return ErrInvalidStatusTransition
	}
	inv.ReconciliationStatus = ReconciliationStatusReconciled
	return nil
}

// IRNResult is what the registration authority returns for an accepted invoice.
type IRNResult struct {
	IRN    string `json:"irn"`
	QRCode string `json:"qrCode"`
}

// VerificationResult is the outcome of verifying an invoice number.
type VerificationResult struct {
	Status  VerificationStatus `json:"status"`
	Message string             `json:"message"`
	Invoice *Invoice           `json:"invoice,omitempty"`
}

// NewsArticle is a GST-related news summary.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// TaxDocument is a static reference document link.
type TaxDocument struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}
