package pdf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egstify/internal/domain"
	"egstify/internal/pdf"
)

func TestRenderInvoice(t *testing.T) {
	inv := &domain.Invoice{
		InvoiceNumber: "INV-1001",
		InvoiceDate:   "2024-03-01",
		CustomerGSTIN: "29AAAAA0000A1Z5",
		Status:        domain.InvoiceStatusProcessed,
		IRN:           "abc",
		QRCode:        "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=INV-1001",
		TotalAmount:   1180,
		GSTAmount:     180,
		Items: []domain.LineItem{
			{Name: "Café table", Category: domain.CategoryFurniture, Quantity: 1, Price: 1000, GSTRate: 18, GSTAmount: 180, TotalAmount: 1180},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.RenderInvoice(&buf, inv))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderInvoice_NoItems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pdf.RenderInvoice(&buf, &domain.Invoice{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV-1.pdf", pdf.Filename(&domain.Invoice{InvoiceNumber: "INV-1"}))
	assert.Equal(t, "invoice-draft.pdf", pdf.Filename(&domain.Invoice{}))
}
