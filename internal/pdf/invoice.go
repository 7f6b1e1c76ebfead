// Package pdf renders invoices as A4 PDF documents.
package pdf

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"egstify/internal/domain"
	"egstify/internal/gst"
)

// ContentType is the MIME type of rendered documents.
const ContentType = "application/pdf"

// Core PDF fonts are cp1252 and cannot draw the rupee sign.
const currencyPrefix = "Rs. "

type column struct {
	title string
	width float64
	align string
}

var itemColumns = []column{
	{"Item", 58, "L"},
	{"Category", 32, "L"},
	{"Qty", 12, "R"},
	{"Price", 26, "R"},
	{"GST %", 16, "R"},
	{"GST", 22, "R"},
	{"Total", 24, "R"},
}

// RenderInvoice writes inv as a single-page (or longer) A4 invoice to w.
func RenderInvoice(w io.Writer, inv *domain.Invoice) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Invoice "+inv.InvoiceNumber, true)
	doc.SetCreator("E-GSTify", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(0, 10, "Tax Invoice", "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Arial", "", 10)
	header := [][2]string{
		{"Invoice Number", inv.InvoiceNumber},
		{"Invoice Date", inv.InvoiceDate},
		{"Customer GSTIN", inv.CustomerGSTIN},
		{"Status", string(inv.Status)},
	}
	if inv.IRN != "" {
		header = append(header, [2]string{"IRN", inv.IRN})
	}
	for _, kv := range header {
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(36, 6, kv[0]+":", "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 10)
		doc.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, col := range itemColumns {
		doc.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 9)
	for i := range inv.Items {
		item := &inv.Items[i]
		values := []string{
			tr(item.Name),
			tr(string(item.Category)),
			strconv.Itoa(item.Quantity),
			gst.FormatCurrency(item.Price),
			strconv.FormatFloat(item.GSTRate, 'f', -1, 64),
			gst.FormatCurrency(item.GSTAmount),
			gst.FormatCurrency(item.TotalAmount),
		}
		for j, col := range itemColumns {
			doc.CellFormat(col.width, 6, values[j], "1", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(4)

	doc.SetFont("Arial", "B", 11)
	total, tax := inv.TotalAmount, inv.GSTAmount
	doc.CellFormat(150, 7, "GST Amount", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, currencyPrefix+gst.FormatCurrency(tax), "", 1, "R", false, 0, "")
	doc.CellFormat(150, 7, "Total Amount", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, currencyPrefix+gst.FormatCurrency(total), "", 1, "R", false, 0, "")

	if inv.QRCode != "" {
		doc.Ln(6)
		doc.SetFont("Arial", "", 8)
		doc.SetTextColor(0, 0, 200)
		doc.CellFormat(0, 5, "Verify: "+inv.QRCode, "", 1, "L", false, 0, inv.QRCode)
		doc.SetTextColor(0, 0, 0)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("rendering invoice %s: %w", inv.InvoiceNumber, err)
	}
	return nil
}

// Filename is the attachment name for a rendered invoice.
func Filename(inv *domain.Invoice) string {
	name := inv.InvoiceNumber
	if name == "" {
		name = "draft"
	}
	return fmt.Sprintf("invoice-%s.pdf", name)
}
