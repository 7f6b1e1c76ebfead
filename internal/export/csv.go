// Package export writes the sales ledger as CSV or XLSX for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"egstify/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to read UTF-8 CSV.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Format is a supported export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns is the header row shared by the CSV and the XLSX invoice sheet.
var columns = []string{
	"Invoice ID",
	"Date",
	"Amount",
	"GST",
	"Product Count",
	"Products",
}

// Write renders ledger in format f to w.
func Write(w io.Writer, f Format, ledger *domain.SalesLedger) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, ledger)
	case FormatXLSX:
		return WriteXLSX(w, ledger)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, f)
	}
}

// WriteCSV writes a BOM, the header row and one row per recent invoice.
func WriteCSV(w io.Writer, ledger *domain.SalesLedger) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range ledger.RecentInvoices {
		if err := cw.Write(entryToRow(&ledger.RecentInvoices[i])); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func entryToRow(e *domain.LedgerEntry) []string {
	return []string{
		e.ID,
		e.Date,
		formatMoney(e.Amount),
		formatMoney(e.GST),
		strconv.Itoa(len(e.Products)),
		describeProducts(e.Products),
	}
}

// describeProducts renders "Name xQty @ Price (Rate%)" joined with "; ".
func describeProducts(products []domain.LedgerProduct) string {
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, fmt.Sprintf("%s x%d @ %s (%s%%)",
			p.Name, p.Quantity, formatMoney(p.Price), strconv.FormatFloat(p.GSTRate, 'f', -1, 64)))
	}
	return strings.Join(parts, "; ")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// BuildFilename returns the attachment name for a ledger export taken at now.
// Format: sales_ledger_{YYYY-MM-DD}.{ext}
func BuildFilename(f Format, now time.Time) string {
	return fmt.Sprintf("sales_ledger_%s.%s", now.Format("2006-01-02"), f)
}
