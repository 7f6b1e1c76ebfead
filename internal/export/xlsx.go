package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"egstify/internal/domain"
)

const (
	summarySheet  = "Summary"
	invoicesSheet = "Invoices"
	productsSheet = "Products"
)

// WriteXLSX writes a workbook with a summary sheet, one row per recent invoice
// and one row per product line.
func WriteXLSX(w io.Writer, ledger *domain.SalesLedger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Total Sales", ledger.TotalSales},
		{"GST Collected", ledger.GSTCollected},
		{"Invoice Count", ledger.InvoiceCount},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(invoicesSheet); err != nil {
		return fmt.Errorf("creating invoices sheet: %w", err)
	}
	rows := make([][]interface{}, 0, len(ledger.RecentInvoices)+1)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	rows = append(rows, header)
	for i := range ledger.RecentInvoices {
		e := &ledger.RecentInvoices[i]
		rows = append(rows, []interface{}{e.ID, e.Date, e.Amount, e.GST, len(e.Products), describeProducts(e.Products)})
	}
	if err := writeRows(f, invoicesSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(productsSheet); err != nil {
		return fmt.Errorf("creating products sheet: %w", err)
	}
	products := [][]interface{}{{"Invoice ID", "Name", "Quantity", "Price", "GST Rate"}}
	for _, e := range ledger.RecentInvoices {
		for _, p := range e.Products {
			products = append(products, []interface{}{e.ID, p.Name, p.Quantity, p.Price, p.GSTRate})
		}
	}
	if err := writeRows(f, productsSheet, products); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
