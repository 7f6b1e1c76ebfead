package invoice

import (
	"strings"

	"egstify/internal/domain"
)

// ValidationResult is the outcome of one rule applied to one field.
type ValidationResult struct {
	RuleKey   string
	Passed    bool
	FieldPath string
	Message   string
}

// rule checks one aspect of an invoice. A rule may produce no result when it
// does not apply (e.g. a format check on an empty field).
type rule struct {
	ruleKey   string
	fieldPath string
	validate  func(*domain.Invoice) (passed, applies bool)
	message   string
}

func (r *rule) check(inv *domain.Invoice) (ValidationResult, bool) {
	passed, applies := r.validate(inv)
	if !applies {
		return ValidationResult{}, false
	}
	return ValidationResult{RuleKey: r.ruleKey, Passed: passed, FieldPath: r.fieldPath, Message: r.message}, true
}

func present(s string) bool { return strings.TrimSpace(s) != "" }

// rules run in this order; the order is the order of the messages returned.
var rules = []*rule{
	{
		ruleKey: "req.invoice_number", fieldPath: "invoiceNumber",
		message: "Invoice number is required",
		validate: func(d *domain.Invoice) (bool, bool) {
			return present(d.InvoiceNumber), true
		},
	},
	{
		ruleKey: "req.invoice_date", fieldPath: "invoiceDate",
		message: "Invoice date is required",
		validate: func(d *domain.Invoice) (bool, bool) {
			return present(d.InvoiceDate), true
		},
	},
	{
		ruleKey: "fmt.invoice_date", fieldPath: "invoiceDate",
		message: "Invoice date is not a valid date",
		validate: func(d *domain.Invoice) (bool, bool) {
			if !present(d.InvoiceDate) {
				return true, false
			}
			_, err := parseDate(d.InvoiceDate)
			return err == nil, true
		},
	},
	{
		ruleKey: "req.customer_gstin", fieldPath: "customerGSTIN",
		message: "Customer GSTIN is required",
		validate: func(d *domain.Invoice) (bool, bool) {
			return present(d.CustomerGSTIN), true
		},
	},
	{
		ruleKey: "fmt.customer_gstin", fieldPath: "customerGSTIN",
		message: "Invalid GSTIN format",
		validate: func(d *domain.Invoice) (bool, bool) {
			if !present(d.CustomerGSTIN) {
				return true, false
			}
			return IsValidGSTIN(d.CustomerGSTIN), true
		},
	},
	{
		ruleKey: "req.total_amount", fieldPath: "totalAmount",
		message: "Total amount is required",
		validate: func(d *domain.Invoice) (bool, bool) {
			return d.TotalAmount != 0, true
		},
	},
	{
		ruleKey: "req.items", fieldPath: "items",
		message: "At least one item is required",
		validate: func(d *domain.Invoice) (bool, bool) {
			return len(d.Items) > 0, true
		},
	},
}
