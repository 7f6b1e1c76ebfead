// Package invoice validates GST invoices before an IRN is requested.
package invoice

import "egstify/internal/domain"

// Check runs every applicable rule against inv and returns all results,
// passed and failed, in rule order.
func Check(inv *domain.Invoice) []ValidationResult {
	results := make([]ValidationResult, 0, len(rules))
	for _, r := range rules {
		if res, ok := r.check(inv); ok {
			results = append(results, res)
		}
	}
	return results
}

// Validate returns the failure messages for inv in rule order. An empty
// slice means the invoice is valid. All rules run; nothing short-circuits.
func Validate(inv *domain.Invoice) []string {
	errs := []string{}
	for _, res := range Check(inv) {
		if !res.Passed {
			errs = append(errs, res.Message)
		}
	}
	return errs
}
