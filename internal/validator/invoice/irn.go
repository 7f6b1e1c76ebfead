package invoice

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

var irnPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// DeriveFinancialYear returns the Indian financial year string (e.g., "2024-25")
// for a given invoice date string.
func DeriveFinancialYear(invoiceDate string) (string, error) {
	t, err := parseDate(invoiceDate)
	if err != nil {
		return "", err
	}
	year := t.Year()
	if t.Month() >= 4 { // April onwards
		return fmt.Sprintf("%d-%02d", year, (year+1)%100), nil
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100), nil
}

// ComputeIRNHash computes an IRN as SHA-256 over the concatenated parts,
// rendered as 64 lowercase hex characters.
func ComputeIRNHash(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "")))
	return fmt.Sprintf("%x", hash)
}

// IsValidIRN reports whether s looks like an issued IRN.
func IsValidIRN(s string) bool {
	return irnPattern.MatchString(strings.ToLower(s))
}
