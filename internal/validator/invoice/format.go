package invoice

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// IsValidGSTIN reports whether s has the 15-character GSTIN structure:
// 2 digits, 5 letters, 4 digits, 1 letter, 1 alphanumeric (not 0), 'Z', 1 alphanumeric.
func IsValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// parseDate tries common date formats.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"02-01-2006",
		"2006/01/02",
		"02 Jan 2006",
		"2 Jan 2006",
		"Jan 02, 2006",
		"January 02, 2006",
		"2006-01-02T15:04:05Z07:00",
		time.RFC3339Nano,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %s", s)
}
