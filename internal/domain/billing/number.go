package billing

import (
	"fmt"
	"time"
)

// FiscalYear returns the Indian fiscal-year label for a date, e.g.
// "2025-26" for any date from 2025-04-01 through 2026-03-31.
func FiscalYear(date time.Time) string {
	start := date.Year()
	if date.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// FormatDocumentNumber builds a document number in the house scheme,
// e.g. "INV/GDC/2025-26/0042".
func FormatDocumentNumber(prefix, companyCode string, date time.Time, sequence int) string {
	return fmt.Sprintf("%s/%s/%s/%04d", prefix, companyCode, FiscalYear(date), sequence)
}
