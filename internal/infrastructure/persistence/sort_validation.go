package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Defaults to DESC for invalid or empty input.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist of column
// names. Sort input reaches the ORDER BY clause verbatim, so anything not
// whitelisted falls back to defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// DocumentSortFields contains the allowed sort columns for invoice and
// quotation lists.
var DocumentSortFields = map[string]bool{
	"number":     true,
	"issue_date": true,
	"status":     true,
	"total":      true,
	"created_at": true,
	"updated_at": true,
}

// CompanySortFields contains the allowed sort columns for company lists.
var CompanySortFields = map[string]bool{
	"code":       true,
	"name":       true,
	"created_at": true,
	"updated_at": true,
}
