package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CompanySortFields contains allowed sort fields for companies
var CompanySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// BranchSortFields contains allowed sort fields for branches
var BranchSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"first_name": true,
	"last_name":  true,
	"phone":      true,
	"city":       true,
}

// SchemeSortFields contains allowed sort fields for schemes
var SchemeSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"interest_rate":   true,
	"interest_period": true,
}

// LoanSortFields contains allowed sort fields for issued loans
var LoanSortFields = map[string]bool{
	"id":                    true,
	"created_at":            true,
	"updated_at":            true,
	"loan_number":           true,
	"loan_amount":           true,
	"issue_date":            true,
	"next_installment_date": true,
	"status":                true,
}

// OtherLoanSortFields contains allowed sort fields for third-party loans
var OtherLoanSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"other_number": true,
	"lender_name":  true,
	"amount":       true,
	"issue_date":   true,
	"renewal_date": true,
	"status":       true,
}

// EntrySortFields contains allowed sort fields for day-book entries
// (expenses, incomes, charges, payments, transfers).
var EntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"amount":     true,
	"date":       true,
}
