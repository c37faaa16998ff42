package filter

import (
	"strings"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/expense"
)

// Filter holds the export selection criteria.
// Date bounds are pointers to distinguish "not set" from an empty string.
type Filter struct {
	StartDate  *string             // Start date (inclusive), ISO YYYY-MM-DD
	EndDate    *string             // End date (inclusive), ISO YYYY-MM-DD
	Categories expense.CategorySet // Empty set matches nothing
}

// Default returns the initial selection: no start bound, today as end bound
// and every category selected.
func Default(now time.Time) Filter {
	today := now.Format(expense.DateLayout)
	return Filter{
		EndDate:    &today,
		Categories: expense.FullCategorySet(),
	}
}

// Matches reports whether a single record satisfies f.
// Dates are compared as strings, which orders ISO dates correctly.
func (f Filter) Matches(e expense.Expense) bool {
	if f.StartDate != nil && e.Date() < *f.StartDate {
		return false
	}
	if f.EndDate != nil && e.Date() > *f.EndDate {
		return false
	}
	return f.Categories.Has(e.Category())
}

// Apply returns the records matching f in input order.
func Apply(records []expense.Expense, f Filter) []expense.Expense {
	matched := make([]expense.Expense, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// DefaultFilename is the initial export base name for the given day.
func DefaultFilename(now time.Time) string {
	return "expenses-" + now.Format(expense.DateLayout)
}

// SanitizeFilename replaces every rune outside [A-Za-z0-9_-] with '-'.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
