package util

import (
	"fmt"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/expense"
)

const monthLayout = "2006-01"

// MonthBounds returns the first and last day of a "YYYY-MM" month as ISO dates.
func MonthBounds(month string) (string, string, error) {
	firstOfMonth, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	return firstOfMonth.Format(expense.DateLayout), lastOfMonth.Format(expense.DateLayout), nil
}
