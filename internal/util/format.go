package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expensetrack/internal/report"
)

const amountDecimals = 2

var ErrNegativeAmount = errors.New("amount cannot be negative")

// FormatMoney renders an amount the way every surface shows it, e.g. $12.50.
func FormatMoney(amount float64) string {
	return "$" + report.FormatAmount(amount)
}

// ParseAmount reads a user-entered amount such as "12.5" or "$1,450.00"
// and rounds it to cents.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}

	return d.Round(amountDecimals).InexactFloat64(), nil
}
