package report

import (
	"sort"
	"strconv"

	"github.com/GustavoCaso/expensetrack/internal/expense"
)

const decimalPlaces = 2

// Summary holds the derived statistics of a set of records.
// TotalAmount keeps full precision; round only when presenting it.
type Summary struct {
	MatchedCount int
	TotalAmount  float64
}

// Summarize counts the records and sums their amounts in input order.
func Summarize(records []expense.Expense) Summary {
	var s Summary
	for _, r := range records {
		s.MatchedCount++
		s.TotalAmount += r.Amount()
	}
	return s
}

// FormatTotal renders the total with exactly two decimals.
func (s Summary) FormatTotal() string {
	return FormatAmount(s.TotalAmount)
}

// FormatAmount renders an amount with exactly two decimals, e.g. 12.50.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', decimalPlaces, 64)
}

// CategoryTotal is the spending of one category.
type CategoryTotal struct {
	Category          expense.Category
	Count             int
	Amount            float64
	PercentageOfTotal float64
}

const percentageOfTotal = 100

// ByCategory groups the records per category, biggest spending first.
// Categories without records are omitted.
func ByCategory(records []expense.Expense) []CategoryTotal {
	totals := map[expense.Category]*CategoryTotal{}
	var grand float64

	for _, r := range records {
		ct, ok := totals[r.Category()]
		if !ok {
			ct = &CategoryTotal{Category: r.Category()}
			totals[r.Category()] = ct
		}
		ct.Count++
		ct.Amount += r.Amount()
		grand += r.Amount()
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, c := range expense.AllCategories() {
		ct, ok := totals[c]
		if !ok {
			continue
		}
		if grand > 0 {
			ct.PercentageOfTotal = ct.Amount / grand * percentageOfTotal
		}
		out = append(out, *ct)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})

	return out
}
