package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/expense"
)

const allCategories = "all"

// parseDate validates an ISO date. An empty string means "not set".
func parseDate(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if _, err := time.Parse(expense.DateLayout, s); err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	return &s, nil
}

// parseCategories accepts category names, comma separated values and the
// "all" keyword. No values selects nothing.
func parseCategories(values []string) (expense.CategorySet, error) {
	set := expense.NewCategorySet()

	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			if strings.EqualFold(name, allCategories) {
				return expense.FullCategorySet(), nil
			}

			c, err := expense.ParseCategory(name)
			if err != nil {
				return nil, err
			}
			set[c] = struct{}{}
		}
	}

	return set, nil
}

// Parse builds a Filter from raw command line values.
func Parse(from, to string, categories []string) (Filter, error) {
	var f Filter

	start, err := parseDate(from)
	if err != nil {
		return Filter{}, fmt.Errorf("invalid from: %w", err)
	}
	f.StartDate = start

	end, err := parseDate(to)
	if err != nil {
		return Filter{}, fmt.Errorf("invalid to: %w", err)
	}
	f.EndDate = end

	set, err := parseCategories(categories)
	if err != nil {
		return Filter{}, fmt.Errorf("invalid category: %w", err)
	}
	f.Categories = set

	return f, nil
}
