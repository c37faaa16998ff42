package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/expense"
)

// exportedAtLayout matches an ISO 8601 UTC timestamp with milliseconds.
const exportedAtLayout = "2006-01-02T15:04:05.000Z07:00"

const jsonIndent = "  "

type jsonPayload struct {
	ExportedAt   string            `json:"exportedAt"`
	TotalRecords int               `json:"totalRecords"`
	TotalAmount  float64           `json:"totalAmount"`
	Expenses     []expense.Expense `json:"expenses"`
}

// JSON encodes the records as an indented document stamped with now.
// totalAmount is summed here, independently of any displayed summary, and is
// not rounded.
func JSON(records []expense.Expense, now time.Time) ([]byte, error) {
	var total float64
	for _, r := range records {
		total += r.Amount()
	}

	expenses := records
	if expenses == nil {
		expenses = []expense.Expense{}
	}

	payload := jsonPayload{
		ExportedAt:   now.UTC().Format(exportedAtLayout),
		TotalRecords: len(records),
		TotalAmount:  total,
		Expenses:     expenses,
	}

	data, err := json.MarshalIndent(payload, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON export: %w", err)
	}

	return data, nil
}
