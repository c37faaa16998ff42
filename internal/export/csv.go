package export

import (
	"strings"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/report"
)

const (
	csvHeader    = "Date,Category,Amount,Description"
	csvSeparator = ","
	csvNewline   = "\n"
)

// CSV encodes the records as delimited text.
// format: Date,Category,Amount,Description
// Lines are joined with "\n" and the output has no trailing newline.
func CSV(records []expense.Expense) []byte {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, csvHeader)

	for _, r := range records {
		lines = append(lines, expenseToCSVRecord(r))
	}

	return []byte(strings.Join(lines, csvNewline))
}

func expenseToCSVRecord(e expense.Expense) string {
	fields := []string{
		e.Date(),
		e.Category().String(),
		report.FormatAmount(e.Amount()),
		e.Description(),
	}

	for i, f := range fields {
		fields[i] = escapeField(f)
	}

	return strings.Join(fields, csvSeparator)
}

// escapeField quotes fields holding a separator, a quote or a line break and
// doubles the inner quotes. Everything else is written verbatim.
func escapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
