package importutil

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/GustavoCaso/expensetrack/internal/category"
	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

// ImportInfo describes the outcome of reading an import file.
type ImportInfo struct {
	Expenses []expense.Expense
	// Descriptions of the rows whose category was guessed from the description.
	Guessed []string
	// Rows that could not be turned into an expense, one error per row.
	Errors []error
}

// Import reads expenses from a CSV or JSON file previously produced by an
// export, or written by hand in the same layout. Rows without a category are
// assigned one by the matcher. A row carrying an id keeps it.
func Import(filename string, reader io.Reader, matcher *category.Matcher) (*ImportInfo, error) {
	data, err := ParseFile(filename, reader)
	if err != nil {
		return nil, err
	}

	info := &ImportInfo{}
	for i, row := range data.Rows {
		e, guessed, rowErr := buildExpense(row, matcher)
		if rowErr != nil {
			info.Errors = append(info.Errors, fmt.Errorf("record %d: %w", i+1, rowErr))
			continue
		}

		if guessed {
			info.Guessed = append(info.Guessed, e.Description())
		}
		info.Expenses = append(info.Expenses, e)
	}

	return info, nil
}

// ParseFile picks the reader from the file extension.
func ParseFile(filename string, reader io.Reader) (*ParsedData, error) {
	fileFormat := strings.ToLower(path.Ext(filename))

	switch fileFormat {
	case ".csv":
		return parseCSV(reader)
	case ".json":
		return parseJSON(reader)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", fileFormat)
	}
}

func buildExpense(row map[string]string, matcher *category.Matcher) (expense.Expense, bool, error) {
	description := row["description"]

	amount, err := util.ParseAmount(row["amount"])
	if err != nil {
		return expense.Expense{}, false, err
	}

	var (
		c       expense.Category
		guessed bool
	)
	if name := strings.TrimSpace(row["category"]); name != "" {
		c, err = expense.ParseCategory(name)
		if err != nil {
			return expense.Expense{}, false, err
		}
	} else {
		c, _ = matcher.Match(description)
		guessed = true
	}

	date := strings.TrimSpace(row["date"])

	e, err := expense.New(date, c, amount, description)
	if err != nil {
		return expense.Expense{}, false, err
	}

	if id := strings.TrimSpace(row["id"]); id != "" {
		e = expense.Restore(id, date, c, amount, description)
	}

	return e, guessed, nil
}
