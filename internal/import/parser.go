package importutil

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParsedData represents the raw rows extracted from a file, keyed by the
// lower-cased column name.
type ParsedData struct {
	Rows   []map[string]string
	Format string
}

var requiredColumns = []string{"date", "amount"}

// parseCSV reads a file with a header row naming its columns. Column order
// does not matter; date and amount are required.
func parseCSV(reader io.Reader) (*ParsedData, error) {
	r := csv.NewReader(reader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, required := range requiredColumns {
		if !contains(headers, required) {
			return nil, fmt.Errorf("CSV header is missing the %s column", required)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return &ParsedData{Rows: rows, Format: "csv"}, nil
}

type jsonRecord struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// parseJSON accepts either an exported document, whose records live under
// "expenses", or a bare array of records.
func parseJSON(reader io.Reader) (*ParsedData, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading JSON: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("JSON file is empty")
	}

	var records []jsonRecord
	if data[0] == '[' {
		err = json.Unmarshal(data, &records)
	} else {
		var doc struct {
			Expenses []jsonRecord `json:"expenses"`
		}
		err = json.Unmarshal(data, &doc)
		records = doc.Expenses
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]string{
			"id":          r.ID,
			"date":        r.Date,
			"category":    r.Category,
			"amount":      strconv.FormatFloat(r.Amount, 'f', -1, 64),
			"description": r.Description,
		})
	}

	return &ParsedData{Rows: rows, Format: "json"}, nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
