package export

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Format is one of the supported output encodings.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatPDF
)

// Formats lists every format in display order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatPDF}
}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	case FormatPDF:
		return "PDF"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension is the file extension, without the leading dot.
func (f Format) Extension() string {
	return strings.ToLower(f.String())
}

func (f Format) MIMEType() string {
	switch f {
	case FormatCSV:
		return "text/csv;charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Description is the short hint shown next to the format name.
func (f Format) Description() string {
	switch f {
	case FormatCSV:
		return "Spreadsheet-compatible"
	case FormatJSON:
		return "Machine-readable"
	case FormatPDF:
		return "Print-ready report"
	default:
		return ""
	}
}

// Filename joins a sanitized base name with the format extension.
func (f Format) Filename(base string) string {
	return base + "." + f.Extension()
}

// ParseFormat accepts csv, json or pdf in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}
