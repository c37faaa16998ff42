package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/report"
)

// Page geometry in millimetres on a landscape A4 page.
const (
	marginX         = 14.0
	titleY          = 18.0
	metadataY       = 26.0
	tableTop        = 36.0
	rowHeight       = 8.0
	bandOffset      = 6.0
	baselineLift    = 0.5
	tableWidth      = 265.0
	pageBoundary    = 185.0
	continuationTop = 20.0
	ruleEndX        = 279.0
	footerRuleGap   = 2.0
	footerTextGap   = 8.0

	descriptionLimit = 45

	fontFamily       = "Helvetica"
	titleFontSize    = 18
	metadataFontSize = 9
	headerFontSize   = 10
	bodyFontSize     = 9
)

// Column offsets for Date, Category, Amount and Description.
var columnX = [4]float64{14, 60, 110, 155}

var tableHeaders = [4]string{"Date", "Category", "Amount", "Description"}

type rgb struct{ r, g, b int }

var (
	black      = rgb{0, 0, 0}
	white      = rgb{255, 255, 255}
	mutedGrey  = rgb{100, 100, 100}
	ruleGrey   = rgb{200, 200, 200}
	headerBand = rgb{30, 30, 60}
	rowTint    = rgb{245, 245, 252}
)

// exportedAtLocaleLayout renders the export time like an en-US locale string.
const exportedAtLocaleLayout = "1/2/2006, 3:04:05 PM"

// canvas is the subset of drawing primitives the report layout needs.
type canvas interface {
	AddPage()
	SetFont(family, style string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	Text(x, y float64, txt string)
	Rect(x, y, w, h float64, style string)
	Line(x1, y1, x2, y2 float64)
}

// fpdfCanvas translates UTF-8 text to the code page of the core fonts.
type fpdfCanvas struct {
	*fpdf.Fpdf
	translate func(string) string
}

func (c fpdfCanvas) Text(x, y float64, txt string) {
	c.Fpdf.Text(x, y, c.translate(txt))
}

// PDF renders the records as a landscape, paginated report.
func PDF(records []expense.Expense, now time.Time) ([]byte, error) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetCreationDate(now)
	doc.SetTitle("Expense Report", true)

	drawReport(fpdfCanvas{Fpdf: doc, translate: doc.UnicodeTranslatorFromDescriptor("")}, records, now)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF export: %w", err)
	}

	return buf.Bytes(), nil
}

func drawReport(c canvas, records []expense.Expense, now time.Time) {
	total := report.Summarize(records).FormatTotal()

	c.AddPage()

	c.SetFont(fontFamily, "B", titleFontSize)
	c.Text(marginX, titleY, "Expense Report")

	c.SetFont(fontFamily, "", metadataFontSize)
	setTextColor(c, mutedGrey)
	c.Text(marginX, metadataY, fmt.Sprintf("Exported: %s   |   Records: %d   |   Total: $%s",
		now.Format(exportedAtLocaleLayout), len(records), total))
	setTextColor(c, black)

	y := tableTop

	setFillColor(c, headerBand)
	c.Rect(marginX, y-bandOffset, tableWidth, rowHeight, "F")
	c.SetFont(fontFamily, "B", headerFontSize)
	setTextColor(c, white)
	for i, h := range tableHeaders {
		c.Text(columnX[i], y-baselineLift, h)
	}
	setTextColor(c, black)
	y += rowHeight

	c.SetFont(fontFamily, "", bodyFontSize)
	for idx, r := range records {
		if idx%2 == 0 {
			setFillColor(c, rowTint)
			c.Rect(marginX, y-bandOffset, tableWidth, rowHeight, "F")
		}

		c.Text(columnX[0], y-baselineLift, r.Date())
		c.Text(columnX[1], y-baselineLift, r.Category().String())
		c.Text(columnX[2], y-baselineLift, "$"+report.FormatAmount(r.Amount()))
		c.Text(columnX[3], y-baselineLift, truncate(r.Description(), descriptionLimit))
		y += rowHeight

		// Column headers are not repeated on continuation pages.
		if y > pageBoundary {
			c.AddPage()
			y = continuationTop
		}
	}

	setDrawColor(c, ruleGrey)
	c.Line(marginX, y+footerRuleGap, ruleEndX, y+footerRuleGap)
	c.SetFont(fontFamily, "", metadataFontSize)
	setTextColor(c, mutedGrey)
	c.Text(columnX[2], y+footerTextGap, "Total: $"+total)
}

// truncate keeps at most limit runes of s.
func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

func setTextColor(c canvas, col rgb) {
	c.SetTextColor(col.r, col.g, col.b)
}

func setFillColor(c canvas, col rgb) {
	c.SetFillColor(col.r, col.g, col.b)
}

func setDrawColor(c canvas, col rgb) {
	c.SetDrawColor(col.r, col.g, col.b)
}
