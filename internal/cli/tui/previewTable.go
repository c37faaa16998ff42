package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

const (
	previewHeight   = 8
	dateColumnWidth = 12
	catColumnWidth  = 15
	amtColumnWidth  = 12
	minDescWidth    = 20
)

type previewTable struct {
	table table.Model
}

func newPreviewTable(records []expense.Expense, width int) previewTable {
	t := table.New(
		table.WithColumns(createPreviewColumns(width)),
		table.WithRows(previewRows(records)),
		table.WithHeight(previewHeight),
	)

	return previewTable{
		table: t,
	}
}

func previewRows(records []expense.Expense) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.Date(),
			r.Category().String(),
			util.FormatMoney(r.Amount()),
			r.Description(),
		})
	}
	return rows
}

func (p previewTable) SetRecords(records []expense.Expense) previewTable {
	t := p.table
	t.SetRows(previewRows(records))
	t.GotoTop()

	return previewTable{
		table: t,
	}
}

func (p previewTable) Update(msg tea.Msg) (previewTable, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p previewTable) UpdateDimensions(width int) previewTable {
	t := p.table
	t.SetColumns(createPreviewColumns(width))
	t.SetWidth(width)

	return previewTable{
		table: t,
	}
}

func (p previewTable) Len() int {
	return len(p.table.Rows())
}

func (p previewTable) View() string {
	return p.table.View()
}

func createPreviewColumns(width int) []table.Column {
	desc := width - dateColumnWidth - catColumnWidth - amtColumnWidth
	if desc < minDescWidth {
		desc = minDescWidth
	}

	return []table.Column{
		{Title: "Date", Width: dateColumnWidth},
		{Title: "Category", Width: catColumnWidth},
		{Title: "Amount", Width: amtColumnWidth},
		{Title: "Description", Width: desc},
	}
}
