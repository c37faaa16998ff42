package list

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/filter"
	"github.com/GustavoCaso/expensetrack/internal/report"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const amountColumn = 2

type listCommand struct {
	from       string
	to         string
	categories []string
	keyword    string
}

func NewCommand() cli.Command {
	return &listCommand{}
}

func (c *listCommand) Description() string {
	return "Lists recorded expenses"
}

func (c *listCommand) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.from, "from", "", "first day to include, YYYY-MM-DD")
	fs.StringVar(&c.to, "to", "", "last day to include, YYYY-MM-DD")
	fs.StringSliceVar(&c.categories, "category", []string{"all"}, "categories to include, repeatable or comma separated")
	fs.StringVarP(&c.keyword, "search", "s", "", "only show expenses whose description contains this text")
}

func (c *listCommand) Run(_ context.Context, app *cli.App) error {
	f, err := filter.Parse(c.from, c.to, c.categories)
	if err != nil {
		return err
	}

	records := search(filter.Apply(app.Session.Records(), f), c.keyword)
	summary := report.Summarize(records)

	if len(records) == 0 {
		fmt.Fprintln(app.Out, util.Warning("No expenses match the current filters"))
		return nil
	}

	fmt.Fprintln(app.Out, expensesTable(records).Render())
	fmt.Fprintf(app.Out, "%d expenses, total %s\n", summary.MatchedCount, util.FormatMoney(summary.TotalAmount))

	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func styleRow(row, col int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return headerStyle
	case col == amountColumn:
		return amountStyle
	default:
		return cellStyle
	}
}

func expensesTable(records []expense.Expense) *table.Table {
	t := newTable("Date", "Category", "Amount", "Description").StyleFunc(styleRow)
	for _, r := range records {
		t.Row(r.Date(), r.Category().String(), util.FormatMoney(r.Amount()), r.Description())
	}
	return t
}

// search keeps the records whose description contains keyword, ignoring case.
func search(records []expense.Expense, keyword string) []expense.Expense {
	if keyword == "" {
		return records
	}

	keyword = strings.ToLower(keyword)
	matched := make([]expense.Expense, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Description()), keyword) {
			matched = append(matched, r)
		}
	}
	return matched
}
