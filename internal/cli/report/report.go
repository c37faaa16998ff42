package report

import (
	"context"
	"embed"
	"fmt"
	"io"
	"path"
	"text/template"

	"github.com/spf13/pflag"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/filter"
	internalReport "github.com/GustavoCaso/expensetrack/internal/report"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

type reportCommand struct {
	month      string
	from       string
	to         string
	categories []string
}

func NewCommand() cli.Command {
	return &reportCommand{}
}

func (c *reportCommand) Description() string {
	return "Displays spending per category for a date range"
}

func (c *reportCommand) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.month, "month", "", "month to report on, YYYY-MM (overrides --from and --to)")
	fs.StringVar(&c.from, "from", "", "first day to include, YYYY-MM-DD")
	fs.StringVar(&c.to, "to", "", "last day to include, YYYY-MM-DD")
	fs.StringSliceVar(&c.categories, "category", []string{"all"}, "categories to include, repeatable or comma separated")
}

type reportData struct {
	Title      string
	Categories []internalReport.CategoryTotal
	Summary    internalReport.Summary
}

func title(from, to string) string {
	switch {
	case from == "" && to == "":
		return "All expenses"
	case from == "":
		return "Expenses until " + to
	case to == "":
		return "Expenses since " + from
	default:
		return fmt.Sprintf("Expenses from %s to %s", from, to)
	}
}

func (c *reportCommand) Run(_ context.Context, app *cli.App) error {
	from, to := c.from, c.to
	if c.month != "" {
		var err error
		from, to, err = util.MonthBounds(c.month)
		if err != nil {
			return err
		}
	}

	f, err := filter.Parse(from, to, c.categories)
	if err != nil {
		return err
	}

	records := filter.Apply(app.Session.Records(), f)
	if len(records) == 0 {
		fmt.Fprintln(app.Out, util.Warning("No expenses match the current filters"))
		return nil
	}

	return renderTemplate(app.Out, "report.tmpl", reportData{
		Title:      title(from, to),
		Categories: internalReport.ByCategory(records),
		Summary:    internalReport.Summarize(records),
	})
}

var templateFuncs = template.FuncMap{
	"formatMoney": util.FormatMoney,
	"colorOutput": util.ColorOutput,
}

func renderTemplate(out io.Writer, templateName string, value any) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}

	t, err := template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	return t.Execute(out, value)
}
