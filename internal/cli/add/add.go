package add

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/pflag"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

type addCommand struct {
	date        string
	category    string
	amount      string
	description string

	// prompt fills missing values interactively.
	prompt func(ctx context.Context, c *addCommand) error
}

func NewCommand() cli.Command {
	return &addCommand{prompt: runForm}
}

func (c *addCommand) Description() string {
	return "Records a new expense"
}

func (c *addCommand) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "expense date as YYYY-MM-DD (default today)")
	fs.StringVar(&c.category, "category", "", "one of Food, Transport, Housing, Entertainment, Health, Other")
	fs.StringVar(&c.amount, "amount", "", "amount spent, e.g. 12.50")
	fs.StringVar(&c.description, "description", "", "free text description")
}

func (c *addCommand) Run(ctx context.Context, app *cli.App) error {
	if c.date == "" {
		c.date = app.Now().Format(expense.DateLayout)
	}

	if c.category == "" || c.amount == "" {
		if err := c.prompt(ctx, c); err != nil {
			return fmt.Errorf("failed to read expense: %w", err)
		}
	}

	e, err := c.build()
	if err != nil {
		return err
	}

	saved := app.Session.Add(ctx, e)

	fmt.Fprintf(app.Out, "%s %s %s %s %s\n",
		util.Success("Added"),
		e.Date(),
		e.Category(),
		util.FormatMoney(e.Amount()),
		e.Description(),
	)

	if !saved {
		fmt.Fprintln(app.Out, util.Warning("The expense could not be saved and will be lost on exit"))
	}

	return nil
}

func (c *addCommand) build() (expense.Expense, error) {
	category, err := expense.ParseCategory(c.category)
	if err != nil {
		return expense.Expense{}, err
	}

	amount, err := util.ParseAmount(c.amount)
	if err != nil {
		return expense.Expense{}, err
	}

	return expense.New(c.date, category, amount, c.description)
}

func validateDate(s string) error {
	if _, err := time.Parse(expense.DateLayout, s); err != nil {
		return errors.New("use the YYYY-MM-DD format")
	}
	return nil
}

func validateAmount(s string) error {
	_, err := util.ParseAmount(s)
	return err
}

func categoryOptions() []huh.Option[string] {
	names := make([]string, 0, len(expense.AllCategories()))
	for _, category := range expense.AllCategories() {
		names = append(names, category.String())
	}
	return huh.NewOptions(names...)
}

func runForm(ctx context.Context, c *addCommand) error {
	if c.category == "" {
		c.category = expense.Food.String()
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Value(&c.date).
				Validate(validateDate),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&c.category),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&c.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Description").
				Value(&c.description),
		),
	)

	return form.RunWithContext(ctx)
}
