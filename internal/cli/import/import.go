package importcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/GustavoCaso/expensetrack/internal/category"
	"github.com/GustavoCaso/expensetrack/internal/cli"
	importUtil "github.com/GustavoCaso/expensetrack/internal/import"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

type importCommand struct {
	file string
}

func NewCommand() cli.Command {
	return &importCommand{}
}

func (c *importCommand) Description() string {
	return "Imports expenses from a CSV or JSON export"
}

func (c *importCommand) SetFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.file, "file", "f", "", "file to import")
}

func (c *importCommand) Run(ctx context.Context, app *cli.App) error {
	if c.file == "" {
		return errors.New("you must provide a file to import")
	}

	matcher, err := category.NewMatcher(app.Config.Categories)
	if err != nil {
		return fmt.Errorf("invalid category rules: %w", err)
	}

	file, err := os.Open(c.file)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := importUtil.Import(c.file, file, matcher)
	if err != nil {
		return fmt.Errorf("unable to import expenses due to error: %w", err)
	}

	added, err := app.Session.Import(ctx, info.Expenses)
	if err != nil {
		return err
	}

	if added > 0 {
		fmt.Fprintf(app.Out, "%s %d\n", util.Success("Total expenses imported:"), added)
	} else {
		fmt.Fprintln(app.Out, "No expenses were imported")
	}

	if skipped := len(info.Expenses) - added; skipped > 0 {
		fmt.Fprintf(app.Out, "Skipped %d expenses already recorded\n", skipped)
	}

	for _, description := range info.Guessed {
		fmt.Fprintf(app.Out, "%s %q\n", util.Warning("Category guessed for"), description)
	}

	for _, rowErr := range info.Errors {
		fmt.Fprintf(app.Out, "%s %s\n", util.Failure("Skipped"), rowErr)
	}

	return nil
}
