package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/pflag"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

type tuiCommand struct {
	out string
}

func NewCommand() cli.Command {
	return &tuiCommand{}
}

func (c *tuiCommand) Description() string {
	return "Interactive export of the recorded expenses"
}

func (c *tuiCommand) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.out, "out", "", "directory to write the file to (default from config)")
}

func (c *tuiCommand) Run(ctx context.Context, app *cli.App) error {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}

	if len(os.Getenv("EXPENSETRACK_DEBUG")) > 0 {
		f, logErr := tea.LogToFile("debug.log", "debug")
		if logErr != nil {
			return fmt.Errorf("failed to log to file: %w", logErr)
		}
		defer f.Close()
	}

	deliverer := app.Deliverer(c.out)
	m := initialModel(ctx, app.Session.Records(), app.NewExporter(deliverer), app.Now(), w)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if fm, ok := final.(model); ok && fm.result != nil {
		fmt.Fprintf(app.Out, "%s %d expenses (%s) to %s\n",
			util.Success("Exported"),
			fm.result.Summary.MatchedCount,
			util.FormatMoney(fm.result.Summary.TotalAmount),
			deliverer.Path(fm.result.Filename),
		)
	}

	return nil
}
