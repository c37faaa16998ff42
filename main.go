package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/cli/add"
	"github.com/GustavoCaso/expensetrack/internal/cli/export"
	importCmd "github.com/GustavoCaso/expensetrack/internal/cli/import"
	"github.com/GustavoCaso/expensetrack/internal/cli/list"
	"github.com/GustavoCaso/expensetrack/internal/cli/report"
	"github.com/GustavoCaso/expensetrack/internal/cli/tui"
	"github.com/GustavoCaso/expensetrack/internal/config"
	"github.com/GustavoCaso/expensetrack/internal/logger"
)

var configPath string

var subcommands = map[string]cli.Command{
	"add":    add.NewCommand(),
	"list":   list.NewCommand(),
	"export": export.NewCommand(),
	"import": importCmd.NewCommand(),
	"report": report.NewCommand(),
	"tui":    tui.NewCommand(),
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "expensetrack",
		Short:         "Record expenses and export them as CSV, JSON or PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "expensetrack.toml", "Configuration file")

	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		root.AddCommand(newCobraCommand(name, subcommands[name]))
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		stop()
		os.Exit(1)
	}
}

func newCobraCommand(name string, c cli.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: c.Description(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Parse(configPath)
			if err != nil {
				return fmt.Errorf("unable to parse the configuration: %w", err)
			}

			appLogger := logger.New(conf.Logger)

			app, err := cli.NewApp(cmd.Context(), conf, appLogger)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					appLogger.Error("Error closing storage", "error", closeErr)
				}
			}()

			return c.Run(cmd.Context(), app)
		},
	}
	c.SetFlags(cmd.Flags())

	return cmd
}
