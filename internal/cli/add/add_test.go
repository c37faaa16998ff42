package add

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/testutil"
)

func testApp(t *testing.T) (*cli.App, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	return &cli.App{
		Logger:  testutil.TestLogger(t),
		Session: testutil.SetupTestSession(t),
		Out:     &out,
		Now:     func() time.Time { return time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC) },
	}, &out
}

func parse(t *testing.T, c cli.Command, args ...string) {
	t.Helper()

	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Records a new expense", NewCommand().Description())
}

func TestAddWithFlags(t *testing.T) {
	app, out := testApp(t)
	cmd := NewCommand()
	parse(t, cmd, "--date", "2026-03-01", "--category", "health", "--amount", "$12.5", "--description", "Vitamins")

	require.NoError(t, cmd.Run(context.Background(), app))

	records := app.Session.Records()
	require.Len(t, records, 13)
	added := records[12]
	assert.Equal(t, "2026-03-01", added.Date())
	assert.Equal(t, expense.Health, added.Category())
	assert.InDelta(t, 12.5, added.Amount(), 0)
	assert.Equal(t, "Vitamins", added.Description())
	assert.NotEmpty(t, added.ID())

	assert.Equal(t, "Added 2026-03-01 Health $12.50 Vitamins\n", out.String())
}

func TestAddDefaultsToToday(t *testing.T) {
	app, _ := testApp(t)
	cmd := NewCommand()
	parse(t, cmd, "--category", "Food", "--amount", "3")

	require.NoError(t, cmd.Run(context.Background(), app))

	records := app.Session.Records()
	assert.Equal(t, "2026-02-20", records[len(records)-1].Date())
}

func TestAddPromptsForMissingValues(t *testing.T) {
	app, _ := testApp(t)
	prompted := false
	cmd := &addCommand{prompt: func(_ context.Context, c *addCommand) error {
		prompted = true
		c.category = "Transport"
		c.amount = "7.25"
		return nil
	}}
	parse(t, cmd, "--description", "Taxi")

	require.NoError(t, cmd.Run(context.Background(), app))

	assert.True(t, prompted)
	records := app.Session.Records()
	assert.Equal(t, expense.Transport, records[len(records)-1].Category())
}

func TestAddPromptError(t *testing.T) {
	app, _ := testApp(t)
	cmd := &addCommand{prompt: func(context.Context, *addCommand) error {
		return errors.New("aborted")
	}}
	parse(t, cmd)

	require.ErrorContains(t, cmd.Run(context.Background(), app), "aborted")
	assert.Equal(t, 12, app.Session.Len())
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown category", args: []string{"--category", "Travel", "--amount", "1"}, want: expense.ErrInvalidCategory},
		{name: "bad date", args: []string{"--date", "20-02-2026", "--category", "Food", "--amount", "1"}, want: expense.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := testApp(t)
			cmd := NewCommand()
			parse(t, cmd, tt.args...)

			require.ErrorIs(t, cmd.Run(context.Background(), app), tt.want)
			assert.Equal(t, 12, app.Session.Len())
		})
	}
}

func TestAddRejectsNegativeAmount(t *testing.T) {
	app, _ := testApp(t)
	cmd := NewCommand()
	parse(t, cmd, "--category", "Food", "--amount=-4")

	require.Error(t, cmd.Run(context.Background(), app))
	assert.Equal(t, 12, app.Session.Len())
}

func TestValidators(t *testing.T) {
	require.NoError(t, validateDate("2026-02-20"))
	require.Error(t, validateDate("yesterday"))
	require.NoError(t, validateAmount("4.50"))
	require.Error(t, validateAmount("four"))
	assert.Len(t, categoryOptions(), 6)
}
