package cli

import (
	"context"

	"github.com/spf13/pflag"
)

type Command interface {
	SetFlags(fset *pflag.FlagSet)
	Description() string
	Run(ctx context.Context, app *App) error
}
