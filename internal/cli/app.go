package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/config"
	"github.com/GustavoCaso/expensetrack/internal/delivery"
	"github.com/GustavoCaso/expensetrack/internal/export"
	"github.com/GustavoCaso/expensetrack/internal/logger"
	"github.com/GustavoCaso/expensetrack/internal/storage"
	"github.com/GustavoCaso/expensetrack/internal/storage/sqlite"
)

// App carries what every subcommand needs.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Storage storage.Storage
	Session *storage.Session
	Out     io.Writer
	Now     func() time.Time
}

// NewApp opens the store described by conf and loads the session.
func NewApp(ctx context.Context, conf *config.Config, l *logger.Logger) (*App, error) {
	s, err := sqlite.New(conf.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", conf.DB, err)
	}

	if err = s.ApplyMigrations(ctx, l); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &App{
		Config:  conf,
		Logger:  l,
		Storage: s,
		Session: storage.NewSession(ctx, s, l),
		Out:     os.Stdout,
		Now:     time.Now,
	}, nil
}

// Deliverer writes exports to dir, or to the configured directory when dir is empty.
func (a *App) Deliverer(dir string) *delivery.FileDeliverer {
	if dir == "" {
		dir = a.Config.Export.Dir
	}
	return delivery.NewFileDeliverer(dir, a.Logger)
}

// NewExporter builds an exporter with the configured settle delay and the app clock.
func (a *App) NewExporter(d export.Deliverer, opts ...export.Option) *export.Exporter {
	base := []export.Option{
		export.WithSettleDelay(a.Config.Export.SettleDelay.Duration),
		export.WithClock(a.Now),
	}
	return export.NewExporter(d, a.Logger, append(base, opts...)...)
}

func (a *App) Close() error {
	return a.Storage.Close()
}
