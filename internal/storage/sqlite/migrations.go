package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/logger"
)

type migration struct {
	name string
	up   func(context.Context, *sql.Tx) error
}

var migrations = []migration{
	{
		name: "Create expenses table",
		up: func(ctx context.Context, tx *sql.Tx) error {
			// position keeps insertion order; id is the record's own identifier
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS expenses
				(
				position INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				date TEXT NOT NULL,
				category TEXT NOT NULL,
				amount REAL NOT NULL CHECK (amount >= 0),
				description TEXT NOT NULL DEFAULT ''
				)
			`)
			return err
		},
	},
	{
		name: "Index expenses by date",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)")
			return err
		},
	},
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					applied_at INTEGER NOT NULL
			)
	`)
	return err
}

func (s *sqliteStorage) currentVersion(ctx context.Context) (int, error) {
	version := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *sqliteStorage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	if err := createMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := s.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for i, m := range migrations {
		migrationVersion := i + 1
		if migrationVersion <= currentVersion {
			continue
		}

		logger.Debug("Applying migration", "version", migrationVersion, "name", m.name)

		if err = s.applyMigration(ctx, migrationVersion, m); err != nil {
			return err
		}

		logger.Debug("Migration applied successfully", "version", migrationVersion)
	}

	return nil
}

func (s *sqliteStorage) applyMigration(ctx context.Context, version int, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", version, err)
	}

	if err = m.up(ctx, tx); err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return rErr
		}
		return fmt.Errorf("migration %d failed: %w", version, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, time.Now().Unix(),
	)
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return rErr
		}
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}

	return nil
}
