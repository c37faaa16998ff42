package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/storage"
)

const expenseColumns = "id, date, category, amount, description"

func (s *sqliteStorage) GetExpenses(ctx context.Context) ([]expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+expenseColumns+" FROM expenses ORDER BY position")
	if err != nil {
		return []expense.Expense{}, err
	}
	defer rows.Close()

	expenses := []expense.Expense{}

	for rows.Next() {
		ex, expenseErr := expenseFromRow(rows.Scan)
		if expenseErr != nil {
			return []expense.Expense{}, expenseErr
		}

		expenses = append(expenses, ex)
	}

	if rows.Err() != nil {
		return []expense.Expense{}, rows.Err()
	}

	return expenses, nil
}

func (s *sqliteStorage) GetExpenseByID(ctx context.Context, id string) (expense.Expense, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	return expenseFromRow(row.Scan)
}

// InsertExpenses appends expenses in order. Records whose id is already
// stored are skipped.
func (s *sqliteStorage) InsertExpenses(ctx context.Context, expenses []expense.Expense) (int64, error) {
	if len(expenses) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO expenses("+expenseColumns+") VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, errors.Join(err, tx.Rollback())
	}
	defer stmt.Close()

	var inserted int64
	for _, e := range expenses {
		result, execErr := stmt.ExecContext(ctx, e.ID(), e.Date(), e.Category().String(), e.Amount(), e.Description())
		if execErr != nil {
			return 0, errors.Join(fmt.Errorf("failed to insert expense %s: %w", e.ID(), execErr), tx.Rollback())
		}

		affected, affectedErr := result.RowsAffected()
		if affectedErr != nil {
			return 0, errors.Join(affectedErr, tx.Rollback())
		}
		inserted += affected
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expenses: %w", err)
	}

	return inserted, nil
}

func (s *sqliteStorage) CountExpenses(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func expenseFromRow(scan func(dest ...any) error) (expense.Expense, error) {
	var id string
	var date string
	var categoryName string
	var amount float64
	var description string

	if err := scan(&id, &date, &categoryName, &amount, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.Expense{}, &storage.NotFoundError{}
		}
		return expense.Expense{}, err
	}

	category, err := expense.ParseCategory(categoryName)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %s: %w", id, err)
	}

	return expense.Restore(id, date, category, amount, description), nil
}
