package storage

import (
	"context"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/logger"
)

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "record not found"
}

// Storage persists expenses in insertion order.
type Storage interface {
	// Migrations
	ApplyMigrations(ctx context.Context, logger *logger.Logger) error

	// Expenses
	GetExpenses(ctx context.Context) ([]expense.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (expense.Expense, error)
	InsertExpenses(ctx context.Context, expenses []expense.Expense) (int64, error)
	CountExpenses(ctx context.Context) (int64, error)

	// Resource managment
	Close() error
}
