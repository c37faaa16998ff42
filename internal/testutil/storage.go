package testutil

import (
	"context"
	"testing"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/storage"
	"github.com/GustavoCaso/expensetrack/internal/storage/sqlite"
)

// SetupTestStorage returns a migrated in-memory store, closed at test cleanup.
func SetupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	s, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}

	err = s.ApplyMigrations(context.Background(), TestLogger(t))
	if err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := s.Close(); closeErr != nil {
			t.Errorf("Failed to close test storage: %v", closeErr)
		}
	})

	return s
}

// SetupTestSession returns a session over a store holding records.
// With no records the session is seeded with the sample expenses.
func SetupTestSession(t *testing.T, records ...expense.Expense) *storage.Session {
	t.Helper()

	s := SetupTestStorage(t)
	if len(records) > 0 {
		if _, err := s.InsertExpenses(context.Background(), records); err != nil {
			t.Fatalf("Failed to insert test expenses: %v", err)
		}
	}

	return storage.NewSession(context.Background(), s, TestLogger(t))
}
