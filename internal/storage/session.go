package storage

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/logger"
)

// Session is the in-memory record list the application works with.
// Writes to the backing Storage are best-effort: a failed save is logged and
// the session keeps the record.
type Session struct {
	store  Storage
	logger *logger.Logger

	mu      sync.RWMutex
	records []expense.Expense
}

// NewSession loads the stored records. An empty store is seeded with the
// sample records; a store that cannot be read leaves the session empty.
func NewSession(ctx context.Context, store Storage, l *logger.Logger) *Session {
	s := &Session{
		store:  store,
		logger: l.With("component", "session"),
	}

	records, err := store.GetExpenses(ctx)
	if err != nil {
		s.logger.Warn("failed to load expenses, starting empty", "error", err)
		return s
	}

	if len(records) > 0 {
		s.records = records
		return s
	}

	s.records = expense.Samples()
	if _, err = store.InsertExpenses(ctx, s.records); err != nil {
		s.logger.Warn("failed to save sample expenses", "error", err)
	} else {
		s.logger.Info("seeded empty store with sample expenses", "count", len(s.records))
	}

	return s
}

// Records returns a copy of the current list in insertion order.
func (s *Session) Records() []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Add appends e and reports whether it was saved.
func (s *Session) Add(ctx context.Context, e expense.Expense) bool {
	s.mu.Lock()
	s.records = append(s.records, e)
	s.mu.Unlock()

	if _, err := s.store.InsertExpenses(ctx, []expense.Expense{e}); err != nil {
		s.logger.Warn("failed to save expense", "id", e.ID(), "error", err)
		return false
	}

	return true
}

// Import adds the records whose id is not in the session yet and reports how
// many were added. Unlike Add, a failed save is returned and the session is
// left untouched.
func (s *Session) Import(ctx context.Context, records []expense.Expense) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		known[r.ID()] = struct{}{}
	}

	fresh := make([]expense.Expense, 0, len(records))
	for _, r := range records {
		if _, ok := known[r.ID()]; ok {
			continue
		}
		known[r.ID()] = struct{}{}
		fresh = append(fresh, r)
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	if _, err := s.store.InsertExpenses(ctx, fresh); err != nil {
		return 0, fmt.Errorf("failed to save imported expenses: %w", err)
	}

	s.records = append(s.records, fresh...)
	s.logger.Info("imported expenses", "count", len(fresh))

	return len(fresh), nil
}
