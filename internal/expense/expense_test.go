package expense

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		category Category
		amount   float64
		wantErr  error
	}{
		{name: "valid", date: "2026-02-20", category: Food, amount: 12.5},
		{name: "zero amount", date: "2026-02-20", category: Other, amount: 0},
		{name: "negative amount", date: "2026-02-20", category: Food, amount: -1, wantErr: ErrInvalidAmount},
		{name: "NaN amount", date: "2026-02-20", category: Food, amount: math.NaN(), wantErr: ErrInvalidAmount},
		{name: "bad date", date: "20-02-2026", category: Food, amount: 1, wantErr: ErrInvalidDate},
		{name: "impossible date", date: "2026-02-30", category: Food, amount: 1, wantErr: ErrInvalidDate},
		{name: "unknown category", date: "2026-02-20", category: Category(42), amount: 1, wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.date, tt.category, tt.amount, "desc")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, e.ID())
			assert.Equal(t, tt.date, e.Date())
			assert.Equal(t, tt.category, e.Category())
			assert.Equal(t, tt.amount, e.Amount())
			assert.Equal(t, "desc", e.Description())
		})
	}
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for range 50 {
		e, err := New("2026-01-01", Food, 1, "")
		require.NoError(t, err)
		assert.False(t, seen[e.ID()], "duplicate id %s", e.ID())
		seen[e.ID()] = true
	}
}

func TestExpenseJSON(t *testing.T) {
	e := Restore("abc", "2026-02-20", Transport, 12.5, `Say "hello"`)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"abc","date":"2026-02-20","category":"Transport","amount":12.5,"description":"Say \"hello\""}`,
		string(data))

	var decoded Expense
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, e, decoded)
}

func TestExpenseJSONRejectsUnknownCategory(t *testing.T) {
	var decoded Expense
	err := json.Unmarshal([]byte(`{"id":"1","date":"2026-01-01","category":"Gifts","amount":1}`), &decoded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestSamplesAreValid(t *testing.T) {
	ids := map[string]bool{}
	for _, s := range Samples() {
		_, err := New(s.Date(), s.Category(), s.Amount(), s.Description())
		require.NoError(t, err, "sample %s", s.ID())
		assert.False(t, ids[s.ID()])
		ids[s.ID()] = true
	}
	assert.Len(t, ids, 12)
}
