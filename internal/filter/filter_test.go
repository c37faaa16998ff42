package filter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/expensetrack/internal/expense"
)

func ptr(s string) *string {
	return &s
}

func records() []expense.Expense {
	return []expense.Expense{
		expense.Restore("1", "2026-01-05", expense.Food, 42.5, "groceries"),
		expense.Restore("2", "2026-01-08", expense.Transport, 28, "uber"),
		expense.Restore("3", "2026-01-12", expense.Housing, 1450, "rent"),
		expense.Restore("4", "2026-02-02", expense.Food, 11.2, "coffee"),
		expense.Restore("5", "2026-02-18", expense.Transport, 55, "train"),
	}
}

func ids(list []expense.Expense) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID()
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "unbounded with all categories",
			filter: Filter{Categories: expense.FullCategorySet()},
			want:   []string{"1", "2", "3", "4", "5"},
		},
		{
			name:   "start date inclusive",
			filter: Filter{StartDate: ptr("2026-01-12"), Categories: expense.FullCategorySet()},
			want:   []string{"3", "4", "5"},
		},
		{
			name:   "end date inclusive",
			filter: Filter{EndDate: ptr("2026-01-12"), Categories: expense.FullCategorySet()},
			want:   []string{"1", "2", "3"},
		},
		{
			name: "range and category",
			filter: Filter{
				StartDate:  ptr("2026-01-06"),
				EndDate:    ptr("2026-02-28"),
				Categories: expense.NewCategorySet(expense.Transport),
			},
			want: []string{"2", "5"},
		},
		{
			name:   "no categories selected",
			filter: Filter{Categories: expense.NewCategorySet()},
			want:   []string{},
		},
		{
			name:   "nil category set",
			filter: Filter{},
			want:   []string{},
		},
		{
			name: "inverted range",
			filter: Filter{
				StartDate:  ptr("2026-02-01"),
				EndDate:    ptr("2026-01-01"),
				Categories: expense.FullCategorySet(),
			},
			want: []string{},
		},
		{
			name:   "malformed bound never matches later dates",
			filter: Filter{EndDate: ptr("1999"), Categories: expense.FullCategorySet()},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records(), tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	input := records()
	before := ids(input)

	Apply(input, Filter{Categories: expense.NewCategorySet(expense.Food)})

	assert.Equal(t, before, ids(input))
}

func randomRecords(r *rand.Rand, n int) []expense.Expense {
	out := make([]expense.Expense, n)
	cats := expense.AllCategories()
	for i := range out {
		day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, r.Intn(90))
		out[i] = expense.Restore(
			string(rune('a'+i%26))+day.Format("0102"),
			day.Format(expense.DateLayout),
			cats[r.Intn(len(cats))],
			float64(r.Intn(10000))/100,
			"",
		)
	}
	return out
}

func randomFilter(r *rand.Rand) Filter {
	f := Filter{Categories: expense.NewCategorySet()}
	for _, c := range expense.AllCategories() {
		if r.Intn(2) == 0 {
			f.Categories[c] = struct{}{}
		}
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if r.Intn(3) > 0 {
		f.StartDate = ptr(base.AddDate(0, 0, r.Intn(90)).Format(expense.DateLayout))
	}
	if r.Intn(3) > 0 {
		f.EndDate = ptr(base.AddDate(0, 0, r.Intn(90)).Format(expense.DateLayout))
	}
	return f
}

func TestApplyIsStableSubset(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for range 200 {
		input := randomRecords(r, r.Intn(40))
		f := randomFilter(r)
		got := Apply(input, f)

		// every output element appears in the input after the previous one
		next := 0
		for _, g := range got {
			found := false
			for next < len(input) {
				candidate := input[next]
				next++
				if candidate == g {
					found = true
					break
				}
			}
			require.True(t, found, "output is not an ordered subsequence of the input")
			assert.True(t, f.Matches(g))
		}

		// nothing that matches was dropped
		matching := 0
		for _, e := range input {
			if f.Matches(e) {
				matching++
			}
		}
		assert.Len(t, got, matching)
	}
}

func TestApplyInvertedRangeIsAlwaysEmpty(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for range 100 {
		start := r.Intn(89) + 1
		end := r.Intn(start)
		f := Filter{
			StartDate:  ptr(base.AddDate(0, 0, start).Format(expense.DateLayout)),
			EndDate:    ptr(base.AddDate(0, 0, end).Format(expense.DateLayout)),
			Categories: expense.FullCategorySet(),
		}
		assert.Empty(t, Apply(randomRecords(r, 30), f))
	}
}

func TestDefault(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	f := Default(now)

	assert.Nil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.Equal(t, "2026-10-19", *f.EndDate)
	assert.True(t, f.Categories.IsFull())
	assert.Equal(t, "expenses-2026-10-19", DefaultFilename(now))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "expenses-2026-02-20", want: "expenses-2026-02-20"},
		{input: "my report", want: "my-report"},
		{input: "../etc/passwd", want: "---etc-passwd"},
		{input: "Q1_summary.v2", want: "Q1_summary-v2"},
		{input: "café", want: "caf-"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}
