package expense

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

var ErrInvalidCategory = errors.New("invalid category")

// Category is one of the fixed expense categories.
type Category int

const (
	Food Category = iota
	Transport
	Housing
	Entertainment
	Health
	Other
)

var categoryNames = []string{"Food", "Transport", "Housing", "Entertainment", "Health", "Other"}

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{Food, Transport, Housing, Entertainment, Health, Other}
}

func (c Category) Valid() bool {
	return c >= Food && c <= Other
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	idx := slices.IndexFunc(categoryNames, func(name string) bool {
		return strings.EqualFold(name, strings.TrimSpace(s))
	})
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return Category(idx), nil
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategorySet is a set of selected categories. The zero value selects nothing.
type CategorySet map[Category]struct{}

func NewCategorySet(categories ...Category) CategorySet {
	set := make(CategorySet, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return set
}

// FullCategorySet selects every category.
func FullCategorySet() CategorySet {
	return NewCategorySet(AllCategories()...)
}

func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Toggle adds c when absent and removes it when present.
func (s CategorySet) Toggle(c Category) {
	if s.Has(c) {
		delete(s, c)
		return
	}
	s[c] = struct{}{}
}

func (s CategorySet) Len() int {
	return len(s)
}

func (s CategorySet) IsFull() bool {
	return len(s) == len(categoryNames)
}

// Sorted lists the selected categories in display order.
func (s CategorySet) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for _, c := range AllCategories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CategorySet) Clone() CategorySet {
	return NewCategorySet(s.Sorted()...)
}
