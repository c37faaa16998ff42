package category

import (
	"fmt"
	"regexp"

	"github.com/GustavoCaso/expensetrack/internal/config"
	"github.com/GustavoCaso/expensetrack/internal/expense"
)

// DefaultRules are used when the configuration does not define any.
var DefaultRules = []config.Category{
	{Name: "Food", Pattern: `(?i)grocer|restaurant|cafe|coffee|lunch|dinner|pizza`},
	{Name: "Transport", Pattern: `(?i)uber|taxi|metro|bus|train|fuel|gas station|parking`},
	{Name: "Housing", Pattern: `(?i)rent|mortgage|electric|water bill|internet`},
	{Name: "Entertainment", Pattern: `(?i)netflix|spotify|cinema|movie|concert|game`},
	{Name: "Health", Pattern: `(?i)pharmacy|doctor|dentist|gym|vitamin`},
}

type matcher struct {
	re       *regexp.Regexp
	category expense.Category
}

// Matcher guesses the category of an expense from its description.
// Rules are tried in order and the first match wins.
type Matcher struct {
	matchers []matcher
}

func NewMatcher(rules []config.Category) (*Matcher, error) {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	matchers := make([]matcher, 0, len(rules))
	for _, rule := range rules {
		c, err := expense.ParseCategory(rule.Name)
		if err != nil {
			return nil, err
		}

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for category %s: %w", rule.Name, err)
		}

		matchers = append(matchers, matcher{re: re, category: c})
	}

	return &Matcher{matchers: matchers}, nil
}

// Match returns the category of the first rule matching description.
func (m *Matcher) Match(description string) (expense.Category, bool) {
	for _, mt := range m.matchers {
		if mt.re.MatchString(description) {
			return mt.category, true
		}
	}

	return expense.Other, false
}
