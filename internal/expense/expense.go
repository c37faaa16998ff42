package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO 8601 calendar date layout used for every record date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// Expense is an immutable expense record.
type Expense struct {
	id          string
	date        string
	category    Category
	amount      float64
	description string
}

// New validates the fields and returns a record with a freshly generated id.
func New(date string, category Category, amount float64, description string) (Expense, error) {
	if err := validate(date, category, amount); err != nil {
		return Expense{}, err
	}

	return Expense{
		id:          uuid.NewString(),
		date:        date,
		category:    category,
		amount:      amount,
		description: description,
	}, nil
}

// Restore rebuilds a record that was created earlier, keeping its id.
func Restore(id, date string, category Category, amount float64, description string) Expense {
	return Expense{
		id:          id,
		date:        date,
		category:    category,
		amount:      amount,
		description: description,
	}
}

func validate(date string, category Category, amount float64) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCategory, int(category))
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}

func (e Expense) ID() string {
	return e.id
}

func (e Expense) Date() string {
	return e.date
}

func (e Expense) Category() Category {
	return e.category
}

func (e Expense) Amount() float64 {
	return e.amount
}

func (e Expense) Description() string {
	return e.description
}

type jsonExpense struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Category    Category `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
}

func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExpense{
		ID:          e.id,
		Date:        e.date,
		Category:    e.category,
		Amount:      e.amount,
		Description: e.description,
	})
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw jsonExpense
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Restore(raw.ID, raw.Date, raw.Category, raw.Amount, raw.Description)
	return nil
}
