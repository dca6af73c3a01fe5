// Package model defines the profile and transaction types managed by budgetbuddy.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the ISO-8601 calendar date form used for transaction dates.
const DateLayout = "2006-01-02"

// Transaction errors.
var (
	ErrUnknownKind    = errors.New("unknown transaction kind")
	ErrNegativeAmount = errors.New("amount must be a non-negative number")
)

// Kind distinguishes income from expense transactions.
type Kind string

// Transaction kinds.
const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// ParseKind returns the Kind named by s. Matching is exact.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) String() string {
	return string(k)
}

// Transaction is a single dated income or expense event.
// The amount is always non-negative; the sign is implied by Kind.
type Transaction struct {
	Kind     Kind
	Date     string
	Category string
	Notes    string
	Amount   float64
}

// NewTransaction creates a transaction of the given kind.
func NewTransaction(kind Kind, date string, amount float64, category, notes string) (Transaction, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Transaction{}, err
	}
	if err := validateAmount(amount); err != nil {
		return Transaction{}, err
	}
	// Negative zero is stored as zero.
	if amount == 0 {
		amount = 0
	}

	return Transaction{
		Kind:     kind,
		Date:     date,
		Amount:   amount,
		Category: category,
		Notes:    notes,
	}, nil
}

// NewIncome creates an income transaction.
func NewIncome(date string, amount float64, category, notes string) (Transaction, error) {
	return NewTransaction(KindIncome, date, amount, category, notes)
}

// NewExpense creates an expense transaction.
func NewExpense(date string, amount float64, category, notes string) (Transaction, error) {
	return NewTransaction(KindExpense, date, amount, category, notes)
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// Signed returns the amount with the sign implied by the kind.
func (t Transaction) Signed() float64 {
	if t.Kind == KindExpense {
		return -t.Amount
	}
	return t.Amount
}

// ParseDate interprets the transaction date as a calendar date.
// Dates are stored verbatim, so this may fail for hand-entered values.
func (t Transaction) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}

type transactionJSON struct {
	Kind     string  `json:"kind"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
}

// MarshalJSON encodes the transaction with an explicit kind discriminator.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		Kind:     string(t.Kind),
		Date:     t.Date,
		Amount:   t.Amount,
		Category: t.Category,
		Notes:    t.Notes,
	})
}

// UnmarshalJSON decodes a transaction, dispatching on its kind field.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tx, err := NewTransaction(Kind(raw.Kind), raw.Date, raw.Amount, raw.Category, raw.Notes)
	if err != nil {
		return err
	}

	*t = tx
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}
	return nil
}
