package model

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrEmptyProfileName is returned when a profile has no name.
var ErrEmptyProfileName = errors.New("profile name cannot be empty")

// Profile is a named owner of an ordered transaction history.
// Transactions are kept in entry order, which is not necessarily date order.
type Profile struct {
	Name         string
	Transactions []Transaction
}

// Summary holds the derived aggregates of a profile.
type Summary struct {
	Income  float64
	Expense float64
	Balance float64
	Count   int
}

// CategoryTotal is the signed total for one category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

// NewProfile creates an empty profile.
func NewProfile(name string) *Profile {
	return &Profile{
		Name:         name,
		Transactions: []Transaction{},
	}
}

// AddTransaction appends a transaction to the profile.
func (p *Profile) AddTransaction(t Transaction) {
	p.Transactions = append(p.Transactions, t)
}

// TotalIncome sums the amounts of all income transactions.
func (p *Profile) TotalIncome() float64 {
	f, _ := p.sum(KindIncome).Float64()
	return f
}

// TotalExpense sums the amounts of all expense transactions.
func (p *Profile) TotalExpense() float64 {
	f, _ := p.sum(KindExpense).Float64()
	return f
}

// Balance is total income minus total expense.
func (p *Profile) Balance() float64 {
	f, _ := p.sum(KindIncome).Sub(p.sum(KindExpense)).Float64()
	return f
}

// Summary computes all aggregates in one pass.
func (p *Profile) Summary() Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range p.Transactions {
		amount := decimal.NewFromFloat(t.Amount)
		if t.IsIncome() {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}

	s := Summary{Count: len(p.Transactions)}
	s.Income, _ = income.Float64()
	s.Expense, _ = expense.Float64()
	s.Balance, _ = income.Sub(expense).Float64()
	return s
}

// Categories returns signed totals per category, sorted by category name.
func (p *Profile) Categories() []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, t := range p.Transactions {
		totals[t.Category] = totals[t.Category].Add(decimal.NewFromFloat(t.Signed()))
		counts[t.Category]++
	}

	result := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		f, _ := total.Float64()
		result = append(result, CategoryTotal{
			Category: category,
			Total:    f,
			Count:    counts[category],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}

func (p *Profile) sum(kind Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range p.Transactions {
		if t.Kind == kind {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return total
}

type profileJSON struct {
	Name         string        `json:"name"`
	Transactions []Transaction `json:"transactions"`
}

// MarshalJSON encodes the profile as {name, transactions}.
func (p *Profile) MarshalJSON() ([]byte, error) {
	txs := p.Transactions
	if txs == nil {
		txs = []Transaction{}
	}
	return json.Marshal(profileJSON{Name: p.Name, Transactions: txs})
}

// UnmarshalJSON decodes a profile. Each transaction is dispatched on its kind.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw profileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return ErrEmptyProfileName
	}
	if raw.Transactions == nil {
		raw.Transactions = []Transaction{}
	}

	p.Name = raw.Name
	p.Transactions = raw.Transactions
	return nil
}

// Collection maps profile names to profiles. It is owned by the caller;
// the repository only ever operates on it by reference.
type Collection map[string]*Profile

// Names returns the profile names in sorted order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
