package models

import "time"

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// DiscretionaryCategories are the spending categories treated as reducible.
var DiscretionaryCategories = map[string]bool{
	"entertainment": true,
	"dining":        true,
	"shopping":      true,
	"subscriptions": true,
}

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}
