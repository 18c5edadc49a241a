package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense entry. Amount is positive for
// income and negative for expenses, matching the upstream API convention.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Type        string          `json:"type,omitempty"` // "income" or "expense"
	Date        string          `json:"date,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}
