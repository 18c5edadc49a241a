package models

import "github.com/shopspring/decimal"

// Planning is a monthly budget for one spending category.
type Planning struct {
	ID              int64           `json:"id"`
	Category        string          `json:"category"`
	BudgetLimit     decimal.Decimal `json:"limit"`
	Spent           decimal.Decimal `json:"spent"`
	SpentPercentage float64         `json:"spent_percentage"`
	Month           string          `json:"month,omitempty"` // YYYY-MM
}
