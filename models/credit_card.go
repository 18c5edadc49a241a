package models

import "github.com/shopspring/decimal"

// CreditCard mirrors the upstream /credit-cards resource.
type CreditCard struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	LastDigits     string          `json:"last_digits,omitempty"`
	CreditLimit    decimal.Decimal `json:"limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	ClosingDay     int             `json:"closing_day,omitempty"`
	DueDay         int             `json:"due_day,omitempty"`
}
