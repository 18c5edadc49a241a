package models

import "github.com/shopspring/decimal"

// Goal is a savings target. Progress is the percentage of the target already
// reached, as reported by the upstream API.
type Goal struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"` // YYYY-MM-DD
	Progress      float64         `json:"progress"`
}
