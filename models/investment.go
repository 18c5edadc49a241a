package models

import "github.com/shopspring/decimal"

// Investment mirrors the upstream /investments resource.
type Investment struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type,omitempty"`
	InitialValue     decimal.Decimal `json:"initial_value"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	ReturnPercentage float64         `json:"return_percentage"`
}
