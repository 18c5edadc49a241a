package models

import "github.com/shopspring/decimal"

// ScheduleEvent is a calendar entry on the upstream /schedule resource.
// Events of type "payment" feed the payment reminder checks.
type ScheduleEvent struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	EventDate   string          `json:"event_date"` // YYYY-MM-DD
	EventTime   string          `json:"event_time,omitempty"`
	Type        string          `json:"type,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Priority    string          `json:"priority,omitempty"`
	Category    string          `json:"category,omitempty"`
	Completed   bool            `json:"completed,omitempty"`
}

// UpcomingPayment is a payment-type event annotated with the number of days
// remaining until its due date.
type UpcomingPayment struct {
	ID           int64           `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	DaysUntilDue int             `json:"daysUntilDue"`
}
