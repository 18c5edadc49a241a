package models

import "time"

// Permission mirrors the platform notification permission state.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notification is one delivered alert, retained in the in-memory history.
// Read is mutated by the dashboard, never by the dispatcher. Dismissed is set
// when the 5-second auto-dismiss fires for non-interactive alerts.
type Notification struct {
	ID                 int64             `json:"id"`
	Title              string            `json:"title"`
	Body               string            `json:"body"`
	Tag                string            `json:"tag"`
	Icon               string            `json:"icon,omitempty"`
	RequireInteraction bool              `json:"requireInteraction"`
	Data               map[string]string `json:"data,omitempty"`
	Timestamp          time.Time         `json:"timestamp"`
	Read               bool              `json:"read"`
	Dismissed          bool              `json:"dismissed"`
}

// NotificationSettings combines the four persisted preference toggles with
// live-derived capability state. Permission, Supported and Enabled are never
// written to storage.
type NotificationSettings struct {
	Enabled           bool       `json:"enabled"`
	Permission        Permission `json:"permission"`
	Supported         bool       `json:"supported"`
	PaymentReminders  bool       `json:"paymentReminders"`
	GoalUpdates       bool       `json:"goalUpdates"`
	BudgetAlerts      bool       `json:"budgetAlerts"`
	InvestmentUpdates bool       `json:"investmentUpdates"`
}

// ReminderPayload is the body of a scheduled reminder task.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Tag        string `json:"tag"`
	FireDate   string `json:"fireDate"`
}
