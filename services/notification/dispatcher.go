package notification

import (
	"context"
	"fmt"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RequestPermission asks the platform capability for consent. Repeated calls
// after a granted or denied resolution return the cached state without
// prompting again. An unsupported runtime yields false and a warning, never
// an error.
func (s *DefaultNotificationService) RequestPermission(ctx context.Context) bool {
	if !s.Pusher.Supported() {
		s.Logger.Warn("Push notifications are not supported in this runtime")
		return false
	}

	s.mu.Lock()
	if s.permission == models.PermissionGranted || s.permission == models.PermissionDenied {
		cached := s.permission
		s.mu.Unlock()
		return cached == models.PermissionGranted
	}
	s.mu.Unlock()

	perm, err := s.Pusher.RequestPermission(ctx)
	if err != nil {
		s.Logger.Error("Failed to request notification permission", zap.Error(err))
		return false
	}

	s.mu.Lock()
	s.permission = perm
	s.mu.Unlock()
	return perm == models.PermissionGranted
}

// IsEnabled reports whether alerts can actually be shown.
func (s *DefaultNotificationService) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pusher.Supported() && s.permission == models.PermissionGranted
}

// SendNotification dispatches one alert through the platform capability and
// records it in the bounded history. Delivery failures are logged and
// converted to a nil return; alerts are best-effort by design.
func (s *DefaultNotificationService) SendNotification(ctx context.Context, title string, opts Options) *models.Notification {
	if !s.IsEnabled() {
		s.Logger.Warn("Notifications are not enabled")
		return nil
	}

	merged := applyDefaults(opts)

	if err := s.Pusher.Push(ctx, title, merged); err != nil {
		s.Logger.Error("Failed to dispatch notification", zap.String("title", title), zap.Error(err))
		return nil
	}

	s.mu.Lock()
	id := s.Clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	record := &models.Notification{
		ID:                 id,
		Title:              title,
		Body:               merged.Body,
		Tag:                merged.Tag,
		Icon:               merged.Icon,
		RequireInteraction: merged.RequireInteraction,
		Data:               merged.Data,
		Timestamp:          s.Clock.Now(),
	}
	s.history = append(s.history, record)
	s.mu.Unlock()

	if !merged.RequireInteraction {
		s.Clock.AfterFunc(autoDismissDelay, func() {
			s.mu.Lock()
			record.Dismissed = true
			s.mu.Unlock()
		})
	}

	s.broadcast(EventNotificationSent, Event{Title: title, Options: merged})
	return record
}

func applyDefaults(opts Options) Options {
	if opts.Tag == "" {
		opts.Tag = defaultTag
	}
	if opts.Icon == "" {
		opts.Icon = "/favicon.ico"
	}
	return opts
}

// NotifyPaymentDue alerts on a payment approaching its due date. The tag is
// deterministic per payment so the platform collapses repeat alerts.
func (s *DefaultNotificationService) NotifyPaymentDue(ctx context.Context, payment models.UpcomingPayment) *models.Notification {
	return s.SendNotification(ctx, "Payment due", Options{
		Body:               fmt.Sprintf("%s - %s due in %d day(s)", payment.Description, formatAmount(payment.Amount), payment.DaysUntilDue),
		Icon:               "/icons/payment.png",
		Tag:                fmt.Sprintf("payment-%d", payment.ID),
		RequireInteraction: true,
		Data:               map[string]string{"route": "/schedule"},
	})
}

func (s *DefaultNotificationService) NotifyGoalAchieved(ctx context.Context, goal models.Goal) *models.Notification {
	return s.SendNotification(ctx, "Goal achieved!", Options{
		Body: fmt.Sprintf("Congratulations! You reached the goal %q of %s", goal.Name, formatAmount(goal.TargetAmount)),
		Icon: "/icons/goal.png",
		Tag:  fmt.Sprintf("goal-%d", goal.ID),
		Data: map[string]string{"route": "/goals"},
	})
}

func (s *DefaultNotificationService) NotifyInvestmentUpdate(ctx context.Context, investment models.Investment) *models.Notification {
	sign := ""
	icon := "/icons/loss.png"
	if investment.ReturnPercentage > 0 {
		sign = "+"
		icon = "/icons/profit.png"
	}
	return s.SendNotification(ctx, "Investment update", Options{
		Body: fmt.Sprintf("%s: %s%.2f%% (%s)", investment.Name, sign, investment.ReturnPercentage, formatAmount(investment.CurrentValue)),
		Icon: icon,
		Tag:  fmt.Sprintf("investment-%d", investment.ID),
		Data: map[string]string{"route": "/investments"},
	})
}

func (s *DefaultNotificationService) NotifyBudgetAlert(ctx context.Context, budget models.Planning) *models.Notification {
	return s.SendNotification(ctx, "Budget alert", Options{
		Body:               fmt.Sprintf("You have spent %.1f%% of the %s budget", budget.SpentPercentage, budget.Category),
		Icon:               "/icons/warning.png",
		Tag:                fmt.Sprintf("budget-%s", budget.Category),
		RequireInteraction: true,
		Data:               map[string]string{"route": "/planning"},
	})
}

func (s *DefaultNotificationService) NotifyTransactionAdded(ctx context.Context, tx models.Transaction) *models.Notification {
	kind := "Expense"
	icon := "/icons/expense.png"
	if tx.Amount.Sign() > 0 {
		kind = "Income"
		icon = "/icons/income.png"
	}
	return s.SendNotification(ctx, "New transaction", Options{
		Body: fmt.Sprintf("%s: %s - %s", kind, tx.Description, formatAmount(tx.Amount.Abs())),
		Icon: icon,
		Tag:  fmt.Sprintf("transaction-%d", tx.ID),
		Data: map[string]string{"route": "/transactions"},
	})
}

func formatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Subscribe registers an in-process event callback and returns its
// unsubscribe function. Unsubscribing twice is a no-op.
func (s *DefaultNotificationService) Subscribe(fn SubscriberFunc) func() {
	s.mu.Lock()
	s.nextSubscriberID++
	id := s.nextSubscriberID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// broadcast delivers one event to every subscriber synchronously, in
// registration order. A panicking subscriber is isolated so the rest still
// receive the event.
func (s *DefaultNotificationService) broadcast(event string, data Event) {
	s.mu.Lock()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		s.notifyOne(sub, event, data)
	}
}

func (s *DefaultNotificationService) notifyOne(sub subscriber, event string, data Event) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("Notification subscriber panicked", zap.Any("error", r))
		}
	}()
	sub.fn(event, data)
}

// GetNotificationHistory returns the most recent 50 records, oldest first
// within the retained window.
func (s *DefaultNotificationService) GetNotificationHistory() []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.history) > historyLimit {
		start = len(s.history) - historyLimit
	}
	out := make([]*models.Notification, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// ClearOldNotifications drops every record older than 24 hours. Read flags
// and settings are untouched.
func (s *DefaultNotificationService) ClearOldNotifications() {
	cutoff := s.Clock.Now().Add(-historyMaxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*models.Notification
	for _, n := range s.history {
		if n.Timestamp.After(cutoff) {
			kept = append(kept, n)
		}
	}
	s.history = kept
}

// MarkRead flags one history record as read and reports whether it was found.
func (s *DefaultNotificationService) MarkRead(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.history {
		if n.ID == id {
			n.Read = true
			return true
		}
	}
	return false
}
