package notification

import (
	"context"
	"fmt"
	"time"

	"fintrack/models"

	"go.uber.org/zap"
)

// AlertSource supplies the data the periodic checks evaluate. The dispatcher
// owns only the threshold policy, never the fetch.
type AlertSource interface {
	UpcomingPayments(ctx context.Context) ([]models.UpcomingPayment, error)
	Goals(ctx context.Context) ([]models.Goal, error)
	Budgets(ctx context.Context) ([]models.Planning, error)
}

// ReminderScheduler queues a reminder to be delivered at a future time.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// StartChecks launches the periodic domain checks: an initial payment scan
// after 30 seconds, then all three checks every hour. A second call while
// checks are already running is a no-op.
func (s *DefaultNotificationService) StartChecks() {
	s.checkMu.Lock()
	defer s.checkMu.Unlock()
	if s.checkStop != nil {
		return
	}
	stop := make(chan struct{})
	s.checkStop = stop
	go s.runChecks(stop)
}

// StopChecks halts the periodic checks. Invoked on logout so no polling
// outlives the session.
func (s *DefaultNotificationService) StopChecks() {
	s.checkMu.Lock()
	defer s.checkMu.Unlock()
	if s.checkStop == nil {
		return
	}
	close(s.checkStop)
	s.checkStop = nil
}

func (s *DefaultNotificationService) runChecks(stop <-chan struct{}) {
	initial := s.Clock.NewTimer(initialCheckDelay)
	defer initial.Stop()
	ticker := s.Clock.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-initial.Chan():
			s.CheckUpcomingPayments(context.Background())
		case <-ticker.Chan():
			ctx := context.Background()
			s.CheckUpcomingPayments(ctx)
			s.CheckGoalProgress(ctx)
			s.CheckBudgetLimits(ctx)
		case <-stop:
			return
		}
	}
}

// CheckUpcomingPayments alerts on payments due within the next three days and
// queues a scheduled reminder for payments further out. Errors are logged;
// one failing check never blocks the others.
func (s *DefaultNotificationService) CheckUpcomingPayments(ctx context.Context) {
	if s.Source == nil || !s.flag(ctx, paymentRemindersKey) {
		return
	}
	payments, err := s.Source.UpcomingPayments(ctx)
	if err != nil {
		s.Logger.Error("Failed to check upcoming payments", zap.Error(err))
		return
	}
	for _, payment := range payments {
		switch {
		case payment.DaysUntilDue >= 0 && payment.DaysUntilDue <= paymentDueWindowDays:
			s.NotifyPaymentDue(ctx, payment)
		case payment.DaysUntilDue > paymentDueWindowDays && s.Reminders != nil:
			s.schedulePaymentReminder(ctx, payment)
		}
	}
}

// schedulePaymentReminder queues a reminder to fire when the payment enters
// the three-day alert window.
func (s *DefaultNotificationService) schedulePaymentReminder(ctx context.Context, payment models.UpcomingPayment) {
	fireAt := s.Clock.Now().AddDate(0, 0, payment.DaysUntilDue-paymentDueWindowDays)
	payload := models.ReminderPayload{
		ReminderID: fmt.Sprintf("payment-%d", payment.ID),
		Title:      "Payment due",
		Body:       fmt.Sprintf("%s - %s due on %s", payment.Description, formatAmount(payment.Amount), payment.DueDate),
		Tag:        fmt.Sprintf("payment-%d", payment.ID),
		FireDate:   fireAt.Format(time.RFC3339),
	}
	if err := s.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
		s.Logger.Error("Failed to schedule payment reminder", zap.Int64("paymentID", payment.ID), zap.Error(err))
	}
}

// CheckGoalProgress alerts on every goal that reached its target.
func (s *DefaultNotificationService) CheckGoalProgress(ctx context.Context) {
	if s.Source == nil || !s.flag(ctx, goalUpdatesKey) {
		return
	}
	goals, err := s.Source.Goals(ctx)
	if err != nil {
		s.Logger.Error("Failed to check goal progress", zap.Error(err))
		return
	}
	for _, goal := range goals {
		if goal.Progress >= goalAchievedThreshold {
			s.NotifyGoalAchieved(ctx, goal)
		}
	}
}

// CheckBudgetLimits alerts on every budget category at or past 80% spent.
func (s *DefaultNotificationService) CheckBudgetLimits(ctx context.Context) {
	if s.Source == nil || !s.flag(ctx, budgetAlertsKey) {
		return
	}
	budgets, err := s.Source.Budgets(ctx)
	if err != nil {
		s.Logger.Error("Failed to check budget limits", zap.Error(err))
		return
	}
	for _, budget := range budgets {
		if budget.SpentPercentage >= budgetAlertThreshold {
			s.NotifyBudgetAlert(ctx, budget)
		}
	}
}
