package finance

import (
	"context"
	"time"

	"fintrack/models"

	"github.com/jonboulle/clockwork"
)

// AlertData is the slice of the finance surface the periodic checks read.
type AlertData interface {
	ScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error)
	Goals(ctx context.Context) ([]models.Goal, error)
	Plannings(ctx context.Context) ([]models.Planning, error)
}

// AlertFeed adapts the finance service into the data source the notification
// dispatcher polls. Days-until-due is computed against the injected clock so
// the window is testable.
type AlertFeed struct {
	Finance AlertData
	Clock   clockwork.Clock
}

func NewAlertFeed(finance AlertData, clock clockwork.Clock) *AlertFeed {
	return &AlertFeed{Finance: finance, Clock: clock}
}

// UpcomingPayments returns every incomplete payment-type schedule event that
// is not already past due, annotated with the days remaining.
func (f *AlertFeed) UpcomingPayments(ctx context.Context) ([]models.UpcomingPayment, error) {
	events, err := f.Finance.ScheduleEvents(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(f.Clock.Now())
	var payments []models.UpcomingPayment
	for _, event := range events {
		if event.Type != "payment" || event.Completed {
			continue
		}
		due, err := time.Parse("2006-01-02", event.EventDate)
		if err != nil {
			continue
		}
		days := int(due.Sub(today).Hours() / 24)
		if days < 0 {
			continue
		}
		payments = append(payments, models.UpcomingPayment{
			ID:           event.ID,
			Description:  event.Title,
			Amount:       event.Amount,
			DueDate:      event.EventDate,
			DaysUntilDue: days,
		})
	}
	return payments, nil
}

func (f *AlertFeed) Goals(ctx context.Context) ([]models.Goal, error) {
	return f.Finance.Goals(ctx)
}

func (f *AlertFeed) Budgets(ctx context.Context) ([]models.Planning, error) {
	return f.Finance.Plannings(ctx)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
