package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fintrack/models"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	defaultTag       = "fintrack"
	autoDismissDelay = 5 * time.Second
	historyLimit     = 50
	historyMaxAge    = 24 * time.Hour

	checkInterval     = time.Hour
	initialCheckDelay = 30 * time.Second

	paymentDueWindowDays  = 3
	goalAchievedThreshold = 100.0
	budgetAlertThreshold  = 80.0
)

// EventNotificationSent is broadcast to subscribers for every alert that was
// actually shown.
const EventNotificationSent = "notification_sent"

// Options controls how a single alert is presented. The Tag groups related
// alerts so the push platform can collapse duplicates for the same entity.
type Options struct {
	Body               string
	Icon               string
	Tag                string
	RequireInteraction bool
	Silent             bool
	Data               map[string]string
}

// Event is the payload delivered to subscribers.
type Event struct {
	Title   string
	Options Options
}

// SubscriberFunc receives in-process dispatcher events.
type SubscriberFunc func(event string, data Event)

// NotificationService mediates access to the push capability, tracks consent,
// synthesizes domain alerts on a schedule, and keeps a bounded history.
type NotificationService interface {
	RequestPermission(ctx context.Context) bool
	IsEnabled() bool

	SendNotification(ctx context.Context, title string, opts Options) *models.Notification
	NotifyPaymentDue(ctx context.Context, payment models.UpcomingPayment) *models.Notification
	NotifyGoalAchieved(ctx context.Context, goal models.Goal) *models.Notification
	NotifyInvestmentUpdate(ctx context.Context, investment models.Investment) *models.Notification
	NotifyBudgetAlert(ctx context.Context, budget models.Planning) *models.Notification
	NotifyTransactionAdded(ctx context.Context, tx models.Transaction) *models.Notification

	Subscribe(fn SubscriberFunc) (unsubscribe func())
	GetNotificationHistory() []*models.Notification
	ClearOldNotifications()
	MarkRead(id int64) bool

	GetSettings(ctx context.Context) models.NotificationSettings
	UpdateSettings(ctx context.Context, settings models.NotificationSettings) error

	StartChecks()
	StopChecks()
}

type subscriber struct {
	id int
	fn SubscriberFunc
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Pusher    Pusher
	Settings  SettingsStore
	Source    AlertSource       // data source for periodic checks, may be nil
	Reminders ReminderScheduler // scheduled reminder queue, may be nil
	Clock     clockwork.Clock
	Logger    *zap.Logger

	mu               sync.Mutex
	permission       models.Permission
	history          []*models.Notification
	subscribers      []subscriber
	nextSubscriberID int
	lastID           int64

	checkMu   sync.Mutex
	checkStop chan struct{}
}

func NewDefaultNotificationService(
	pusher Pusher,
	settings SettingsStore,
	source AlertSource,
	reminders ReminderScheduler,
	clock clockwork.Clock,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if pusher == nil || settings == nil {
		return nil, fmt.Errorf("notification service initialization error: pusher or settings store is nil")
	}
	return &DefaultNotificationService{
		Pusher:     pusher,
		Settings:   settings,
		Source:     source,
		Reminders:  reminders,
		Clock:      clock,
		Logger:     logger,
		permission: pusher.Permission(),
	}, nil
}
