package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"fintrack/models"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pushRecord struct {
	Title string
	Opts  Options
}

// fakePusher records deliveries and lets tests steer capability state.
type fakePusher struct {
	mu         sync.Mutex
	supported  bool
	permission models.Permission
	grantOnAsk bool
	asks       int
	pushErr    error
	pushes     []pushRecord
}

func (p *fakePusher) Supported() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supported
}

func (p *fakePusher) Permission() models.Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission
}

func (p *fakePusher) RequestPermission(ctx context.Context) (models.Permission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asks++
	if p.grantOnAsk {
		p.permission = models.PermissionGranted
	} else {
		p.permission = models.PermissionDenied
	}
	return p.permission, nil
}

func (p *fakePusher) Push(ctx context.Context, title string, opts Options) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushErr != nil {
		return p.pushErr
	}
	p.pushes = append(p.pushes, pushRecord{Title: title, Opts: opts})
	return nil
}

func (p *fakePusher) recorded() []pushRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]pushRecord, len(p.pushes))
	copy(out, p.pushes)
	return out
}

func newDispatcherFixture(t *testing.T) (*DefaultNotificationService, *fakePusher, clockwork.FakeClock) {
	t.Helper()
	pusher := &fakePusher{supported: true, permission: models.PermissionGranted}
	clock := clockwork.NewFakeClock()
	svc, err := NewDefaultNotificationService(pusher, NewMemorySettingsStore(), nil, nil, clock, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.StopChecks)
	return svc, pusher, clock
}

func TestSendNotificationAppliesDefaults(t *testing.T) {
	svc, pusher, _ := newDispatcherFixture(t)

	record := svc.SendNotification(context.Background(), "Hello", Options{Body: "world"})
	require.NotNil(t, record)
	assert.Equal(t, "fintrack", record.Tag)
	assert.Equal(t, "/favicon.ico", record.Icon)
	assert.False(t, record.Read)

	pushes := pusher.recorded()
	require.Len(t, pushes, 1)
	assert.Equal(t, "Hello", pushes[0].Title)
	assert.Equal(t, "fintrack", pushes[0].Opts.Tag)
}

func TestSendNotificationDisabledIsNoop(t *testing.T) {
	svc, pusher, _ := newDispatcherFixture(t)
	pusher.mu.Lock()
	pusher.permission = models.PermissionDenied
	pusher.mu.Unlock()

	record := svc.SendNotification(context.Background(), "Hello", Options{})
	assert.Nil(t, record)
	assert.Empty(t, pusher.recorded())
	assert.Empty(t, svc.GetNotificationHistory())
}

func TestSendNotificationDeliveryFailure(t *testing.T) {
	svc, pusher, _ := newDispatcherFixture(t)
	pusher.pushErr = fmt.Errorf("transport down")

	record := svc.SendNotification(context.Background(), "Hello", Options{})
	assert.Nil(t, record)
	assert.Empty(t, svc.GetNotificationHistory())
}

func TestNotificationIDsAreMonotonic(t *testing.T) {
	svc, _, _ := newDispatcherFixture(t)

	// The fake clock does not advance between sends, so the millisecond
	// timestamp alone would collide.
	first := svc.SendNotification(context.Background(), "a", Options{})
	second := svc.SendNotification(context.Background(), "b", Options{})
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Greater(t, second.ID, first.ID)
}

func TestAutoDismissAfterDelay(t *testing.T) {
	svc, _, clock := newDispatcherFixture(t)

	transient := svc.SendNotification(context.Background(), "transient", Options{})
	sticky := svc.SendNotification(context.Background(), "sticky", Options{RequireInteraction: true})
	require.NotNil(t, transient)
	require.NotNil(t, sticky)

	clock.Advance(autoDismissDelay)

	assert.Eventually(t, func() bool {
		history := svc.GetNotificationHistory()
		return history[0].Dismissed && !history[1].Dismissed
	}, time.Second, 10*time.Millisecond)
}

func TestHistoryKeepsLastFifty(t *testing.T) {
	svc, _, _ := newDispatcherFixture(t)

	for i := 0; i < historyLimit+10; i++ {
		require.NotNil(t, svc.SendNotification(context.Background(), fmt.Sprintf("n-%d", i), Options{}))
	}

	history := svc.GetNotificationHistory()
	require.Len(t, history, historyLimit)
	assert.Equal(t, "n-10", history[0].Title)
	assert.Equal(t, fmt.Sprintf("n-%d", historyLimit+9), history[len(history)-1].Title)
}

func TestClearOldNotifications(t *testing.T) {
	svc, _, clock := newDispatcherFixture(t)

	require.NotNil(t, svc.SendNotification(context.Background(), "old", Options{}))
	clock.Advance(25 * time.Hour)
	require.NotNil(t, svc.SendNotification(context.Background(), "recent", Options{}))

	svc.ClearOldNotifications()

	history := svc.GetNotificationHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "recent", history[0].Title)
}

func TestMarkRead(t *testing.T) {
	svc, _, _ := newDispatcherFixture(t)

	record := svc.SendNotification(context.Background(), "unread", Options{})
	require.NotNil(t, record)

	assert.True(t, svc.MarkRead(record.ID))
	assert.True(t, svc.GetNotificationHistory()[0].Read)
	assert.False(t, svc.MarkRead(record.ID+999))
}

func TestSubscriberPanicIsolation(t *testing.T) {
	svc, _, _ := newDispatcherFixture(t)

	var received []string
	svc.Subscribe(func(event string, data Event) {
		panic("bad subscriber")
	})
	svc.Subscribe(func(event string, data Event) {
		received = append(received, data.Title)
	})

	require.NotNil(t, svc.SendNotification(context.Background(), "survives", Options{}))
	assert.Equal(t, []string{"survives"}, received)
}

func TestUnsubscribeTwiceIsNoop(t *testing.T) {
	svc, _, _ := newDispatcherFixture(t)

	var first, second int
	unsubscribe := svc.Subscribe(func(event string, data Event) { first++ })
	svc.Subscribe(func(event string, data Event) { second++ })

	unsubscribe()
	unsubscribe()

	require.NotNil(t, svc.SendNotification(context.Background(), "after", Options{}))
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestRequestPermissionCachesResolution(t *testing.T) {
	pusher := &fakePusher{supported: true, permission: models.PermissionDefault, grantOnAsk: true}
	svc, err := NewDefaultNotificationService(pusher, NewMemorySettingsStore(), nil, nil, clockwork.NewFakeClock(), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, svc.RequestPermission(context.Background()))
	assert.True(t, svc.RequestPermission(context.Background()))

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	assert.Equal(t, 1, pusher.asks)
}

func TestRequestPermissionUnsupported(t *testing.T) {
	svc, err := NewDefaultNotificationService(UnsupportedPusher{}, NewMemorySettingsStore(), nil, nil, clockwork.NewFakeClock(), zap.NewNop())
	require.NoError(t, err)

	assert.False(t, svc.RequestPermission(context.Background()))
	assert.False(t, svc.IsEnabled())
}

func TestRepeatedPaymentAlertsShareTag(t *testing.T) {
	svc, pusher, _ := newDispatcherFixture(t)
	payment := models.UpcomingPayment{ID: 7, Description: "Rent", Amount: decimal.NewFromInt(1200), DaysUntilDue: 2}

	first := svc.NotifyPaymentDue(context.Background(), payment)
	second := svc.NotifyPaymentDue(context.Background(), payment)
	require.NotNil(t, first)
	require.NotNil(t, second)

	// The platform is invoked each time; the shared tag lets it collapse the
	// duplicate on the device.
	pushes := pusher.recorded()
	require.Len(t, pushes, 2)
	assert.Equal(t, pushes[0].Opts.Tag, pushes[1].Opts.Tag)
	assert.Equal(t, first.Tag, second.Tag)
}

func TestDomainAlertTags(t *testing.T) {
	svc, pusher, _ := newDispatcherFixture(t)
	ctx := context.Background()

	svc.NotifyPaymentDue(ctx, models.UpcomingPayment{ID: 7, Description: "Rent", Amount: decimal.NewFromInt(1200), DaysUntilDue: 2})
	svc.NotifyGoalAchieved(ctx, models.Goal{ID: 3, Name: "Vacation", TargetAmount: decimal.NewFromInt(5000)})
	svc.NotifyInvestmentUpdate(ctx, models.Investment{ID: 9, Name: "Index fund", CurrentValue: decimal.NewFromInt(10500), ReturnPercentage: 5.0})
	svc.NotifyBudgetAlert(ctx, models.Planning{Category: "groceries", SpentPercentage: 85})
	svc.NotifyTransactionAdded(ctx, models.Transaction{ID: 42, Description: "Salary", Amount: decimal.NewFromInt(3000)})

	pushes := pusher.recorded()
	require.Len(t, pushes, 5)
	assert.Equal(t, "payment-7", pushes[0].Opts.Tag)
	assert.True(t, pushes[0].Opts.RequireInteraction)
	assert.Equal(t, "goal-3", pushes[1].Opts.Tag)
	assert.Equal(t, "investment-9", pushes[2].Opts.Tag)
	assert.Contains(t, pushes[2].Opts.Body, "+5.00%")
	assert.Equal(t, "budget-groceries", pushes[3].Opts.Tag)
	assert.Equal(t, "transaction-42", pushes[4].Opts.Tag)
	assert.Contains(t, pushes[4].Opts.Body, "Income")
}
