package finance

import (
	"context"

	"fintrack/models"
	"fintrack/services/session"
)

// FinanceService is the typed surface over the upstream finance API. Every
// call goes through the session client, so token refresh and replay are
// transparent to callers.
type FinanceService interface {
	CurrentUser(ctx context.Context) (*models.User, error)

	Users(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, userID string, user models.User) error
	DeleteUser(ctx context.Context, userID string) error

	Transactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, tx models.Transaction) error
	UpdateTransaction(ctx context.Context, id int64, tx models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error

	CreditCards(ctx context.Context) ([]models.CreditCard, error)
	CreateCreditCard(ctx context.Context, card models.CreditCard) error
	UpdateCreditCard(ctx context.Context, id int64, card models.CreditCard) error
	DeleteCreditCard(ctx context.Context, id int64) error
	CreditCardTransactions(ctx context.Context, cardID int64) ([]models.Transaction, error)
	CreateCreditCardTransaction(ctx context.Context, cardID int64, tx models.Transaction) error

	Goals(ctx context.Context) ([]models.Goal, error)
	CreateGoal(ctx context.Context, goal models.Goal) error
	UpdateGoal(ctx context.Context, id int64, goal models.Goal) error
	DeleteGoal(ctx context.Context, id int64) error

	Investments(ctx context.Context) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, investment models.Investment) error
	UpdateInvestment(ctx context.Context, id int64, investment models.Investment) error
	DeleteInvestment(ctx context.Context, id int64) error

	ScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error)
	CreateScheduleEvent(ctx context.Context, event models.ScheduleEvent) error
	UpdateScheduleEvent(ctx context.Context, id int64, event models.ScheduleEvent) error
	DeleteScheduleEvent(ctx context.Context, id int64) error

	Plannings(ctx context.Context) ([]models.Planning, error)
	CreatePlanning(ctx context.Context, planning models.Planning) error
	UpdatePlanning(ctx context.Context, id int64, planning models.Planning) error
	DeletePlanning(ctx context.Context, id int64) error
}

// DefaultFinanceService is the production implementation.
type DefaultFinanceService struct {
	API *session.Client
}

func NewDefaultFinanceService(api *session.Client) *DefaultFinanceService {
	return &DefaultFinanceService{API: api}
}
