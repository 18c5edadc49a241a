package finance

import (
	"context"
	"fmt"

	"fintrack/models"
)

// mutationResponse is the upstream envelope on create/update/delete calls.
type mutationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func checkMutation(resp mutationResponse, action string) error {
	if !resp.Success {
		return fmt.Errorf("%s was not acknowledged by the API", action)
	}
	return nil
}

func (s *DefaultFinanceService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.API.CurrentUser(ctx)
}

func (s *DefaultFinanceService) Users(ctx context.Context) ([]models.User, error) {
	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := s.API.Get(ctx, "/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (s *DefaultFinanceService) CreateUser(ctx context.Context, user models.User) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/users", user, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "user creation")
}

func (s *DefaultFinanceService) UpdateUser(ctx context.Context, userID string, user models.User) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, "/users/"+userID, user, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "user update")
}

func (s *DefaultFinanceService) DeleteUser(ctx context.Context, userID string) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, "/users/"+userID, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "user deletion")
}

func (s *DefaultFinanceService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := s.API.Get(ctx, "/transactions", &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (s *DefaultFinanceService) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/transactions", tx, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "transaction creation")
}

func (s *DefaultFinanceService) UpdateTransaction(ctx context.Context, id int64, tx models.Transaction) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, fmt.Sprintf("/transactions/%d", id), tx, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "transaction update")
}

func (s *DefaultFinanceService) DeleteTransaction(ctx context.Context, id int64) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, fmt.Sprintf("/transactions/%d", id), &resp); err != nil {
		return err
	}
	return checkMutation(resp, "transaction deletion")
}

func (s *DefaultFinanceService) CreditCards(ctx context.Context) ([]models.CreditCard, error) {
	var resp struct {
		Cards []models.CreditCard `json:"cards"`
	}
	if err := s.API.Get(ctx, "/credit-cards", &resp); err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

func (s *DefaultFinanceService) CreateCreditCard(ctx context.Context, card models.CreditCard) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/credit-cards", card, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "credit card creation")
}

func (s *DefaultFinanceService) UpdateCreditCard(ctx context.Context, id int64, card models.CreditCard) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, fmt.Sprintf("/credit-cards/%d", id), card, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "credit card update")
}

func (s *DefaultFinanceService) DeleteCreditCard(ctx context.Context, id int64) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, fmt.Sprintf("/credit-cards/%d", id), &resp); err != nil {
		return err
	}
	return checkMutation(resp, "credit card deletion")
}

func (s *DefaultFinanceService) CreditCardTransactions(ctx context.Context, cardID int64) ([]models.Transaction, error) {
	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := s.API.Get(ctx, fmt.Sprintf("/credit-cards/%d/transactions", cardID), &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (s *DefaultFinanceService) CreateCreditCardTransaction(ctx context.Context, cardID int64, tx models.Transaction) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, fmt.Sprintf("/credit-cards/%d/transactions", cardID), tx, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "credit card transaction creation")
}

func (s *DefaultFinanceService) Goals(ctx context.Context) ([]models.Goal, error) {
	var resp struct {
		Goals []models.Goal `json:"goals"`
	}
	if err := s.API.Get(ctx, "/goals", &resp); err != nil {
		return nil, err
	}
	return resp.Goals, nil
}

func (s *DefaultFinanceService) CreateGoal(ctx context.Context, goal models.Goal) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/goals", goal, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "goal creation")
}

func (s *DefaultFinanceService) UpdateGoal(ctx context.Context, id int64, goal models.Goal) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, fmt.Sprintf("/goals/%d", id), goal, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "goal update")
}

func (s *DefaultFinanceService) DeleteGoal(ctx context.Context, id int64) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, fmt.Sprintf("/goals/%d", id), &resp); err != nil {
		return err
	}
	return checkMutation(resp, "goal deletion")
}

func (s *DefaultFinanceService) Investments(ctx context.Context) ([]models.Investment, error) {
	var resp struct {
		Investments []models.Investment `json:"investments"`
	}
	if err := s.API.Get(ctx, "/investments", &resp); err != nil {
		return nil, err
	}
	return resp.Investments, nil
}

func (s *DefaultFinanceService) CreateInvestment(ctx context.Context, investment models.Investment) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/investments", investment, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "investment creation")
}

func (s *DefaultFinanceService) UpdateInvestment(ctx context.Context, id int64, investment models.Investment) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, fmt.Sprintf("/investments/%d", id), investment, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "investment update")
}

func (s *DefaultFinanceService) DeleteInvestment(ctx context.Context, id int64) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, fmt.Sprintf("/investments/%d", id), &resp); err != nil {
		return err
	}
	return checkMutation(resp, "investment deletion")
}

func (s *DefaultFinanceService) ScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error) {
	var resp struct {
		Events []models.ScheduleEvent `json:"events"`
	}
	if err := s.API.Get(ctx, "/schedule", &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (s *DefaultFinanceService) CreateScheduleEvent(ctx context.Context, event models.ScheduleEvent) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/schedule", event, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "schedule event creation")
}

func (s *DefaultFinanceService) UpdateScheduleEvent(ctx context.Context, id int64, event models.ScheduleEvent) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, fmt.Sprintf("/schedule/%d", id), event, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "schedule event update")
}

func (s *DefaultFinanceService) DeleteScheduleEvent(ctx context.Context, id int64) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, fmt.Sprintf("/schedule/%d", id), &resp); err != nil {
		return err
	}
	return checkMutation(resp, "schedule event deletion")
}

func (s *DefaultFinanceService) Plannings(ctx context.Context) ([]models.Planning, error) {
	var resp struct {
		Plannings []models.Planning `json:"plannings"`
	}
	if err := s.API.Get(ctx, "/planning", &resp); err != nil {
		return nil, err
	}
	return resp.Plannings, nil
}

func (s *DefaultFinanceService) CreatePlanning(ctx context.Context, planning models.Planning) error {
	var resp mutationResponse
	if err := s.API.Post(ctx, "/planning", planning, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "planning creation")
}

func (s *DefaultFinanceService) UpdatePlanning(ctx context.Context, id int64, planning models.Planning) error {
	var resp mutationResponse
	if err := s.API.Put(ctx, fmt.Sprintf("/planning/%d", id), planning, &resp); err != nil {
		return err
	}
	return checkMutation(resp, "planning update")
}

func (s *DefaultFinanceService) DeletePlanning(ctx context.Context, id int64) error {
	var resp mutationResponse
	if err := s.API.Delete(ctx, fmt.Sprintf("/planning/%d", id), &resp); err != nil {
		return err
	}
	return checkMutation(resp, "planning deletion")
}
