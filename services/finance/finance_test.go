package finance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/models"
	"fintrack/services/session"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func goalFixture() models.Goal {
	return models.Goal{Name: "Vacation", TargetAmount: decimal.NewFromInt(5000)}
}

func transactionFixture() models.Transaction {
	return models.Transaction{Description: "Groceries", Amount: decimal.NewFromInt(-85)}
}

func newFinanceFixture(t *testing.T, handler http.Handler) *DefaultFinanceService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryTokenStore()
	require.NoError(t, store.SetToken(context.Background(), "token-1"))
	client := session.NewClient(srv.URL, store, zap.NewNop(), clockwork.NewFakeClock())
	return NewDefaultFinanceService(client)
}

func TestTransactionsDecodesEnvelope(t *testing.T) {
	svc := newFinanceFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transactions", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[{"id":1,"description":"Salary","amount":"3000"},{"id":2,"description":"Rent","amount":"-1200"}]}`))
	}))

	transactions, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "Salary", transactions[0].Description)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromInt(3000)))
	assert.True(t, transactions[1].Amount.IsNegative())
}

func TestMutationRequiresAcknowledgement(t *testing.T) {
	svc := newFinanceFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/goals", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false}`))
	}))

	err := svc.CreateGoal(context.Background(), goalFixture())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goal creation")
}

func TestMutationSuccess(t *testing.T) {
	svc := newFinanceFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/goals/7", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Vacation", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, svc.UpdateGoal(context.Background(), 7, goalFixture()))
}

func TestCreditCardTransactionsNestedRoute(t *testing.T) {
	svc := newFinanceFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/credit-cards/3/transactions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[{"id":10,"description":"Groceries","amount":"-85.40"}]}`))
	}))

	transactions, err := svc.CreditCardTransactions(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.EqualValues(t, 10, transactions[0].ID)
}

func TestUpstreamErrorSurfaces(t *testing.T) {
	svc := newFinanceFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"amount is required"}`))
	}))

	err := svc.CreateTransaction(context.Background(), transactionFixture())
	require.Error(t, err)

	var apiErr *session.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "amount is required", apiErr.Message)
}
