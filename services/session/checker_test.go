package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newCheckerFixture(t *testing.T, baseURL string) (*Client, *MemoryTokenStore, clockwork.FakeClock) {
	t.Helper()
	store := NewMemoryTokenStore()
	clock := clockwork.NewFakeClock()
	client := NewClient(baseURL, store, zap.NewNop(), clock)
	t.Cleanup(func() { client.stopValidityCheck() })
	return client, store, clock
}

func TestValidityCheckRefreshesNearExpiry(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "token-2"})
	}))
	defer srv.Close()

	client, store, clock := newCheckerFixture(t, srv.URL)

	// Expires just inside the 600-second lookahead window.
	require.NoError(t, store.SetToken(context.Background(), signedToken(t, clock.Now().Add(599*time.Second))))
	require.NoError(t, store.SetRefreshToken(context.Background(), "refresh-1"))

	client.checkTokenValidity(context.Background())

	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
}

func TestValidityCheckLeavesFreshTokenAlone(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "token-2"})
	}))
	defer srv.Close()

	client, store, clock := newCheckerFixture(t, srv.URL)

	// Expires just outside the lookahead window.
	original := signedToken(t, clock.Now().Add(601*time.Second))
	require.NoError(t, store.SetToken(context.Background(), original))
	require.NoError(t, store.SetRefreshToken(context.Background(), "refresh-1"))

	client.checkTokenValidity(context.Background())

	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls))
	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, original, token)
}

func TestValidityCheckIgnoresUndecodableToken(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "token-2"})
	}))
	defer srv.Close()

	client, store, _ := newCheckerFixture(t, srv.URL)
	require.NoError(t, store.SetToken(context.Background(), "opaque-not-a-jwt"))

	client.checkTokenValidity(context.Background())

	// Undecodable tokens are left to the reactive 401 path.
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls))
	assert.True(t, client.IsAuthenticated(context.Background()))
}

func TestValidityCheckerStartStop(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "token-2"})
	}))
	defer srv.Close()

	client, store, clock := newCheckerFixture(t, srv.URL)
	require.NoError(t, store.SetToken(context.Background(), signedToken(t, clock.Now().Add(9*time.Minute))))
	require.NoError(t, store.SetRefreshToken(context.Background(), "refresh-1"))

	client.startValidityCheck()
	client.startValidityCheck() // second start is a no-op

	// The checker polls every five minutes.
	clock.BlockUntil(1)
	clock.Advance(validityCheckInterval)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&refreshCalls) == 1
	}, time.Second, 10*time.Millisecond)

	client.stopValidityCheck()
	client.stopValidityCheck() // second stop is a no-op
}
