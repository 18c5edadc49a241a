package session

import (
	"errors"
	"fmt"
)

// ErrSessionExpired signals that the refresh protocol was exhausted. The
// session has already been torn down when this error is returned.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// AuthError indicates a rejected login: bad credentials or a malformed
// response from the upstream API.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError carries any other non-2xx response from the upstream API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}
