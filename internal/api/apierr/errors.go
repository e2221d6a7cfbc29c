package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidRole            = "INVALID_ROLE"
	CodeUnsupportedRole        = "UNSUPPORTED_ROLE"
	CodeNotTrialAccount        = "NOT_TRIAL_ACCOUNT"
	CodeSelfFriendRequest      = "SELF_FRIEND_REQUEST"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeUsernameNotFound       = "USERNAME_NOT_FOUND"
	CodeUsernameExists         = "USERNAME_EXISTS"
	CodeUsernameTaken          = "USERNAME_TAKEN"
	CodeIncorrectPassword      = "INCORRECT_PASSWORD"
	CodeAccountExpired         = "ACCOUNT_EXPIRED"
	CodeRateLimited            = "RATE_LIMITED"
	CodePersistenceUnavailable = "PERSISTENCE_UNAVAILABLE"
	CodeStoreDiverged          = "STORE_DIVERGED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status WriteError would use for err
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Divergence wraps ErrPersistenceUnavailable too, so it is checked first
	switch {
	case errors.Is(err, model.ErrStoreDiverged):
		return &httpError{http.StatusInternalServerError, APIError{CodeStoreDiverged, "Account removed but the store could not be updated"}}
	case errors.Is(err, model.ErrPersistenceUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodePersistenceUnavailable, "Change applied but could not be saved"}}

	case errors.Is(err, model.ErrInvalidUserID):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrInvalidUsername):
		return &httpError{http.StatusNotFound, APIError{CodeUsernameNotFound, "Username not found"}}
	case errors.Is(err, model.ErrDuplicateUsername):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username is taken by another account"}}
	case errors.Is(err, model.ErrIncorrectPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeIncorrectPassword, "Incorrect password"}}
	case errors.Is(err, model.ErrAccountExpired):
		return &httpError{http.StatusForbidden, APIError{CodeAccountExpired, "Account has expired"}}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Role must be permanent or temporary"}}
	case errors.Is(err, model.ErrUnsupportedRoleForRegistration):
		return &httpError{http.StatusBadRequest, APIError{CodeUnsupportedRole, "Trial accounts cannot be registered"}}
	case errors.Is(err, model.ErrUnsupportedRoleForPromotion):
		return &httpError{http.StatusBadRequest, APIError{CodeNotTrialAccount, "Only trial accounts can be promoted"}}
	case errors.Is(err, model.ErrSelfFriendRequest):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfFriendRequest, "Cannot send a friend request to yourself"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewRateLimitedError creates a too many requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many attempts, try again later"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
