package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrInvalidUserID, http.StatusNotFound},
		{model.ErrInvalidUsername, http.StatusNotFound},
		{model.ErrDuplicateUsername, http.StatusConflict},
		{model.ErrUsernameTaken, http.StatusConflict},
		{model.ErrIncorrectPassword, http.StatusUnauthorized},
		{model.ErrAccountExpired, http.StatusForbidden},
		{model.ErrInvalidRole, http.StatusBadRequest},
		{model.ErrUnsupportedRoleForRegistration, http.StatusBadRequest},
		{model.ErrUnsupportedRoleForPromotion, http.StatusBadRequest},
		{model.ErrSelfFriendRequest, http.StatusBadRequest},
		{fmt.Errorf("%w: boom", model.ErrPersistenceUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", model.ErrStoreDiverged, model.ErrPersistenceUnavailable), http.StatusInternalServerError},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{NewRateLimitedError(), http.StatusTooManyRequests},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, fmt.Errorf("lookup: %w", model.ErrInvalidUsername))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeUsernameNotFound, resp.Error.Code)
}
