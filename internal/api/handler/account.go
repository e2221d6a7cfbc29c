package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/quizgame-accounts/internal/api/request"
	"github.com/mcoot/quizgame-accounts/internal/api/response"
	"github.com/mcoot/quizgame-accounts/internal/model"
	"github.com/mcoot/quizgame-accounts/internal/services/accounts"
)

// AccountHandler handles account lifecycle endpoints
type AccountHandler struct {
	accounts *accounts.Manager
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(manager *accounts.Manager) *AccountHandler {
	return &AccountHandler{
		accounts: manager,
	}
}

func accountID(r *http.Request) model.AccountID {
	return model.AccountID(pathVar(r, "id"))
}

// pathVar returns a decoded route variable. The router matches on the
// encoded path so a username may contain "/".
func pathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// Register handles POST /api/v1/accounts
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if !required(w, "username", req.Username, "password", req.Password) {
		return
	}

	role := model.RolePermanent
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			WriteError(w, err)
			return
		}
		role = parsed
	}

	id, err := h.accounts.CreateUser(r.Context(), req.Username, req.Password, role)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AccountID{ID: string(id)})
}

// CreateTrial handles POST /api/v1/accounts/trial
func (h *AccountHandler) CreateTrial(w http.ResponseWriter, r *http.Request) {
	id := h.accounts.CreateTrialUser(r.Context())

	username, err := h.accounts.GetUsername(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AccountSummary{ID: string(id), Username: username})
}

// Login handles POST /api/v1/accounts/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if !required(w, "username", req.Username, "password", req.Password) {
		return
	}

	id, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccountSummary{ID: string(id), Username: req.Username})
}

// Logout handles POST /api/v1/accounts/{id}/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context(), accountID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Get handles GET /api/v1/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetUser(accountID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AccountFromModel(account))
}

// GetByUsername handles GET /api/v1/accounts/by-username/{username}
func (h *AccountHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := pathVar(r, "username")

	id, err := h.accounts.GetUserID(username)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AccountSummary{ID: string(id), Username: username})
}

// Delete handles DELETE /api/v1/accounts/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteUser(r.Context(), accountID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// EditPassword handles PUT /api/v1/accounts/{id}/password
func (h *AccountHandler) EditPassword(w http.ResponseWriter, r *http.Request) {
	var req request.EditPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if !required(w, "new_password", req.NewPassword) {
		return
	}

	if err := h.accounts.EditPassword(r.Context(), accountID(r), req.OldPassword, req.NewPassword); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// EditUsername handles PUT /api/v1/accounts/{id}/username
func (h *AccountHandler) EditUsername(w http.ResponseWriter, r *http.Request) {
	var req request.EditUsernameRequest
	if !decode(w, r, &req) {
		return
	}
	if !required(w, "username", req.Username) {
		return
	}

	if err := h.accounts.EditUsername(r.Context(), accountID(r), req.Username); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Promote handles POST /api/v1/accounts/{id}/promote
func (h *AccountHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req request.PromoteRequest
	if !decode(w, r, &req) {
		return
	}
	if !required(w, "username", req.Username, "password", req.Password) {
		return
	}

	id := accountID(r)
	if err := h.accounts.PromoteTrialUser(r.Context(), id, req.Username, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	account, err := h.accounts.GetUser(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AccountFromModel(account))
}

// AddResource handles POST /api/v1/accounts/{id}/resources/{resource_id}
func (h *AccountHandler) AddResource(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	if err := h.accounts.AddOwnedResource(r.Context(), id, pathVar(r, "resource_id")); err != nil {
		WriteError(w, err)
		return
	}
	h.writeResources(w, id)
}

// RemoveResource handles DELETE /api/v1/accounts/{id}/resources/{resource_id}
func (h *AccountHandler) RemoveResource(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	if err := h.accounts.RemoveOwnedResource(r.Context(), id, pathVar(r, "resource_id")); err != nil {
		WriteError(w, err)
		return
	}
	h.writeResources(w, id)
}

func (h *AccountHandler) writeResources(w http.ResponseWriter, id model.AccountID) {
	owned, err := h.accounts.OwnedResources(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Resources{Resources: owned})
}
