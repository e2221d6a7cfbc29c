package handler

import (
	"net/http"

	"github.com/mcoot/quizgame-accounts/internal/api/request"
	"github.com/mcoot/quizgame-accounts/internal/api/response"
	"github.com/mcoot/quizgame-accounts/internal/model"
	"github.com/mcoot/quizgame-accounts/internal/services/accounts"
)

// FriendHandler handles friend graph endpoints. The {id} in every path is the
// account whose own lists are read or changed.
type FriendHandler struct {
	accounts *accounts.Manager
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(manager *accounts.Manager) *FriendHandler {
	return &FriendHandler{
		accounts: manager,
	}
}

// List handles GET /api/v1/accounts/{id}/friends
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	h.writeList(w, id, h.accounts.FriendSummaries)
}

// ListPending handles GET /api/v1/accounts/{id}/friends/pending
func (h *FriendHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	h.writeList(w, id, h.accounts.PendingFriendSummaries)
}

// SendRequest handles POST /api/v1/accounts/{id}/friends/requests
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req request.FriendRequestRequest
	if !decode(w, r, &req) {
		return
	}
	if !required(w, "username", req.Username) {
		return
	}

	if err := h.accounts.SendFriendRequest(r.Context(), accountID(r), req.Username); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Accept handles POST /api/v1/accounts/{id}/friends/requests/{sender}/accept
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	if err := h.accounts.AcceptFriendRequestByUsername(r.Context(), id, pathVar(r, "sender")); err != nil {
		WriteError(w, err)
		return
	}
	h.writeList(w, id, h.accounts.FriendSummaries)
}

// Reject handles POST /api/v1/accounts/{id}/friends/requests/{sender}/reject
func (h *FriendHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	if err := h.accounts.RejectFriendRequestByUsername(r.Context(), id, pathVar(r, "sender")); err != nil {
		WriteError(w, err)
		return
	}
	h.writeList(w, id, h.accounts.PendingFriendSummaries)
}

// Remove handles DELETE /api/v1/accounts/{id}/friends/{friend}
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.RemoveFriendByUsername(r.Context(), accountID(r), pathVar(r, "friend")); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *FriendHandler) writeList(
	w http.ResponseWriter,
	id model.AccountID,
	list func(model.AccountID) ([]accounts.FriendSummary, error),
) {
	summaries, err := list(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.NewFriendList(summaries))
}
