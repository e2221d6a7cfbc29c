package response

import (
	"time"

	"github.com/mcoot/quizgame-accounts/internal/model"
	"github.com/mcoot/quizgame-accounts/internal/services/accounts"
)

// Account represents an account in API responses. The password hash is never
// exposed.
type Account struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	RegisteredAt   time.Time  `json:"registered_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	OwnedResources []string   `json:"owned_resources"`
	Friends        []string   `json:"friends"`
	PendingFriends []string   `json:"pending_friends"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	resp := Account{
		ID:             string(a.ID),
		Username:       a.Username,
		Role:           string(a.Role),
		Status:         string(a.Status),
		RegisteredAt:   a.RegisteredAt,
		OwnedResources: a.OwnedResources.Sorted(),
		Friends:        idStrings(a.Friends.Sorted()),
		PendingFriends: idStrings(a.PendingFriends.Sorted()),
	}
	if exp := a.ExpiresAt(accounts.TemporaryAccountLifetime); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	return resp
}

// AccountID is returned by endpoints that create or identify an account
type AccountID struct {
	ID string `json:"id"`
}

// AccountSummary pairs an id with its current username
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// FriendList lists one side of the friend graph
type FriendList struct {
	Accounts []AccountSummary `json:"accounts"`
}

// NewFriendList builds a FriendList
func NewFriendList(summaries []accounts.FriendSummary) FriendList {
	out := make([]AccountSummary, len(summaries))
	for i, s := range summaries {
		out[i] = AccountSummary{ID: string(s.ID), Username: s.Username}
	}
	return FriendList{Accounts: out}
}

// Resources lists the resources owned by an account
type Resources struct {
	Resources []string `json:"resources"`
}

func idStrings(ids []model.AccountID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
