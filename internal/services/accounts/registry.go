package accounts

import (
	"slices"
	"strings"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

// registry pairs the account records with the username index. It has no lock
// of its own: the Manager's mutex guards both maps together so they can never
// be observed out of step.
type registry struct {
	accounts  map[model.AccountID]*model.Account
	usernames map[string]model.AccountID
}

func newRegistry() *registry {
	return &registry{
		accounts:  make(map[model.AccountID]*model.Account),
		usernames: make(map[string]model.AccountID),
	}
}

func (r *registry) insert(a *model.Account) error {
	if _, ok := r.usernames[a.Username]; ok {
		return model.ErrDuplicateUsername
	}
	r.accounts[a.ID] = a
	r.usernames[a.Username] = a.ID
	return nil
}

func (r *registry) get(id model.AccountID) (*model.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, model.ErrInvalidUserID
	}
	return a, nil
}

func (r *registry) idByUsername(username string) (model.AccountID, error) {
	id, ok := r.usernames[username]
	if !ok {
		return "", model.ErrInvalidUsername
	}
	return id, nil
}

func (r *registry) usernameTaken(username string) bool {
	_, ok := r.usernames[username]
	return ok
}

func (r *registry) remove(id model.AccountID) (*model.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, model.ErrInvalidUserID
	}
	delete(r.accounts, id)
	delete(r.usernames, a.Username)
	return a, nil
}

// rename moves an account to a new username. Renaming to the current name is
// a no-op.
func (r *registry) rename(id model.AccountID, username string) error {
	a, ok := r.accounts[id]
	if !ok {
		return model.ErrInvalidUserID
	}
	if owner, taken := r.usernames[username]; taken {
		if owner == id {
			return nil
		}
		return model.ErrUsernameTaken
	}
	delete(r.usernames, a.Username)
	r.usernames[username] = id
	a.Username = username
	return nil
}

func (r *registry) size() int {
	return len(r.accounts)
}

// forgetRelations removes id from every account's friend and pending sets
// and returns the accounts that changed, ordered by id
func (r *registry) forgetRelations(id model.AccountID) []*model.Account {
	var touched []*model.Account
	for _, a := range r.accounts {
		removedFriend := a.Friends.Remove(id)
		removedPending := a.PendingFriends.Remove(id)
		if removedFriend || removedPending {
			touched = append(touched, a)
		}
	}
	slices.SortFunc(touched, func(a, b *model.Account) int { return strings.Compare(string(a.ID), string(b.ID)) })
	return touched
}

// dropDangling removes relations to ids that are not in the registry and
// returns how many were removed
func (r *registry) dropDangling(a *model.Account) int {
	dropped := 0
	for _, set := range []model.Set[model.AccountID]{a.Friends, a.PendingFriends} {
		for other := range set {
			if _, ok := r.accounts[other]; !ok {
				delete(set, other)
				dropped++
			}
		}
	}
	return dropped
}
