package accounts

import (
	"context"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

// Friend relations are directed: every operation changes one account's own
// sets only. A confirmed friendship seen from both sides needs both accounts
// to accept.

// SendFriendRequest adds the sender to the receiver's pending requests.
// Repeated requests, and requests to an existing friend, are absorbed.
func (m *Manager) SendFriendRequest(ctx context.Context, senderID model.AccountID, receiverUsername string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.reg.get(senderID); err != nil {
		return err
	}
	receiverID, err := m.reg.idByUsername(receiverUsername)
	if err != nil {
		return err
	}
	if receiverID == senderID {
		return model.ErrSelfFriendRequest
	}

	receiver := m.reg.accounts[receiverID]
	if receiver.Friends.Has(senderID) || !receiver.PendingFriends.Add(senderID) {
		return nil
	}
	return m.persist(ctx, receiver, "send_friend_request")
}

// AcceptFriendRequest moves the sender from the owner's pending requests to
// the owner's friends
func (m *Manager) AcceptFriendRequest(ctx context.Context, ownerID, senderID model.AccountID) error {
	return m.mutateRelation(ctx, ownerID, senderID, "accept_friend_request", func(owner *model.Account) bool {
		removed := owner.PendingFriends.Remove(senderID)
		added := owner.Friends.Add(senderID)
		return removed || added
	})
}

// RejectFriendRequest drops the sender from the owner's pending requests
func (m *Manager) RejectFriendRequest(ctx context.Context, ownerID, senderID model.AccountID) error {
	return m.mutateRelation(ctx, ownerID, senderID, "reject_friend_request", func(owner *model.Account) bool {
		return owner.PendingFriends.Remove(senderID)
	})
}

// RemoveFriend drops friendID from the owner's friends. The other account's
// friend list is left alone.
func (m *Manager) RemoveFriend(ctx context.Context, ownerID, friendID model.AccountID) error {
	return m.mutateRelation(ctx, ownerID, friendID, "remove_friend", func(owner *model.Account) bool {
		return owner.Friends.Remove(friendID)
	})
}

// AcceptFriendRequestByUsername is AcceptFriendRequest with the sender named
// by username
func (m *Manager) AcceptFriendRequestByUsername(ctx context.Context, ownerID model.AccountID, senderUsername string) error {
	senderID, err := m.GetUserID(senderUsername)
	if err != nil {
		return err
	}
	return m.AcceptFriendRequest(ctx, ownerID, senderID)
}

// RejectFriendRequestByUsername is RejectFriendRequest with the sender named
// by username
func (m *Manager) RejectFriendRequestByUsername(ctx context.Context, ownerID model.AccountID, senderUsername string) error {
	senderID, err := m.GetUserID(senderUsername)
	if err != nil {
		return err
	}
	return m.RejectFriendRequest(ctx, ownerID, senderID)
}

// RemoveFriendByUsername is RemoveFriend with the friend named by username
func (m *Manager) RemoveFriendByUsername(ctx context.Context, ownerID model.AccountID, friendUsername string) error {
	friendID, err := m.GetUserID(friendUsername)
	if err != nil {
		return err
	}
	return m.RemoveFriend(ctx, ownerID, friendID)
}

// Friends returns the sorted ids of the account's friends
func (m *Manager) Friends(id model.AccountID) ([]model.AccountID, error) {
	return m.relationIDs(id, func(a *model.Account) model.Set[model.AccountID] { return a.Friends })
}

// PendingFriends returns the sorted ids of accounts waiting for an answer
func (m *Manager) PendingFriends(id model.AccountID) ([]model.AccountID, error) {
	return m.relationIDs(id, func(a *model.Account) model.Set[model.AccountID] { return a.PendingFriends })
}

// FriendUsernames returns the usernames of the account's friends. Friends
// whose accounts were deleted are skipped.
func (m *Manager) FriendUsernames(id model.AccountID) ([]string, error) {
	return m.relationUsernames(id, func(a *model.Account) model.Set[model.AccountID] { return a.Friends })
}

// PendingFriendUsernames returns the usernames behind pending requests,
// skipping deleted accounts
func (m *Manager) PendingFriendUsernames(id model.AccountID) ([]string, error) {
	return m.relationUsernames(id, func(a *model.Account) model.Set[model.AccountID] { return a.PendingFriends })
}

// FriendSummary pairs a related account's id with its current username
type FriendSummary struct {
	ID       model.AccountID
	Username string
}

// FriendSummaries returns the account's friends as id/username pairs,
// sorted by id and read under one lock
func (m *Manager) FriendSummaries(id model.AccountID) ([]FriendSummary, error) {
	return m.relationSummaries(id, func(a *model.Account) model.Set[model.AccountID] { return a.Friends })
}

// PendingFriendSummaries returns the senders of pending requests as
// id/username pairs
func (m *Manager) PendingFriendSummaries(id model.AccountID) ([]FriendSummary, error) {
	return m.relationSummaries(id, func(a *model.Account) model.Set[model.AccountID] { return a.PendingFriends })
}

// mutateRelation checks both ids exist before changing the owner
func (m *Manager) mutateRelation(ctx context.Context, ownerID, otherID model.AccountID, op string, fn func(*model.Account) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, err := m.reg.get(ownerID)
	if err != nil {
		return err
	}
	if _, err := m.reg.get(otherID); err != nil {
		return err
	}
	if !fn(owner) {
		return nil
	}
	return m.persist(ctx, owner, op)
}

func (m *Manager) relationIDs(id model.AccountID, set func(*model.Account) model.Set[model.AccountID]) ([]model.AccountID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return nil, err
	}
	return set(account).Sorted(), nil
}

func (m *Manager) relationUsernames(id model.AccountID, set func(*model.Account) model.Set[model.AccountID]) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, otherID := range set(account).Sorted() {
		if other, ok := m.reg.accounts[otherID]; ok {
			names = append(names, other.Username)
		}
	}
	return names, nil
}

func (m *Manager) relationSummaries(id model.AccountID, set func(*model.Account) model.Set[model.AccountID]) ([]FriendSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return nil, err
	}
	summaries := []FriendSummary{}
	for _, otherID := range set(account).Sorted() {
		if other, ok := m.reg.accounts[otherID]; ok {
			summaries = append(summaries, FriendSummary{ID: otherID, Username: other.Username})
		}
	}
	return summaries, nil
}
