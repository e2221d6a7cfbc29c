package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/mcoot/quizgame-accounts/internal/model"
	"github.com/mcoot/quizgame-accounts/internal/storage"
)

// ErrStoreDown is returned by FlakyStore when a failure is switched on
var ErrStoreDown = errors.New("store unavailable")

// FlakyStore wraps an AccountStore, records the writes that reach it and can
// be told to fail them
type FlakyStore struct {
	next storage.AccountStore

	mu          sync.Mutex
	failLoads   bool
	failSaves   bool
	failDeletes bool
	saved       []model.AccountID
	deleted     []model.AccountID
}

var _ storage.AccountStore = (*FlakyStore)(nil)

// NewFlakyStore wraps next
func NewFlakyStore(next storage.AccountStore) *FlakyStore {
	return &FlakyStore{next: next}
}

// FailLoads makes LoadAllAccounts and LoadAccountCount fail
func (s *FlakyStore) FailLoads(fail bool) {
	s.mu.Lock()
	s.failLoads = fail
	s.mu.Unlock()
}

// FailSaves makes SaveAccount fail
func (s *FlakyStore) FailSaves(fail bool) {
	s.mu.Lock()
	s.failSaves = fail
	s.mu.Unlock()
}

// FailDeletes makes DeleteAccount fail
func (s *FlakyStore) FailDeletes(fail bool) {
	s.mu.Lock()
	s.failDeletes = fail
	s.mu.Unlock()
}

// Saved returns the ids passed to successful SaveAccount calls, in order
func (s *FlakyStore) Saved() []model.AccountID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AccountID(nil), s.saved...)
}

// Deleted returns the ids passed to successful DeleteAccount calls, in order
func (s *FlakyStore) Deleted() []model.AccountID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AccountID(nil), s.deleted...)
}

func (s *FlakyStore) LoadAllAccounts(ctx context.Context) ([]*model.Account, error) {
	s.mu.Lock()
	fail := s.failLoads
	s.mu.Unlock()
	if fail {
		return nil, ErrStoreDown
	}
	return s.next.LoadAllAccounts(ctx)
}

func (s *FlakyStore) LoadAccountCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	fail := s.failLoads
	s.mu.Unlock()
	if fail {
		return 0, ErrStoreDown
	}
	return s.next.LoadAccountCount(ctx)
}

func (s *FlakyStore) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		return ErrStoreDown
	}
	if err := s.next.SaveAccount(ctx, account); err != nil {
		return err
	}
	s.saved = append(s.saved, account.ID)
	return nil
}

func (s *FlakyStore) DeleteAccount(ctx context.Context, id model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeletes {
		return ErrStoreDown
	}
	if err := s.next.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}
