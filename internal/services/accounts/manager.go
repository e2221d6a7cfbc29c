// Package accounts owns the in-memory account records, the username index and
// the friend graph, and keeps the durable store in step with them.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/quizgame-accounts/internal/dependencies/clock"
	"github.com/mcoot/quizgame-accounts/internal/dependencies/password"
	"github.com/mcoot/quizgame-accounts/internal/model"
	"github.com/mcoot/quizgame-accounts/internal/storage"
)

// TemporaryAccountLifetime is how long a temporary account can log in after
// registering. Expiry is only checked at login.
const TemporaryAccountLifetime = 30 * 24 * time.Hour

// TrialUsernamePrefix prefixes the generated username of trial accounts
const TrialUsernamePrefix = "TrialUser"

// Manager is the single gateway for reading and mutating accounts.
//
// All writes take mu exclusively and keep it through the store call, so
// durable writes happen in the same order as the in-memory changes.
// Trial accounts, login and logout never touch the store.
type Manager struct {
	store  storage.AccountStore
	clock  clock.Clock
	hasher password.Hasher
	logger *slog.Logger
	ids    *idAllocator

	mu  sync.RWMutex
	reg *registry
}

// New loads every persisted account and returns a ready Manager
func New(ctx context.Context, store storage.AccountStore, clk clock.Clock, hasher password.Hasher, logger *slog.Logger) (*Manager, error) {
	loaded, err := store.LoadAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load accounts: %w", model.ErrPersistenceUnavailable, err)
	}
	count, err := store.LoadAccountCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count accounts: %w", model.ErrPersistenceUnavailable, err)
	}

	m := &Manager{
		store:  store,
		clock:  clk,
		hasher: hasher,
		logger: logger,
		ids:    newIDAllocator(int64(count) + 1),
		reg:    newRegistry(),
	}

	for _, a := range loaded {
		a.Normalize()
		a.Status = model.StatusOffline
		if err := m.reg.insert(a); err != nil {
			return nil, fmt.Errorf("restore account %s (%q): %w", a.ID, a.Username, err)
		}
		m.ids.Observe(a.ID)
	}

	// Relations to accounts missing from the store are dropped
	for _, a := range m.reg.accounts {
		dropped := m.reg.dropDangling(a)
		if dropped > 0 {
			logger.Warn("dropped relations to missing accounts",
				slog.String("account_id", string(a.ID)),
				slog.Int("dropped", dropped),
			)
		}
	}

	logger.Info("accounts loaded", slog.Int("count", len(loaded)))
	return m, nil
}

// CreateUser registers a permanent or temporary account and returns its id.
// If the store write fails the account stays in memory and its id is returned
// together with the error.
func (m *Manager) CreateUser(ctx context.Context, username, pass string, role model.Role) (model.AccountID, error) {
	switch role {
	case model.RolePermanent, model.RoleTemporary:
	case model.RoleTrial:
		return "", model.ErrUnsupportedRoleForRegistration
	default:
		return "", fmt.Errorf("%w: %q", model.ErrInvalidRole, role)
	}

	// Check early so a taken name does not cost a bcrypt round
	if m.usernameTaken(username) {
		return "", model.ErrDuplicateUsername
	}

	hash, err := m.hasher.Hash(pass)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reg.usernameTaken(username) {
		return "", model.ErrDuplicateUsername
	}

	account := model.NewAccount(m.ids.Next(), username, hash, role, m.clock.Now())
	if err := m.reg.insert(account); err != nil {
		return "", err
	}

	m.logger.Info("account created",
		slog.String("account_id", string(account.ID)),
		slog.String("role", string(role)),
	)

	return account.ID, m.persist(ctx, account, "create")
}

// CreateTrialUser creates a credential-less trial account that is kept in
// memory only
func (m *Manager) CreateTrialUser(ctx context.Context) model.AccountID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.ids.Next()
	username := TrialUsernamePrefix + string(id)
	for n := 1; m.reg.usernameTaken(username); n++ {
		username = fmt.Sprintf("%s%s_%d", TrialUsernamePrefix, id, n)
	}

	// insert cannot fail: the username was checked under the same lock
	_ = m.reg.insert(model.NewAccount(id, username, "", model.RoleTrial, m.clock.Now()))

	m.logger.Debug("trial account created", slog.String("account_id", string(id)))
	return id
}

// Login checks credentials and marks the account online
func (m *Manager) Login(ctx context.Context, username, pass string) (model.AccountID, error) {
	m.mu.RLock()
	id, err := m.reg.idByUsername(username)
	if err != nil {
		m.mu.RUnlock()
		return "", err
	}
	account := m.reg.accounts[id]
	hash, role, registeredAt := account.PasswordHash, account.Role, account.RegisteredAt
	m.mu.RUnlock()

	if !m.hasher.Matches(hash, pass) {
		return "", model.ErrIncorrectPassword
	}
	if role == model.RoleTemporary && m.clock.Now().After(registeredAt.Add(TemporaryAccountLifetime)) {
		return "", model.ErrAccountExpired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// The account may have been renamed or deleted while the hash was checked
	account, err = m.reg.get(id)
	if err != nil || account.Username != username {
		return "", model.ErrInvalidUsername
	}
	account.Status = model.StatusOnline
	return id, nil
}

// Logout marks the account offline. Logging out twice is fine.
func (m *Manager) Logout(ctx context.Context, id model.AccountID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.reg.get(id)
	if err != nil {
		return err
	}
	account.Status = model.StatusOffline
	return nil
}

// EditPassword replaces the credential after checking the current one
func (m *Manager) EditPassword(ctx context.Context, id model.AccountID, oldPass, newPass string) error {
	m.mu.RLock()
	account, err := m.reg.get(id)
	if err != nil {
		m.mu.RUnlock()
		return err
	}
	oldHash := account.PasswordHash
	m.mu.RUnlock()

	if !m.hasher.Matches(oldHash, oldPass) {
		return model.ErrIncorrectPassword
	}
	newHash, err := m.hasher.Hash(newPass)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, err = m.reg.get(id)
	if err != nil {
		return err
	}
	// A concurrent change means oldPass was checked against a stale credential
	if account.PasswordHash != oldHash {
		return model.ErrIncorrectPassword
	}
	account.PasswordHash = newHash
	return m.persist(ctx, account, "edit_password")
}

// EditUsername renames an account
func (m *Manager) EditUsername(ctx context.Context, id model.AccountID, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.reg.get(id)
	if err != nil {
		return err
	}
	if account.Username == username {
		return nil
	}
	if err := m.reg.rename(id, username); err != nil {
		return err
	}
	return m.persist(ctx, account, "edit_username")
}

// PromoteTrialUser turns a trial account into a permanent one, keeping its id,
// owned resources and friends. This is the account's first durable write.
func (m *Manager) PromoteTrialUser(ctx context.Context, id model.AccountID, username, pass string) error {
	if err := m.checkPromotable(id, username); err != nil {
		return err
	}

	hash, err := m.hasher.Hash(pass)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.reg.get(id)
	if err != nil {
		return err
	}
	if !account.IsTrial() {
		return model.ErrUnsupportedRoleForPromotion
	}
	if err := m.reg.rename(id, username); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return model.ErrDuplicateUsername
		}
		return err
	}
	account.PasswordHash = hash
	account.Role = model.RolePermanent

	m.logger.Info("trial account promoted", slog.String("account_id", string(id)))
	return m.persist(ctx, account, "promote")
}

func (m *Manager) checkPromotable(id model.AccountID, username string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return err
	}
	if !account.IsTrial() {
		return model.ErrUnsupportedRoleForPromotion
	}
	if owner, err := m.reg.idByUsername(username); err == nil && owner != id {
		return model.ErrDuplicateUsername
	}
	return nil
}

// DeleteUser removes an account from memory and from the store. If the store
// delete fails the account is already gone from memory, so the returned error
// wraps model.ErrStoreDiverged as well as model.ErrPersistenceUnavailable.
func (m *Manager) DeleteUser(ctx context.Context, id model.AccountID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.reg.remove(id)
	if err != nil {
		return err
	}

	touched := m.reg.forgetRelations(id)

	m.logger.Info("account deleted",
		slog.String("account_id", string(id)),
		slog.Int("relations_dropped", len(touched)),
	)

	if !account.IsTrial() {
		if err := m.store.DeleteAccount(ctx, id); err != nil {
			m.logger.Error("account deleted in memory but not in store",
				slog.String("account_id", string(id)),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("%w: %w: %w", model.ErrStoreDiverged, model.ErrPersistenceUnavailable, err)
		}
	}

	// Every touched owner is saved even if an earlier save failed
	var persistErr error
	for _, owner := range touched {
		if err := m.persist(ctx, owner, "delete_relation"); err != nil && persistErr == nil {
			persistErr = err
		}
	}
	return persistErr
}

// AddOwnedResource records that the account owns a resource, e.g. a quiz
func (m *Manager) AddOwnedResource(ctx context.Context, id model.AccountID, resourceID string) error {
	return m.mutate(ctx, id, "add_resource", func(a *model.Account) bool {
		return a.OwnedResources.Add(resourceID)
	})
}

// RemoveOwnedResource forgets an owned resource
func (m *Manager) RemoveOwnedResource(ctx context.Context, id model.AccountID, resourceID string) error {
	return m.mutate(ctx, id, "remove_resource", func(a *model.Account) bool {
		return a.OwnedResources.Remove(resourceID)
	})
}

// Queries

// GetUser returns a copy of the account
func (m *Manager) GetUser(id model.AccountID) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return nil, err
	}
	return account.Clone(), nil
}

// GetUserID resolves a username
func (m *Manager) GetUserID(username string) (model.AccountID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.idByUsername(username)
}

// GetUsername returns the current username of an account
func (m *Manager) GetUsername(id model.AccountID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return "", err
	}
	return account.Username, nil
}

// GetUserRole returns the role of an account
func (m *Manager) GetUserRole(id model.AccountID) (model.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

// OwnedResources returns the sorted resource ids owned by the account
func (m *Manager) OwnedResources(id model.AccountID) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, err := m.reg.get(id)
	if err != nil {
		return nil, err
	}
	return account.OwnedResources.Sorted(), nil
}

// Count returns the number of accounts in memory, trial accounts included
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.size()
}

// mutate applies fn to an account under the write lock and persists it when
// fn reports a change
func (m *Manager) mutate(ctx context.Context, id model.AccountID, op string, fn func(*model.Account) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.reg.get(id)
	if err != nil {
		return err
	}
	if !fn(account) {
		return nil
	}
	return m.persist(ctx, account, op)
}

func (m *Manager) usernameTaken(username string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.usernameTaken(username)
}

// persist saves a copy of a non-trial account. Callers hold mu.
// A failure leaves memory as it is.
func (m *Manager) persist(ctx context.Context, account *model.Account, op string) error {
	if account.IsTrial() {
		return nil
	}
	if err := m.store.SaveAccount(ctx, account.Clone()); err != nil {
		m.logger.Warn("failed to persist account",
			slog.String("op", op),
			slog.String("account_id", string(account.ID)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", model.ErrPersistenceUnavailable, err)
	}
	return nil
}
