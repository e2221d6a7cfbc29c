package model

import (
	"fmt"
	"strings"
	"time"
)

// AccountID uniquely identifies an account. IDs are decimal strings handed out
// in increasing order and never reused.
type AccountID string

// Role is the lifecycle class of an account
type Role string

const (
	RolePermanent Role = "permanent"
	RoleTemporary Role = "temporary" // expires 30 days after registration
	RoleTrial     Role = "trial"     // no credential, never persisted
)

// ParseRole converts a role name to a Role
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePermanent:
		return RolePermanent, nil
	case RoleTemporary:
		return RoleTemporary, nil
	case RoleTrial:
		return RoleTrial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// OnlineStatus is the coarse presence flag toggled by login and logout
type OnlineStatus string

const (
	StatusOnline  OnlineStatus = "online"
	StatusOffline OnlineStatus = "offline"
)

// Account is a user identity record
type Account struct {
	ID           AccountID
	Username     string
	PasswordHash string // bcrypt hash, empty for trial accounts
	Role         Role
	RegisteredAt time.Time
	Status       OnlineStatus

	OwnedResources Set[string]
	Friends        Set[AccountID]
	PendingFriends Set[AccountID] // senders of unanswered friend requests
}

// NewAccount creates an offline account with empty sets
func NewAccount(id AccountID, username, passwordHash string, role Role, registeredAt time.Time) *Account {
	return &Account{
		ID:             id,
		Username:       username,
		PasswordHash:   passwordHash,
		Role:           role,
		RegisteredAt:   registeredAt,
		Status:         StatusOffline,
		OwnedResources: NewSet[string](),
		Friends:        NewSet[AccountID](),
		PendingFriends: NewSet[AccountID](),
	}
}

// IsTrial reports whether the account is a trial account
func (a *Account) IsTrial() bool {
	return a.Role == RoleTrial
}

// HasCredential reports whether a password hash is set
func (a *Account) HasCredential() bool {
	return a.PasswordHash != ""
}

// ExpiresAt returns when a temporary account stops accepting logins.
// The zero time is returned for other roles.
func (a *Account) ExpiresAt(lifetime time.Duration) time.Time {
	if a.Role != RoleTemporary {
		return time.Time{}
	}
	return a.RegisteredAt.Add(lifetime)
}

// Clone returns a deep copy of the account
func (a *Account) Clone() *Account {
	c := *a
	c.OwnedResources = a.OwnedResources.Clone()
	c.Friends = a.Friends.Clone()
	c.PendingFriends = a.PendingFriends.Clone()
	return &c
}

// Normalize fills nil sets and the default status, e.g. after decoding a
// record from a store.
func (a *Account) Normalize() {
	if a.OwnedResources == nil {
		a.OwnedResources = NewSet[string]()
	}
	if a.Friends == nil {
		a.Friends = NewSet[AccountID]()
	}
	if a.PendingFriends == nil {
		a.PendingFriends = NewSet[AccountID]()
	}
	if a.Status == "" {
		a.Status = StatusOffline
	}
}
