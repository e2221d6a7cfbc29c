package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrInvalidUsername = errors.New("invalid username")

	// Registration and profile errors
	ErrDuplicateUsername              = errors.New("username already exists")
	ErrUsernameTaken                  = errors.New("username already taken by another account")
	ErrInvalidRole                    = errors.New("invalid role")
	ErrUnsupportedRoleForRegistration = errors.New("role cannot be used for registration")
	ErrUnsupportedRoleForPromotion    = errors.New("only trial accounts can be promoted")

	// Authentication errors
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrAccountExpired    = errors.New("account has expired")

	// Friend errors
	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")

	// Persistence errors
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrStoreDiverged means memory and the durable store no longer agree and
	// the failed operation must not be retried blindly.
	ErrStoreDiverged = errors.New("in-memory state diverged from durable store")
)
