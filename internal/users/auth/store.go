// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account registered with exactly this email.
	// The match is case-sensitive on purpose: the original mobile clients
	// register and log in with the literal string they stored.
	//
	// Returns [apperr.NotFound] if no account matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a brand-new user account.
	//
	// Returns [apperr.Conflict] if the email or partner link code collides
	// with an existing row (unique constraint).
	Create(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	// Kept separate from any profile update path so unrelated writes can
	// never touch credentials.
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens. Tokens are single-use and expire server-side.
type ResetTokenRepository interface {
	// Set stores a reset token associated with a userID for a limited duration.
	Set(ctx context.Context, token string, userID string, ttl time.Duration) error

	// Get retrieves the userID associated with a given reset token.
	//
	// Returns [apperr.NotFound] if the token is unknown or expired.
	Get(ctx context.Context, token string) (string, error)

	// Delete removes a reset token after successful use.
	Delete(ctx context.Context, token string) error
}
