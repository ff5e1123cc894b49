// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Package auth implements the user identity domain: registration, login,
// password reset, and the canonical caller lookup used by the HTTP auth
// middleware.
//
// # Architecture
//
// The entity and business rules here have no dependencies on outer layers
// (HTTP, SQL). Storage is reached only through the repository interfaces in
// store.go, which keeps the service logic testable with in-memory fakes.
package auth

import (
	"time"

	"github.com/parityhq/parity-api/internal/platform/sec"
)

// User represents a registered Parity account.
//
// # Rules
//   - Email is unique (case-sensitive exact match, backed by a DB index).
//   - PasswordHash is generated via Bcrypt exclusively by the [Service].
//   - PartnerLinkCode is minted once at registration and never rotates.
//   - PartnerID is nil until a mutual partner link is established; linking
//     is owned by the partner package and always updates both accounts.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Explicitly omitted from JSON for security.
	PartnerLinkCode string    `json:"-"` // Shared only through the partner endpoints.
	PartnerID       *string   `json:"partner_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicUser is the externally visible projection of a [User].
type PublicUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	PartnerID *string `json:"partner_id"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		PartnerID: u.PartnerID,
	}
}

// Identity returns the canonical authenticated-caller projection for this
// user. The AnonymousID is derived, never stored, so it can't drift from the
// account ID.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		UserID:      u.ID,
		Email:       u.Email,
		AnonymousID: sec.AnonymousID(u.ID),
		PartnerID:   u.PartnerID,
	}
}
