// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Package partner implements mutual partner linking between two accounts.
//
// Linking is the one place in the system where a single operation mutates two
// user rows. The storage contract therefore carries an explicit atomicity
// requirement: both rows change or neither does.
package partner

import (
	"context"

	"github.com/parityhq/parity-api/internal/users/auth"
)

// LinkRepository defines the data access contract for partner links.
type LinkRepository interface {
	// FindByLinkCode returns the account holding the given partner link code.
	//
	// Returns [apperr.NotFound] if no account holds the code.
	FindByLinkCode(ctx context.Context, code string) (*auth.User, error)

	// Link establishes the mutual link between two accounts.
	//
	// # Atomicity
	//
	// The implementation must set userID.partner_id = partnerID and
	// partnerID.partner_id = userID in a single transaction, re-checking
	// inside it that both rows are still unlinked. If either account was
	// linked concurrently, the transaction rolls back and [apperr.Conflict]
	// is returned; no half-linked state is ever visible.
	Link(ctx context.Context, userID, partnerID string) error
}
