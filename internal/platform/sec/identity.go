// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package sec

// Identity is the canonical request-scoped projection of the authenticated
// caller. It is resolved once per request by the authentication middleware
// (token verification plus a user lookup) and injected into the context.
//
// Every handler consumes this single shape; there are no ad hoc lightweight
// "current user" alternates.
type Identity struct {
	// UserID is the account identifier encoded in the session token.
	UserID string

	// Email is the account's unique email address.
	Email string

	// AnonymousID is the derived identifier used for social-feed attribution.
	AnonymousID string

	// PartnerID references the mutually linked partner, nil when unlinked.
	PartnerID *string
}
