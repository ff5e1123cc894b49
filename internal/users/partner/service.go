// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package partner

import (
	"context"

	"github.com/parityhq/parity-api/internal/platform/apperr"
	"github.com/parityhq/parity-api/internal/users/auth"
)

// Service implements partner linking use cases.
type Service struct {
	userRepository auth.UserRepository
	linkRepository LinkRepository
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo auth.UserRepository, linkRepo LinkRepository) *Service {
	return &Service{
		userRepository: userRepo,
		linkRepository: linkRepo,
	}
}

// GetLinkCode returns the caller's shareable partner link code.
func (service *Service) GetLinkCode(context context.Context, userID string) (string, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return "", err
	}
	return user.PartnerLinkCode, nil
}

// Me returns the account behind an authenticated caller.
func (service *Service) Me(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// Link connects the caller with the account holding the given link code.
//
// # Failure Cases (checked in order)
//   - Caller already linked           → [apperr.Conflict]
//   - Code matches no account         → [apperr.NotFound]
//   - Code belongs to the caller      → [apperr.ValidationError]
//   - Target already linked           → [apperr.Conflict]
//
// The checks here give precise client errors; the repository transaction
// re-verifies both rows under serializable isolation, so a race between the
// check and the commit still cannot produce a one-sided link.
//
// # Returns
//
// On success, the linked partner's account (for the confirmation message).
func (service *Service) Link(context context.Context, callerID, linkCode string) (*auth.User, error) {
	// ── 1. Caller State ───────────────────────────────────────────────────

	caller, err := service.userRepository.FindByID(context, callerID)
	if err != nil {
		return nil, err
	}
	if caller.PartnerID != nil {
		return nil, apperr.Conflict("You are already linked with a partner.")
	}

	// ── 2. Target Resolution ──────────────────────────────────────────────

	target, err := service.linkRepository.FindByLinkCode(context, linkCode)
	if err != nil {
		return nil, err
	}

	if target.ID == caller.ID {
		return nil, apperr.ValidationError("You cannot link to yourself.")
	}

	if target.PartnerID != nil {
		return nil, apperr.Conflict("This user is already linked with a partner.")
	}

	// ── 3. Atomic Commit ──────────────────────────────────────────────────

	if err := service.linkRepository.Link(context, caller.ID, target.ID); err != nil {
		return nil, err
	}

	return target, nil
}
