// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/parityhq/parity-api/internal/platform/apperr"
	"github.com/parityhq/parity-api/internal/platform/ctxutil"
	"github.com/parityhq/parity-api/internal/platform/sec"
	"github.com/parityhq/parity-api/pkg/uuid"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID string, timeToLive time.Duration) (string, error)
}

// ResetMailer dispatches password reset emails. Satisfied by [mailer.Mailer].
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// Service implements user identity use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	resetTokens    ResetTokenRepository
	tokenProvider  TokenProvider
	resetMailer    ResetMailer
	accessTokenTTL time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
//
// accessTokenTTL is the single canonical session lifetime, sourced from
// configuration so every issue site agrees on it.
func NewService(
	userRepo UserRepository,
	resetTokens ResetTokenRepository,
	tokenProv TokenProvider,
	resetMailer ResetMailer,
	accessTokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository: userRepo,
		resetTokens:    resetTokens,
		tokenProvider:  tokenProv,
		resetMailer:    resetMailer,
		accessTokenTTL: accessTokenTTL,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.Conflict] if the email already exists.
//
// # Business Rules
//   - Emails must be unique (case-sensitive exact match).
//   - A unique partner link code is minted at creation and never rotates.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Uniqueness Check ───────────────────────────────────────────────

	// Verify email uniqueness. The unique index on users.email is the real
	// guarantee; this pre-check returns a client-safe Conflict without
	// burning a bcrypt hash on the common duplicate case.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	linkCode, err := sec.GenerateLinkCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_link_code_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:              uuid.New(), // Time-sortable ID to prevent PG index fragmentation.
		Email:           input.Email,
		PasswordHash:    hashedPassword,
		PartnerLinkCode: linkCode,
		PartnerID:       nil,
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken string
	TokenType   string
	User        *User
}

// Login validates user credentials and issues an access token.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains Email and plain-text Password.
//
// # Returns
//   - A pointer to [LoginSession] containing the AccessToken.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup user by email.
//  2. Verify password hash using Bcrypt.
//  3. Generate a JWT access token with the configured TTL.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Return generic unauthorized error to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// The same error for unknown email and wrong password; bcrypt compares
	// in constant time.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, service.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

// Me returns the account behind an authenticated caller.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// ResolveIdentity projects a verified token subject into the canonical caller
// identity. It satisfies [middleware.IdentityResolver].
//
// A valid token whose account has since been deleted resolves to an error,
// which the middleware turns into a 401.
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// RequestPasswordReset begins the forgot-password flow.
//
// # Enumeration Safety
//
// The outcome is identical whether or not the email belongs to an account:
// unknown addresses return success without doing anything, and mail dispatch
// failures are logged but swallowed. Only infrastructure errors on the token
// store surface to the caller.
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		// Unknown email. Pretend success.
		return nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_reset_token_store_failed: %w", err)
	}

	// Best-effort dispatch. A mail provider outage must not reveal whether
	// the account exists.
	if err := service.resetMailer.SendPasswordReset(context, user.Email, token); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "password_reset_mail_failed",
			"error", err.Error(),
		)
	}

	return nil
}

// ResetPassword completes the forgot-password flow.
//
// # Returns
//   - [apperr.ValidationError] if the token is unknown or expired.
//
// The token is single-use: it is deleted after the password is replaced.
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokens.Get(context, token)
	if err != nil {
		return apperr.ValidationError("Invalid or expired reset token")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	if err := service.resetTokens.Delete(context, token); err != nil {
		// The TTL will reap it regardless; log and carry on.
		ctxutil.GetLogger(context).WarnContext(context, "reset_token_delete_failed",
			"error", err.Error(),
		)
	}

	return nil
}
