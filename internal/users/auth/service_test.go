// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parityhq/parity-api/internal/platform/apperr"
	"github.com/parityhq/parity-api/internal/platform/sec"
	"github.com/parityhq/parity-api/internal/users/auth"
)

// ── In-Memory Fakes ──────────────────────────────────────────────────────────

type fakeUserRepository struct {
	usersByID map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{usersByID: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.usersByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.usersByID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range f.usersByID {
		if existing.Email == user.Email {
			return apperr.Conflict("Email already registered")
		}
	}
	copied := *user
	f.usersByID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: make(map[string]string)}
}

func (f *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID string, timeToLive time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%s-ttl-%s", userID, timeToLive), nil
}

type fakeMailer struct {
	sentTo     []string
	sentTokens []string
	failWith   error
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, email, token string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sentTo = append(f.sentTo, email)
	f.sentTokens = append(f.sentTokens, token)
	return nil
}

func newService(users *fakeUserRepository, tokens *fakeResetTokenRepository, mail *fakeMailer) *auth.Service {
	return auth.NewService(users, tokens, fakeTokenProvider{}, mail, time.Hour)
}

// ── Tests ────────────────────────────────────────────────────────────────────

/*
TestService_Register verifies account creation: hashing, link code minting,
and the duplicate-email conflict.
*/
func TestService_Register(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeResetTokenRepository(), &fakeMailer{})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "pat@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "pat@example.com", user.Email)
	assert.Nil(t, user.PartnerID)
	assert.NotEmpty(t, user.PartnerLinkCode)

	// Stored hash verifies; the plain text is never stored.
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("password123", user.PasswordHash))

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email:    "pat@example.com",
			Password: "otherpassword",
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	})

	t.Run("duplicate_check_is_case_sensitive", func(t *testing.T) {
		// PAT@example.com is a different account than pat@example.com.
		other, err := service.Register(context.Background(), auth.RegisterInput{
			Email:    "PAT@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEqual(t, user.ID, other.ID)
	})

	t.Run("link_codes_are_unique", func(t *testing.T) {
		second, err := service.Register(context.Background(), auth.RegisterInput{
			Email:    "sam@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEqual(t, user.PartnerLinkCode, second.PartnerLinkCode)
	})
}

/*
TestService_Login verifies token issuance and the uniform failure behavior.
*/
func TestService_Login(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeResetTokenRepository(), &fakeMailer{})

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "pat@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "pat@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, "bearer", session.TokenType)
		assert.Equal(t, "pat@example.com", session.User.Email)

		// The configured TTL reaches the token provider.
		assert.Contains(t, session.AccessToken, "ttl-1h0m0s")
	})

	t.Run("unknown_email_and_wrong_password_are_identical", func(t *testing.T) {
		_, unknownErr := service.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		_, wrongErr := service.Login(context.Background(), auth.LoginInput{
			Email:    "pat@example.com",
			Password: "not-the-password",
		})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)

		unknownApp := apperr.As(unknownErr)
		wrongApp := apperr.As(wrongErr)
		require.NotNil(t, unknownApp)
		require.NotNil(t, wrongApp)

		// Same status and same message: no account enumeration signal.
		assert.Equal(t, http.StatusUnauthorized, unknownApp.HTTPStatus)
		assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
		assert.Equal(t, unknownApp.Message, wrongApp.Message)
	})
}

/*
TestService_ResolveIdentity verifies the middleware-facing caller projection.
*/
func TestService_ResolveIdentity(t *testing.T) {
	users := newFakeUserRepository()
	service := newService(users, newFakeResetTokenRepository(), &fakeMailer{})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "pat@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("resolves_registered_user", func(t *testing.T) {
		identity, err := service.ResolveIdentity(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, user.Email, identity.Email)
		assert.Equal(t, sec.AnonymousID(user.ID), identity.AnonymousID)
		assert.Nil(t, identity.PartnerID)
	})

	t.Run("deleted_account_fails", func(t *testing.T) {
		_, err := service.ResolveIdentity(context.Background(), "gone-user-id")
		assert.Error(t, err)
	})
}

/*
TestService_PasswordReset walks the full forgot/reset flow.
*/
func TestService_PasswordReset(t *testing.T) {
	users := newFakeUserRepository()
	resetTokens := newFakeResetTokenRepository()
	mail := &fakeMailer{}
	service := newService(users, resetTokens, mail)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "pat@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("unknown_email_is_silent_success", func(t *testing.T) {
		err := service.RequestPasswordReset(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Empty(t, mail.sentTo)
		assert.Empty(t, resetTokens.tokens)
	})

	t.Run("known_email_sends_token", func(t *testing.T) {
		err := service.RequestPasswordReset(context.Background(), "pat@example.com")
		require.NoError(t, err)
		require.Len(t, mail.sentTo, 1)
		assert.Equal(t, "pat@example.com", mail.sentTo[0])
		require.Len(t, resetTokens.tokens, 1)
	})

	t.Run("reset_replaces_password_and_consumes_token", func(t *testing.T) {
		token := mail.sentTokens[0]

		err := service.ResetPassword(context.Background(), token, "brand-new-pass")
		require.NoError(t, err)

		stored, err := users.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.True(t, sec.CheckPasswordHash("brand-new-pass", stored.PasswordHash))

		// Second use of the same token fails: it was deleted.
		err = service.ResetPassword(context.Background(), token, "another-pass")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	})

	t.Run("mail_failure_stays_generic", func(t *testing.T) {
		failing := &fakeMailer{failWith: fmt.Errorf("provider down")}
		service := newService(users, newFakeResetTokenRepository(), failing)

		err := service.RequestPasswordReset(context.Background(), "pat@example.com")
		assert.NoError(t, err)
	})
}
