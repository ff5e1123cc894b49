// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parityhq/parity-api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies hashing and verification of passwords.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_UniqueSalt verifies that two hashes of the same input differ.
*/
func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-password", first))
	assert.True(t, sec.CheckPasswordHash("same-password", second))
}

/*
TestCheckPasswordHash_Malformed verifies garbage hashes fail closed.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}

/*
TestTokenService_RoundTrip verifies a generated token passes verification and
carries the user id.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret-key", "parity-app.com")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "parity-app.com", claims.Issuer)
}

/*
TestTokenService_Failures verifies rejection of expired, forged, and garbage
tokens. All failures are uniform errors.
*/
func TestTokenService_Failures(t *testing.T) {
	service, err := sec.NewTokenService("test-secret-key", "parity-app.com")
	require.NoError(t, err)

	t.Run("expired_token", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-123", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("a-different-secret", "parity-app.com")
		require.NoError(t, err)

		token, err := other.GenerateAccessToken("user-123", time.Hour)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage_input", func(t *testing.T) {
		_, err := service.VerifyToken("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("empty_secret_rejected", func(t *testing.T) {
		_, err := sec.NewTokenService("", "parity-app.com")
		assert.Error(t, err)
	})
}

/*
TestGenerateLinkCode verifies uniqueness and URL-safety of link codes.
*/
func TestGenerateLinkCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := sec.GenerateLinkCode()
		require.NoError(t, err)
		require.NotEmpty(t, code)

		// base64 raw-URL alphabet only
		assert.NotContains(t, code, "+")
		assert.NotContains(t, code, "/")
		assert.NotContains(t, code, "=")

		assert.False(t, seen[code], "duplicate link code generated")
		seen[code] = true
	}
}

/*
TestAnonymousID verifies the derived id is stable, distinct per user, and
never equals the input.
*/
func TestAnonymousID(t *testing.T) {
	first := sec.AnonymousID("user-123")
	second := sec.AnonymousID("user-123")
	other := sec.AnonymousID("user-456")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, "user-123", first)
	assert.Len(t, first, sec.AnonymousIDLength)
}
