// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parityhq/parity-api/internal/platform/ctxutil"
	"github.com/parityhq/parity-api/internal/platform/middleware"
	"github.com/parityhq/parity-api/internal/platform/sec"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeVerifier struct {
	validTokens map[string]string // token → user id
}

func (f fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if userID, ok := f.validTokens[tokenStr]; ok {
		return &sec.AuthClaims{UserID: userID}, nil
	}
	return nil, fmt.Errorf("signature invalid")
}

type fakeResolver struct {
	identities map[string]*sec.Identity // user id → identity
}

func (f fakeResolver) ResolveIdentity(_ context.Context, userID string) (*sec.Identity, error) {
	if identity, ok := f.identities[userID]; ok {
		return identity, nil
	}
	return nil, fmt.Errorf("account gone")
}

// captureHandler records the identity visible to the downstream handler.
func captureHandler(captured **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

// ── Tests ────────────────────────────────────────────────────────────────────

/*
TestAuthenticate exercises every branch of the bearer-token middleware: the
anonymous passthrough, format and signature failures, resolution failure,
and context injection on success.
*/
func TestAuthenticate(t *testing.T) {
	identity := &sec.Identity{
		UserID:      "user-1",
		Email:       "pat@example.com",
		AnonymousID: sec.AnonymousID("user-1"),
	}

	verifier := fakeVerifier{validTokens: map[string]string{
		"good-token":     "user-1",
		"orphaned-token": "deleted-user",
	}}
	resolver := fakeResolver{identities: map[string]*sec.Identity{
		"user-1": identity,
	}}

	authenticate := middleware.Authenticate(verifier, resolver)

	testCases := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectIdentity bool
	}{
		{
			name:           "no_header_is_anonymous",
			authHeader:     "",
			expectedStatus: http.StatusOK,
			expectIdentity: false,
		},
		{
			name:           "malformed_header",
			authHeader:     "good-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong_scheme",
			authHeader:     "Basic good-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid_token",
			authHeader:     "Bearer forged-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid_token_for_deleted_account",
			authHeader:     "Bearer orphaned-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid_token",
			authHeader:     "Bearer good-token",
			expectedStatus: http.StatusOK,
			expectIdentity: true,
		},
		{
			name:           "scheme_is_case_insensitive",
			authHeader:     "bearer good-token",
			expectedStatus: http.StatusOK,
			expectIdentity: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var captured *sec.Identity
			handler := authenticate(captureHandler(&captured))

			request := httptest.NewRequest(http.MethodGet, "/social/posts", nil)
			if testCase.authHeader != "" {
				request.Header.Set("Authorization", testCase.authHeader)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
			if testCase.expectIdentity {
				require.NotNil(t, captured)
				assert.Equal(t, "user-1", captured.UserID)
				assert.Equal(t, identity.AnonymousID, captured.AnonymousID)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

/*
TestRequireAuth verifies the gate blocks anonymous requests and passes
authenticated ones through untouched.
*/
func TestRequireAuth(t *testing.T) {
	t.Run("anonymous_blocked", func(t *testing.T) {
		var captured *sec.Identity
		handler := middleware.RequireAuth(captureHandler(&captured))

		request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, captured)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		var captured *sec.Identity
		handler := middleware.RequireAuth(captureHandler(&captured))

		identity := &sec.Identity{UserID: "user-1"}
		request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "user-1", captured.UserID)
	})
}
