// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package partner_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parityhq/parity-api/internal/platform/apperr"
	"github.com/parityhq/parity-api/internal/users/auth"
	"github.com/parityhq/parity-api/internal/users/partner"
)

// ── In-Memory Fakes ──────────────────────────────────────────────────────────

// fakeLinkStore backs both auth.UserRepository and partner.LinkRepository so
// link commits are visible through the same user set the service reads from.
type fakeLinkStore struct {
	usersByID map[string]*auth.User
}

func newFakeLinkStore(users ...*auth.User) *fakeLinkStore {
	store := &fakeLinkStore{usersByID: make(map[string]*auth.User)}
	for _, user := range users {
		copied := *user
		store.usersByID[user.ID] = &copied
	}
	return store
}

func (f *fakeLinkStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.usersByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeLinkStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.usersByID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeLinkStore) Create(_ context.Context, user *auth.User) error {
	copied := *user
	f.usersByID[user.ID] = &copied
	return nil
}

func (f *fakeLinkStore) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := f.usersByID[userID]; ok {
		user.PasswordHash = newHash
		return nil
	}
	return apperr.NotFound("User")
}

func (f *fakeLinkStore) FindByLinkCode(_ context.Context, linkCode string) (*auth.User, error) {
	for _, user := range f.usersByID {
		if user.PartnerLinkCode == linkCode {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Partner link code")
}

func (f *fakeLinkStore) Link(_ context.Context, userID, partnerID string) error {
	user, userOK := f.usersByID[userID]
	target, targetOK := f.usersByID[partnerID]
	if !userOK || !targetOK {
		return apperr.NotFound("User")
	}
	// Mirrors the guarded UPDATE: a taken slot aborts the whole commit.
	if user.PartnerID != nil {
		return apperr.Conflict("You are already linked with a partner.")
	}
	if target.PartnerID != nil {
		return apperr.Conflict("This user is already linked with a partner.")
	}
	user.PartnerID = &target.ID
	target.PartnerID = &user.ID
	return nil
}

func testUser(id, email, linkCode string) *auth.User {
	return &auth.User{ID: id, Email: email, PartnerLinkCode: linkCode}
}

// ── Tests ────────────────────────────────────────────────────────────────────

/*
TestService_Link_Success verifies the happy path links both accounts
symmetrically and returns the target for the confirmation message.
*/
func TestService_Link_Success(t *testing.T) {
	store := newFakeLinkStore(
		testUser("user-a", "a@example.com", "code-a"),
		testUser("user-b", "b@example.com", "code-b"),
	)
	service := partner.NewService(store, store)

	target, err := service.Link(context.Background(), "user-a", "code-b")
	require.NoError(t, err)
	assert.Equal(t, "user-b", target.ID)
	assert.Equal(t, "b@example.com", target.Email)

	userA, err := service.Me(context.Background(), "user-a")
	require.NoError(t, err)
	userB, err := service.Me(context.Background(), "user-b")
	require.NoError(t, err)

	require.NotNil(t, userA.PartnerID)
	require.NotNil(t, userB.PartnerID)
	assert.Equal(t, "user-b", *userA.PartnerID)
	assert.Equal(t, "user-a", *userB.PartnerID)
}

/*
TestService_Link_Failures walks every refusal in the documented order and
asserts no account state changes on failure.
*/
func TestService_Link_Failures(t *testing.T) {
	linkedID := "user-c"

	testCases := []struct {
		name           string
		callerID       string
		linkCode       string
		expectedStatus int
	}{
		{
			name:           "caller_already_linked",
			callerID:       "user-c",
			linkCode:       "code-b",
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown_link_code",
			callerID:       "user-a",
			linkCode:       "no-such-code",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "self_link",
			callerID:       "user-a",
			linkCode:       "code-a",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "target_already_linked",
			callerID:       "user-a",
			linkCode:       "code-c",
			expectedStatus: http.StatusConflict,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			userC := testUser("user-c", "c@example.com", "code-c")
			userC.PartnerID = &linkedID

			store := newFakeLinkStore(
				testUser("user-a", "a@example.com", "code-a"),
				testUser("user-b", "b@example.com", "code-b"),
				userC,
			)
			service := partner.NewService(store, store)

			_, err := service.Link(context.Background(), testCase.callerID, testCase.linkCode)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, testCase.expectedStatus, ae.HTTPStatus)

			// Unlinked accounts stay unlinked after any refusal.
			userA, findErr := service.Me(context.Background(), "user-a")
			require.NoError(t, findErr)
			userB, findErr := service.Me(context.Background(), "user-b")
			require.NoError(t, findErr)
			assert.Nil(t, userA.PartnerID)
			assert.Nil(t, userB.PartnerID)
		})
	}
}

/*
TestService_GetLinkCode verifies code retrieval for both existing and
unknown accounts.
*/
func TestService_GetLinkCode(t *testing.T) {
	store := newFakeLinkStore(testUser("user-a", "a@example.com", "code-a"))
	service := partner.NewService(store, store)

	t.Run("returns_own_code", func(t *testing.T) {
		code, err := service.GetLinkCode(context.Background(), "user-a")
		require.NoError(t, err)
		assert.Equal(t, "code-a", code)
	})

	t.Run("unknown_user_fails", func(t *testing.T) {
		_, err := service.GetLinkCode(context.Background(), "ghost")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}
