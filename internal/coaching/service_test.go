// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package coaching_test

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parityhq/parity-api/internal/coaching"
	"github.com/parityhq/parity-api/internal/platform/apperr"
)

// ── In-Memory Fake ───────────────────────────────────────────────────────────

type progressKey struct {
	userID   string
	moduleID string
}

type fakeModuleRepository struct {
	modules  map[string]*coaching.Module
	progress map[progressKey]*coaching.UserProgress
}

func newFakeModuleRepository(modules ...*coaching.Module) *fakeModuleRepository {
	repository := &fakeModuleRepository{
		modules:  make(map[string]*coaching.Module),
		progress: make(map[progressKey]*coaching.UserProgress),
	}
	for _, module := range modules {
		copied := *module
		repository.modules[module.ID] = &copied
	}
	return repository
}

func (f *fakeModuleRepository) ListModules(_ context.Context) ([]coaching.Module, error) {
	modules := make([]coaching.Module, 0, len(f.modules))
	for _, module := range f.modules {
		modules = append(modules, *module)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })
	return modules, nil
}

func (f *fakeModuleRepository) FindModuleByID(_ context.Context, id string) (*coaching.Module, error) {
	if module, ok := f.modules[id]; ok {
		copied := *module
		return &copied, nil
	}
	return nil, apperr.NotFound("Coaching module")
}

func (f *fakeModuleRepository) ListProgress(_ context.Context, userID string) ([]coaching.UserProgress, error) {
	var rows []coaching.UserProgress
	for key, row := range f.progress {
		if key.userID == userID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

// UpsertProgress mimics the conflict-target upsert: the first write keeps
// its row ID and CompletedAt is set at most once.
func (f *fakeModuleRepository) UpsertProgress(_ context.Context, progress *coaching.UserProgress) (*coaching.UserProgress, error) {
	key := progressKey{userID: progress.UserID, moduleID: progress.ModuleID}

	existing, ok := f.progress[key]
	if !ok {
		copied := *progress
		copied.CreatedAt = time.Now().UTC()
		if copied.Completed {
			now := time.Now().UTC()
			copied.CompletedAt = &now
		}
		f.progress[key] = &copied
		result := copied
		return &result, nil
	}

	existing.Completed = progress.Completed
	existing.ProgressPercentage = progress.ProgressPercentage
	if existing.CompletedAt == nil && progress.Completed {
		now := time.Now().UTC()
		existing.CompletedAt = &now
	}
	result := *existing
	return &result, nil
}

func testModule(id, title string, order int) *coaching.Module {
	return &coaching.Module{ID: id, Title: title, Category: "communication", Order: order}
}

// ── Tests ────────────────────────────────────────────────────────────────────

/*
TestService_ListModules verifies the curriculum comes back in display order.
*/
func TestService_ListModules(t *testing.T) {
	service := coaching.NewService(newFakeModuleRepository(
		testModule("module-b", "Conflict Resolution Basics", 2),
		testModule("module-a", "Active Listening Fundamentals", 1),
	))

	modules, err := service.ListModules(context.Background())
	require.NoError(t, err)

	require.Len(t, modules, 2)
	assert.Equal(t, "Active Listening Fundamentals", modules[0].Title)
	assert.Equal(t, "Conflict Resolution Basics", modules[1].Title)
}

/*
TestService_GetModule verifies single-module lookup and the missing-module 404.
*/
func TestService_GetModule(t *testing.T) {
	service := coaching.NewService(newFakeModuleRepository(
		testModule("module-a", "Active Listening Fundamentals", 1),
	))

	module, err := service.GetModule(context.Background(), "module-a")
	require.NoError(t, err)
	assert.Equal(t, "Active Listening Fundamentals", module.Title)

	_, err = service.GetModule(context.Background(), "no-such-module")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_UpdateProgress verifies the upsert semantics: one row per
(user, module) pair, unknown modules rejected, and CompletedAt set exactly
once.
*/
func TestService_UpdateProgress(t *testing.T) {
	repository := newFakeModuleRepository(
		testModule("module-a", "Active Listening Fundamentals", 1),
	)
	service := coaching.NewService(repository)

	t.Run("unknown_module_not_found", func(t *testing.T) {
		_, err := service.UpdateProgress(context.Background(), "user-1", "no-such-module", coaching.ProgressInput{
			ProgressPercentage: 50,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
		assert.Empty(t, repository.progress)
	})

	t.Run("first_write_creates_row", func(t *testing.T) {
		progress, err := service.UpdateProgress(context.Background(), "user-1", "module-a", coaching.ProgressInput{
			ProgressPercentage: 40,
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", progress.UserID)
		assert.Equal(t, 40, progress.ProgressPercentage)
		assert.False(t, progress.Completed)
		assert.Nil(t, progress.CompletedAt)
	})

	t.Run("completion_stamps_completed_at", func(t *testing.T) {
		progress, err := service.UpdateProgress(context.Background(), "user-1", "module-a", coaching.ProgressInput{
			ProgressPercentage: 100,
			Completed:          true,
		})
		require.NoError(t, err)
		assert.True(t, progress.Completed)
		require.NotNil(t, progress.CompletedAt)

		firstCompletedAt := *progress.CompletedAt

		// Un-completing and re-completing keeps the original timestamp.
		progress, err = service.UpdateProgress(context.Background(), "user-1", "module-a", coaching.ProgressInput{
			ProgressPercentage: 60,
			Completed:          false,
		})
		require.NoError(t, err)
		assert.False(t, progress.Completed)
		require.NotNil(t, progress.CompletedAt)
		assert.Equal(t, firstCompletedAt, *progress.CompletedAt)
	})

	t.Run("single_row_per_user_and_module", func(t *testing.T) {
		rows, err := service.GetProgress(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "module-a", rows[0].ModuleID)
		assert.Equal(t, 60, rows[0].ProgressPercentage)
	})

	t.Run("other_users_unaffected", func(t *testing.T) {
		rows, err := service.GetProgress(context.Background(), "user-2")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
