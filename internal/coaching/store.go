// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package coaching

import "context"

// ModuleRepository defines the data access contract for coaching content and
// progress.
type ModuleRepository interface {
	// ListModules returns every module ordered by its curriculum position.
	ListModules(ctx context.Context) ([]Module, error)

	// FindModuleByID returns the module with the given ID.
	//
	// Returns [apperr.NotFound] if the module does not exist.
	FindModuleByID(ctx context.Context, id string) (*Module, error)

	// ListProgress returns all progress rows belonging to a user.
	ListProgress(ctx context.Context, userID string) ([]UserProgress, error)

	// UpsertProgress inserts or updates the (user, module) progress row and
	// returns its current state. CompletedAt is preserved once set.
	UpsertProgress(ctx context.Context, progress *UserProgress) (*UserProgress, error)
}
