// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package coaching

import (
	"context"

	"github.com/parityhq/parity-api/pkg/uuid"
)

// Service implements the coaching use cases.
type Service struct {
	moduleRepository ModuleRepository
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(moduleRepo ModuleRepository) *Service {
	return &Service{moduleRepository: moduleRepo}
}

// ListModules returns the full curriculum in order.
func (service *Service) ListModules(context context.Context) ([]Module, error) {
	return service.moduleRepository.ListModules(context)
}

// GetModule returns a single module.
//
// Returns [apperr.NotFound] if the module does not exist.
func (service *Service) GetModule(context context.Context, moduleID string) (*Module, error) {
	return service.moduleRepository.FindModuleByID(context, moduleID)
}

// GetProgress returns the caller's progress across all modules.
func (service *Service) GetProgress(context context.Context, userID string) ([]UserProgress, error) {
	return service.moduleRepository.ListProgress(context, userID)
}

// ProgressInput holds a progress update submitted by the client.
type ProgressInput struct {
	ProgressPercentage int
	Completed          bool
}

// UpdateProgress upserts the caller's progress on a module.
//
// # Returns
//   - [apperr.NotFound] if the module does not exist.
//   - The current progress row after the write.
//
// Resubmitting Completed=false after a completion keeps the original
// CompletedAt timestamp.
func (service *Service) UpdateProgress(context context.Context, userID, moduleID string, input ProgressInput) (*UserProgress, error) {
	// Existence check first so a bad module ID is a clean 404, not an FK error.
	if _, err := service.moduleRepository.FindModuleByID(context, moduleID); err != nil {
		return nil, err
	}

	progress := &UserProgress{
		ID:                 uuid.New(), // Discarded when the row already exists.
		UserID:             userID,
		ModuleID:           moduleID,
		Completed:          input.Completed,
		ProgressPercentage: input.ProgressPercentage,
	}

	return service.moduleRepository.UpsertProgress(context, progress)
}
