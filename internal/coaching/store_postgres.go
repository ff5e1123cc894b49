// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package coaching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parityhq/parity-api/internal/platform/apperr"
)

// PostgresModuleRepository implements the ModuleRepository interface using pgx.
type PostgresModuleRepository struct {
	pool *pgxpool.Pool
}

// NewModuleRepository creates a new PostgreSQL implementation of the ModuleRepository.
func NewModuleRepository(pool *pgxpool.Pool) *PostgresModuleRepository {
	return &PostgresModuleRepository{pool: pool}
}

// ListModules returns every module ordered by curriculum position.
func (repository *PostgresModuleRepository) ListModules(ctx context.Context) ([]Module, error) {
	const query = `
		SELECT id, title, description, content, category, "order", created_at
		FROM modules
		ORDER BY "order"`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_module_repo_list_failed: %w", err)
	}
	defer rows.Close()

	modules := []Module{}
	for rows.Next() {
		var module Module
		if err := rows.Scan(
			&module.ID,
			&module.Title,
			&module.Description,
			&module.Content,
			&module.Category,
			&module.Order,
			&module.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_module_repo_scan_failed: %w", err)
		}
		modules = append(modules, module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_module_repo_rows_failed: %w", err)
	}

	return modules, nil
}

// FindModuleByID retrieves a module by its unique ID.
func (repository *PostgresModuleRepository) FindModuleByID(ctx context.Context, id string) (*Module, error) {
	const query = `
		SELECT id, title, description, content, category, "order", created_at
		FROM modules
		WHERE id = $1`

	module := &Module{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&module.ID,
		&module.Title,
		&module.Description,
		&module.Content,
		&module.Category,
		&module.Order,
		&module.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Module")
		}
		return nil, fmt.Errorf("postgres_module_repo_find_failed: %w", err)
	}

	return module, nil
}

// ListProgress returns all progress rows belonging to a user.
func (repository *PostgresModuleRepository) ListProgress(ctx context.Context, userID string) ([]UserProgress, error) {
	const query = `
		SELECT id, user_id, module_id, completed, progress_percentage, completed_at, created_at
		FROM user_progress
		WHERE user_id = $1`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_module_repo_list_progress_failed: %w", err)
	}
	defer rows.Close()

	progress := []UserProgress{}
	for rows.Next() {
		var row UserProgress
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.ModuleID,
			&row.Completed,
			&row.ProgressPercentage,
			&row.CompletedAt,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_module_repo_progress_scan_failed: %w", err)
		}
		progress = append(progress, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_module_repo_progress_rows_failed: %w", err)
	}

	return progress, nil
}

// UpsertProgress inserts or updates the (user, module) progress row.
//
// The unique index on (user_id, module_id) drives the upsert. CompletedAt is
// COALESCEd against the existing row so the first completion timestamp is
// permanent.
func (repository *PostgresModuleRepository) UpsertProgress(ctx context.Context, progress *UserProgress) (*UserProgress, error) {
	const query = `
		INSERT INTO user_progress (
			id, user_id, module_id, completed, progress_percentage, completed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, module_id) DO UPDATE SET
			completed = EXCLUDED.completed,
			progress_percentage = EXCLUDED.progress_percentage,
			completed_at = COALESCE(user_progress.completed_at, EXCLUDED.completed_at)
		RETURNING id, user_id, module_id, completed, progress_percentage, completed_at, created_at`

	var completedAt *time.Time
	if progress.Completed {
		now := time.Now()
		completedAt = &now
	}

	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = time.Now()
	}

	updated := &UserProgress{}
	err := repository.pool.QueryRow(ctx, query,
		progress.ID,
		progress.UserID,
		progress.ModuleID,
		progress.Completed,
		progress.ProgressPercentage,
		completedAt,
		progress.CreatedAt,
	).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.ModuleID,
		&updated.Completed,
		&updated.ProgressPercentage,
		&updated.CompletedAt,
		&updated.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_module_repo_upsert_progress_failed: %w", err)
	}

	return updated, nil
}
