// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package affirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parityhq/parity-api/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListDefaultTemplates returns the curated template set.
func (repository *PostgresRepository) ListDefaultTemplates(ctx context.Context) ([]Template, error) {
	const query = `
		SELECT id, title, content, category, is_default, created_at
		FROM affirmation_templates
		WHERE is_default = TRUE`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_affirmation_repo_list_templates_failed: %w", err)
	}
	defer rows.Close()

	templates := []Template{}
	for rows.Next() {
		var template Template
		if err := rows.Scan(
			&template.ID,
			&template.Title,
			&template.Content,
			&template.Category,
			&template.IsDefault,
			&template.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_affirmation_repo_template_scan_failed: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_affirmation_repo_template_rows_failed: %w", err)
	}

	return templates, nil
}

// FindTemplateByID retrieves a template by its unique ID.
func (repository *PostgresRepository) FindTemplateByID(ctx context.Context, id string) (*Template, error) {
	const query = `
		SELECT id, title, content, category, is_default, created_at
		FROM affirmation_templates
		WHERE id = $1`

	template := &Template{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&template.ID,
		&template.Title,
		&template.Content,
		&template.Category,
		&template.IsDefault,
		&template.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Affirmation template")
		}
		return nil, fmt.Errorf("postgres_affirmation_repo_find_template_failed: %w", err)
	}

	return template, nil
}

// CreateAffirmation persists a sent affirmation.
func (repository *PostgresRepository) CreateAffirmation(ctx context.Context, affirmation *Affirmation) error {
	const query = `
		INSERT INTO affirmations (
			id, user_id, content, template_id, sent_via, recipient_info, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if affirmation.CreatedAt.IsZero() {
		affirmation.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		affirmation.ID,
		affirmation.UserID,
		affirmation.Content,
		affirmation.TemplateID,
		affirmation.SentVia,
		affirmation.RecipientInfo,
		affirmation.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_affirmation_repo_create_failed: %w", err)
	}

	return nil
}

// ListSentByUser returns every affirmation the user has sent, newest first.
func (repository *PostgresRepository) ListSentByUser(ctx context.Context, userID string) ([]Affirmation, error) {
	const query = `
		SELECT id, user_id, content, template_id, sent_via, recipient_info, created_at
		FROM affirmations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_affirmation_repo_list_sent_failed: %w", err)
	}
	defer rows.Close()

	affirmations := []Affirmation{}
	for rows.Next() {
		var affirmation Affirmation
		if err := rows.Scan(
			&affirmation.ID,
			&affirmation.UserID,
			&affirmation.Content,
			&affirmation.TemplateID,
			&affirmation.SentVia,
			&affirmation.RecipientInfo,
			&affirmation.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_affirmation_repo_sent_scan_failed: %w", err)
		}
		affirmations = append(affirmations, affirmation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_affirmation_repo_sent_rows_failed: %w", err)
	}

	return affirmations, nil
}
