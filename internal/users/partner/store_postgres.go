// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parityhq/parity-api/internal/platform/apperr"
	"github.com/parityhq/parity-api/internal/users/auth"
)

// PostgresLinkRepository implements the LinkRepository interface using pgx.
type PostgresLinkRepository struct {
	pool *pgxpool.Pool
}

// NewLinkRepository creates a new PostgreSQL implementation of the LinkRepository.
func NewLinkRepository(pool *pgxpool.Pool) *PostgresLinkRepository {
	return &PostgresLinkRepository{pool: pool}
}

// FindByLinkCode retrieves the account holding the given partner link code.
func (repository *PostgresLinkRepository) FindByLinkCode(ctx context.Context, code string) (*auth.User, error) {
	const query = `
		SELECT id, email, password_hash, partner_link_code, partner_id, created_at
		FROM users
		WHERE partner_link_code = $1`

	user := &auth.User{}
	err := repository.pool.QueryRow(ctx, query, code).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.PartnerLinkCode,
		&user.PartnerID,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Partner link code")
		}
		return nil, fmt.Errorf("postgres_link_repo_find_by_code_failed: %w", err)
	}

	return user, nil
}

// Link writes the mutual partner link inside a single serializable transaction.
//
// Both UPDATEs are guarded with "partner_id IS NULL" so a concurrent link that
// committed between the service-level checks and this transaction makes one of
// the updates touch zero rows, which aborts the whole thing.
func (repository *PostgresLinkRepository) Link(ctx context.Context, userID, partnerID string) error {
	transaction, err := repository.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("postgres_link_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	const linkQuery = "UPDATE users SET partner_id = $2 WHERE id = $1 AND partner_id IS NULL"

	tag, err := transaction.Exec(ctx, linkQuery, userID, partnerID)
	if err != nil {
		return fmt.Errorf("postgres_link_repo_update_caller_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("You are already linked with a partner.")
	}

	tag, err = transaction.Exec(ctx, linkQuery, partnerID, userID)
	if err != nil {
		return fmt.Errorf("postgres_link_repo_update_target_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("This user is already linked with a partner.")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_link_repo_commit_failed: %w", err)
	}

	return nil
}
