// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parityhq/parity-api/internal/platform/apperr"
	"github.com/parityhq/parity-api/pkg/uuid"
)

// PostgresPostRepository implements the PostRepository interface using pgx.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of the PostRepository.
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// CreatePost persists a new post record into the posts table.
func (repository *PostgresPostRepository) CreatePost(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO posts (
			id, content, anonymous_user_id, like_count, comment_count,
			caring_gesture_count, is_moderated, created_at
		) VALUES ($1, $2, $3, 0, 0, 0, FALSE, $4)`

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		post.ID,
		post.Content,
		post.AnonymousUserID,
		post.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	return nil
}

// FindPostByID retrieves a post by its unique ID.
func (repository *PostgresPostRepository) FindPostByID(ctx context.Context, id string) (*Post, error) {
	const query = `
		SELECT id, content, anonymous_user_id, like_count, comment_count,
		       caring_gesture_count, is_moderated, created_at
		FROM posts
		WHERE id = $1`

	post := &Post{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Content,
		&post.AnonymousUserID,
		&post.LikeCount,
		&post.CommentCount,
		&post.CaringGestureCount,
		&post.IsModerated,
		&post.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_failed: %w", err)
	}

	return post, nil
}

// ListPosts returns one feed page ordered newest first, plus the total count.
func (repository *PostgresPostRepository) ListPosts(ctx context.Context, limit, offset int) ([]Post, int, error) {
	const countQuery = "SELECT COUNT(*) FROM posts"

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	const listQuery = `
		SELECT id, content, anonymous_user_id, like_count, comment_count,
		       caring_gesture_count, is_moderated, created_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID,
			&post.Content,
			&post.AnonymousUserID,
			&post.LikeCount,
			&post.CommentCount,
			&post.CaringGestureCount,
			&post.IsModerated,
			&post.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_post_repo_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_rows_failed: %w", err)
	}

	return posts, total, nil
}

// ToggleLike flips the caller's like inside a single transaction.
//
// The post row is locked first so the counter update and the like insert or
// delete are serialized against concurrent toggles on the same post.
func (repository *PostgresPostRepository) ToggleLike(ctx context.Context, postID, anonymousUserID string) (bool, int, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("postgres_post_repo_like_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	var currentCount int
	err = transaction.QueryRow(ctx,
		"SELECT like_count FROM posts WHERE id = $1 FOR UPDATE", postID,
	).Scan(&currentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, apperr.NotFound("Post")
		}
		return false, 0, fmt.Errorf("postgres_post_repo_like_lock_failed: %w", err)
	}

	tag, err := transaction.Exec(ctx,
		"DELETE FROM likes WHERE post_id = $1 AND anonymous_user_id = $2",
		postID, anonymousUserID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("postgres_post_repo_unlike_failed: %w", err)
	}

	var liked bool
	var likeCount int

	if tag.RowsAffected() > 0 {
		// Existing like removed; counter floors at zero.
		err = transaction.QueryRow(ctx,
			"UPDATE posts SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1 RETURNING like_count",
			postID,
		).Scan(&likeCount)
		if err != nil {
			return false, 0, fmt.Errorf("postgres_post_repo_like_decrement_failed: %w", err)
		}
		liked = false
	} else {
		_, err = transaction.Exec(ctx,
			"INSERT INTO likes (id, post_id, anonymous_user_id, created_at) VALUES ($1, $2, $3, $4)",
			uuid.New(), postID, anonymousUserID, time.Now(),
		)
		if err != nil {
			return false, 0, fmt.Errorf("postgres_post_repo_like_insert_failed: %w", err)
		}

		err = transaction.QueryRow(ctx,
			"UPDATE posts SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count",
			postID,
		).Scan(&likeCount)
		if err != nil {
			return false, 0, fmt.Errorf("postgres_post_repo_like_increment_failed: %w", err)
		}
		liked = true
	}

	if err := transaction.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("postgres_post_repo_like_commit_failed: %w", err)
	}

	return liked, likeCount, nil
}

// CreateComment persists a comment and bumps the post's comment counter in
// one transaction.
func (repository *PostgresPostRepository) CreateComment(ctx context.Context, comment *Comment) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_comment_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	// Counter first: zero rows affected means the post is gone, before the
	// insert can trip the foreign key.
	tag, err := transaction.Exec(ctx,
		"UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1",
		comment.PostID,
	)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_comment_count_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	_, err = transaction.Exec(ctx,
		`INSERT INTO comments (id, post_id, content, anonymous_user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		comment.ID,
		comment.PostID,
		comment.Content,
		comment.AnonymousUserID,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_comment_insert_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_post_repo_comment_commit_failed: %w", err)
	}

	return nil
}

// ListComments returns every comment on a post ordered oldest first.
func (repository *PostgresPostRepository) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	const query = `
		SELECT id, post_id, content, anonymous_user_id, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at`

	rows, err := repository.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_comments_failed: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.Content,
			&comment.AnonymousUserID,
			&comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_comment_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_comment_rows_failed: %w", err)
	}

	return comments, nil
}

// CreateGesture persists a caring gesture and bumps the post's gesture
// counter in one transaction.
func (repository *PostgresPostRepository) CreateGesture(ctx context.Context, gesture *CaringGesture) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_gesture_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	if gesture.CreatedAt.IsZero() {
		gesture.CreatedAt = time.Now()
	}

	tag, err := transaction.Exec(ctx,
		"UPDATE posts SET caring_gesture_count = caring_gesture_count + 1 WHERE id = $1",
		gesture.PostID,
	)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_gesture_count_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	_, err = transaction.Exec(ctx,
		`INSERT INTO caring_gestures (id, post_id, gesture_type, anonymous_user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		gesture.ID,
		gesture.PostID,
		gesture.GestureType,
		gesture.AnonymousUserID,
		gesture.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_gesture_insert_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_post_repo_gesture_commit_failed: %w", err)
	}

	return nil
}

// ListGestures returns every caring gesture on a post ordered oldest first.
func (repository *PostgresPostRepository) ListGestures(ctx context.Context, postID string) ([]CaringGesture, error) {
	const query = `
		SELECT id, post_id, gesture_type, anonymous_user_id, created_at
		FROM caring_gestures
		WHERE post_id = $1
		ORDER BY created_at`

	rows, err := repository.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_gestures_failed: %w", err)
	}
	defer rows.Close()

	gestures := []CaringGesture{}
	for rows.Next() {
		var gesture CaringGesture
		if err := rows.Scan(
			&gesture.ID,
			&gesture.PostID,
			&gesture.GestureType,
			&gesture.AnonymousUserID,
			&gesture.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_gesture_scan_failed: %w", err)
		}
		gestures = append(gestures, gesture)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_gesture_rows_failed: %w", err)
	}

	return gestures, nil
}
