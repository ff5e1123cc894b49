// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package social

import "context"

// PostRepository defines the data access contract for the anonymous feed.
//
// # Counter Consistency
//
// ToggleLike, CreateComment, and CreateGesture adjust the parent post's
// denormalized counter inside the same transaction as the child-row write.
type PostRepository interface {
	// CreatePost persists a new post with zeroed counters.
	CreatePost(ctx context.Context, post *Post) error

	// FindPostByID returns the post with the given ID.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	FindPostByID(ctx context.Context, id string) (*Post, error)

	// ListPosts returns one feed page, newest first, plus the total post
	// count for pagination metadata.
	ListPosts(ctx context.Context, limit, offset int) ([]Post, int, error)

	// ToggleLike flips the caller's like on a post.
	//
	// If the caller has not liked the post, a like row is inserted and the
	// counter incremented; if they have, the row is deleted and the counter
	// decremented (never below zero). Returns whether the post is now liked
	// and the resulting like count.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	ToggleLike(ctx context.Context, postID, anonymousUserID string) (liked bool, likeCount int, err error)

	// CreateComment persists a comment and increments the post's comment
	// counter.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	CreateComment(ctx context.Context, comment *Comment) error

	// ListComments returns every comment on a post, oldest first.
	ListComments(ctx context.Context, postID string) ([]Comment, error)

	// CreateGesture persists a caring gesture and increments the post's
	// gesture counter.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	CreateGesture(ctx context.Context, gesture *CaringGesture) error

	// ListGestures returns every caring gesture on a post, oldest first.
	ListGestures(ctx context.Context, postID string) ([]CaringGesture, error)
}
