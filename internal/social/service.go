// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package social

import (
	"context"

	"github.com/parityhq/parity-api/pkg/pagination"
	"github.com/parityhq/parity-api/pkg/uuid"
)

// Service implements the anonymous feed use cases.
type Service struct {
	postRepository PostRepository
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(postRepo PostRepository) *Service {
	return &Service{postRepository: postRepo}
}

// CreatePost publishes a new anonymous post authored by the caller's
// anonymous ID.
func (service *Service) CreatePost(context context.Context, anonymousUserID, content string) (*Post, error) {
	post := &Post{
		ID:              uuid.New(),
		Content:         content,
		AnonymousUserID: anonymousUserID,
	}

	if err := service.postRepository.CreatePost(context, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts returns one feed page, newest first, with pagination metadata.
func (service *Service) ListPosts(context context.Context, params pagination.Params) ([]Post, pagination.Meta, error) {
	posts, total, err := service.postRepository.ListPosts(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// LikeResult describes the outcome of a like toggle.
type LikeResult struct {
	Message   string `json:"message"`
	LikeCount int    `json:"like_count"`
}

// ToggleLike flips the caller's like on a post.
//
// Returns [apperr.NotFound] if the post does not exist. Repeating the call
// restores the previous state: it is its own inverse.
func (service *Service) ToggleLike(context context.Context, postID, anonymousUserID string) (*LikeResult, error) {
	liked, likeCount, err := service.postRepository.ToggleLike(context, postID, anonymousUserID)
	if err != nil {
		return nil, err
	}

	message := "Like removed."
	if liked {
		message = "Post liked."
	}

	return &LikeResult{Message: message, LikeCount: likeCount}, nil
}

// CreateComment adds an anonymous comment to a post.
//
// Returns [apperr.NotFound] if the post does not exist; nothing is written
// in that case.
func (service *Service) CreateComment(context context.Context, postID, anonymousUserID, content string) (*Comment, error) {
	comment := &Comment{
		ID:              uuid.New(),
		PostID:          postID,
		Content:         content,
		AnonymousUserID: anonymousUserID,
	}

	if err := service.postRepository.CreateComment(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns a post's comments, oldest first.
func (service *Service) ListComments(context context.Context, postID string) ([]Comment, error) {
	// Listing the children of a missing post is a 404, same as mutating it.
	if _, err := service.postRepository.FindPostByID(context, postID); err != nil {
		return nil, err
	}
	return service.postRepository.ListComments(context, postID)
}

// SendGesture records a caring gesture on a post.
//
// Returns [apperr.NotFound] if the post does not exist; nothing is written
// in that case. The gesture type is validated at the HTTP boundary.
func (service *Service) SendGesture(context context.Context, postID, anonymousUserID string, gestureType GestureType) (*CaringGesture, error) {
	gesture := &CaringGesture{
		ID:              uuid.New(),
		PostID:          postID,
		GestureType:     gestureType,
		AnonymousUserID: anonymousUserID,
	}

	if err := service.postRepository.CreateGesture(context, gesture); err != nil {
		return nil, err
	}

	return gesture, nil
}

// ListGestures returns a post's caring gestures, oldest first.
func (service *Service) ListGestures(context context.Context, postID string) ([]CaringGesture, error) {
	if _, err := service.postRepository.FindPostByID(context, postID); err != nil {
		return nil, err
	}
	return service.postRepository.ListGestures(context, postID)
}
