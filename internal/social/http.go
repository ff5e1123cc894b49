// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parityhq/parity-api/internal/platform/middleware"
	requestutil "github.com/parityhq/parity-api/internal/platform/request"
	"github.com/parityhq/parity-api/internal/platform/respond"
	"github.com/parityhq/parity-api/internal/platform/validate"
	"github.com/parityhq/parity-api/pkg/pagination"
)

// maxPostContentLength bounds post and comment bodies.
const maxPostContentLength = 4000

// Handler implements the anonymous feed HTTP endpoints.
type Handler struct {
	socialService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{socialService: service}
}

// Routes returns a [chi.Router] configured with feed routes.
//
// # Endpoints
//   - POST /posts                : Publishes an anonymous post.
//   - GET  /posts                : Returns one feed page, newest first.
//   - POST /posts/{id}/like      : Toggles the caller's like.
//   - POST /posts/{id}/comments  : Adds a comment.
//   - GET  /posts/{id}/comments  : Lists comments, oldest first.
//   - POST /posts/{id}/gestures  : Sends a caring gesture.
//   - GET  /posts/{id}/gestures  : Lists gestures.
//
// All routes require authentication; responses only ever carry anonymous IDs.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/posts", handler.createPost)
	router.Get("/posts", handler.listPosts)
	router.Post("/posts/{postID}/like", handler.toggleLike)
	router.Post("/posts/{postID}/comments", handler.createComment)
	router.Get("/posts/{postID}/comments", handler.listComments)
	router.Post("/posts/{postID}/gestures", handler.sendGesture)
	router.Get("/posts/{postID}/gestures", handler.listGestures)

	return router
}

// postRequest is the JSON payload for creating a post or a comment.
type postRequest struct {
	Content string `json:"content"`
}

// createPost handles POST /social/posts requests.
func (handler *Handler) createPost(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("content", input.Content).
		MaxLen("content", input.Content, maxPostContentLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	post, err := handler.socialService.CreatePost(req.Context(), identity.AnonymousID, input.Content)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, post)
}

// listPosts handles GET /social/posts requests.
func (handler *Handler) listPosts(writer http.ResponseWriter, req *http.Request) {
	params := pagination.FromRequest(req)

	posts, meta, err := handler.socialService.ListPosts(req.Context(), params)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

// toggleLike handles POST /social/posts/{postID}/like requests.
func (handler *Handler) toggleLike(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	result, err := handler.socialService.ToggleLike(req.Context(), requestutil.ID(req, "postID"), identity.AnonymousID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, result)
}

// createComment handles POST /social/posts/{postID}/comments requests.
func (handler *Handler) createComment(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("content", input.Content).
		MaxLen("content", input.Content, maxPostContentLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	comment, err := handler.socialService.CreateComment(
		req.Context(), requestutil.ID(req, "postID"), identity.AnonymousID, input.Content,
	)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, comment)
}

// listComments handles GET /social/posts/{postID}/comments requests.
func (handler *Handler) listComments(writer http.ResponseWriter, req *http.Request) {
	comments, err := handler.socialService.ListComments(req.Context(), requestutil.ID(req, "postID"))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, comments)
}

// gestureRequest is the JSON payload for sending a caring gesture.
type gestureRequest struct {
	GestureType string `json:"gesture_type"`
}

// sendGesture handles POST /social/posts/{postID}/gestures requests.
func (handler *Handler) sendGesture(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input gestureRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("gesture_type", input.GestureType).
		OneOf("gesture_type", input.GestureType, GestureTypes...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	gesture, err := handler.socialService.SendGesture(
		req.Context(), requestutil.ID(req, "postID"), identity.AnonymousID, GestureType(input.GestureType),
	)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, gesture)
}

// listGestures handles GET /social/posts/{postID}/gestures requests.
func (handler *Handler) listGestures(writer http.ResponseWriter, req *http.Request) {
	gestures, err := handler.socialService.ListGestures(req.Context(), requestutil.ID(req, "postID"))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, gestures)
}
