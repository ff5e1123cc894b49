// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package partner

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parityhq/parity-api/internal/platform/middleware"
	requestutil "github.com/parityhq/parity-api/internal/platform/request"
	"github.com/parityhq/parity-api/internal/platform/respond"
	"github.com/parityhq/parity-api/internal/platform/validate"
)

// Handler implements partner management HTTP endpoints.
type Handler struct {
	partnerService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{partnerService: service}
}

// Routes returns a [chi.Router] configured with partner routes.
//
// # Endpoints
//   - GET  /link_code : Returns the caller's shareable link code.
//   - POST /link      : Links the caller with another account.
//   - GET  /me        : Returns the authenticated caller.
//
// All routes require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/link_code", handler.linkCode)
	router.Post("/link", handler.link)
	router.Get("/me", handler.me)

	return router
}

// linkCode handles GET /partner/link_code requests.
func (handler *Handler) linkCode(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	code, err := handler.partnerService.GetLinkCode(req.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, map[string]any{"partner_link_code": code})
}

// linkRequest is the JSON payload for a link attempt.
type linkRequest struct {
	PartnerLinkCode string `json:"partner_link_code"`
}

// link handles POST /partner/link requests.
//
// # Returns
//   - Writes HTTP 200 OK with a confirmation message on success.
//   - Writes HTTP 404 if the code matches no account.
//   - Writes HTTP 400 if the caller targets their own code.
//   - Writes HTTP 409 if either side is already linked.
func (handler *Handler) link(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input linkRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	if input.PartnerLinkCode == "" {
		respond.Error(writer, req, validate.RequiredError("partner_link_code", "is required"))
		return
	}

	target, err := handler.partnerService.Link(req.Context(), identity.UserID, input.PartnerLinkCode)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": fmt.Sprintf("Successfully linked with user %s.", target.Email),
	})
}

// me handles GET /partner/me requests.
func (handler *Handler) me(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, err := handler.partnerService.Me(req.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, user.Public())
}
