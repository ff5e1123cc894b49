// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package affirmation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parityhq/parity-api/internal/platform/middleware"
	requestutil "github.com/parityhq/parity-api/internal/platform/request"
	"github.com/parityhq/parity-api/internal/platform/respond"
	"github.com/parityhq/parity-api/internal/platform/validate"
)

// Handler implements the affirmation HTTP endpoints.
type Handler struct {
	affirmationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{affirmationService: service}
}

// Routes returns a [chi.Router] configured with affirmation routes.
//
// # Endpoints
//   - GET  /templates : Lists the curated default templates.
//   - POST /send      : Records a sent affirmation.
//   - GET  /sent      : Returns the caller's sent history.
//
// All routes require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/templates", handler.listTemplates)
	router.Post("/send", handler.send)
	router.Get("/sent", handler.listSent)

	return router
}

// listTemplates handles GET /affirmations/templates requests.
func (handler *Handler) listTemplates(writer http.ResponseWriter, req *http.Request) {
	templates, err := handler.affirmationService.ListTemplates(req.Context())
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, templates)
}

// sendRequest is the JSON payload for sending an affirmation.
type sendRequest struct {
	Content       string          `json:"content"`
	TemplateID    *string         `json:"template_id"`
	SentVia       string          `json:"sent_via"`
	RecipientInfo json.RawMessage `json:"recipient_info"`
}

// send handles POST /affirmations/send requests.
//
// # Returns
//   - Writes HTTP 201 Created with the stored affirmation.
//   - Writes HTTP 400 on a bad channel or missing content.
//   - Writes HTTP 404 if the referenced template does not exist.
func (handler *Handler) send(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input sendRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("content", input.Content).
		Required("sent_via", input.SentVia).
		OneOf("sent_via", input.SentVia, SentViaValues...)
	if input.TemplateID != nil {
		validator.UUID("template_id", *input.TemplateID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	recipientInfo := input.RecipientInfo
	if len(recipientInfo) == 0 {
		recipientInfo = json.RawMessage("{}")
	}

	affirmation, err := handler.affirmationService.Send(req.Context(), identity.UserID, SendInput{
		Content:       input.Content,
		TemplateID:    input.TemplateID,
		SentVia:       input.SentVia,
		RecipientInfo: recipientInfo,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, affirmation)
}

// listSent handles GET /affirmations/sent requests.
func (handler *Handler) listSent(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	affirmations, err := handler.affirmationService.ListSent(req.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, affirmations)
}
