// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package coaching

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parityhq/parity-api/internal/platform/middleware"
	requestutil "github.com/parityhq/parity-api/internal/platform/request"
	"github.com/parityhq/parity-api/internal/platform/respond"
	"github.com/parityhq/parity-api/internal/platform/validate"
)

// Handler implements the coaching HTTP endpoints.
type Handler struct {
	coachingService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{coachingService: service}
}

// Routes returns a [chi.Router] configured with coaching routes.
//
// # Endpoints
//   - GET  /modules                    : Lists the curriculum in order.
//   - GET  /modules/{id}               : Returns one module.
//   - GET  /progress                   : Returns the caller's progress.
//   - POST /modules/{id}/progress      : Upserts the caller's progress.
//
// All routes require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/modules", handler.listModules)
	router.Get("/modules/{moduleID}", handler.getModule)
	router.Get("/progress", handler.getProgress)
	router.Post("/modules/{moduleID}/progress", handler.updateProgress)

	return router
}

// listModules handles GET /coaching/modules requests.
func (handler *Handler) listModules(writer http.ResponseWriter, req *http.Request) {
	modules, err := handler.coachingService.ListModules(req.Context())
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, modules)
}

// getModule handles GET /coaching/modules/{moduleID} requests.
func (handler *Handler) getModule(writer http.ResponseWriter, req *http.Request) {
	module, err := handler.coachingService.GetModule(req.Context(), requestutil.ID(req, "moduleID"))
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, module)
}

// getProgress handles GET /coaching/progress requests.
func (handler *Handler) getProgress(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	progress, err := handler.coachingService.GetProgress(req.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, progress)
}

// progressRequest is the JSON payload for a progress update.
type progressRequest struct {
	ProgressPercentage int  `json:"progress_percentage"`
	Completed          bool `json:"completed"`
}

// updateProgress handles POST /coaching/modules/{moduleID}/progress requests.
//
// # Returns
//   - Writes HTTP 200 OK with the current progress row.
//   - Writes HTTP 400 if the percentage is outside 0..100.
//   - Writes HTTP 404 if the module does not exist.
func (handler *Handler) updateProgress(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input progressRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	validator := &validate.Validator{}
	validator.Range("progress_percentage", input.ProgressPercentage, 0, 100)
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	progress, err := handler.coachingService.UpdateProgress(
		req.Context(), identity.UserID, requestutil.ID(req, "moduleID"),
		ProgressInput{
			ProgressPercentage: input.ProgressPercentage,
			Completed:          input.Completed,
		},
	)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, progress)
}
