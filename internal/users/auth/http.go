// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parityhq/parity-api/internal/platform/middleware"
	requestutil "github.com/parityhq/parity-api/internal/platform/request"
	"github.com/parityhq/parity-api/internal/platform/respond"
	"github.com/parityhq/parity-api/internal/platform/validate"
)

// Handler implements identity-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points: registration, login,
// the current-user lookup, and the password reset callbacks. It contains no
// business logic or database queries.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with identity routes.
//
// # Endpoints
//   - POST /register        : Creates a new account.
//   - POST /login           : Authenticates and returns a JWT (form-encoded).
//   - POST /forgot-password : Starts the password reset flow.
//   - POST /reset-password  : Completes the password reset flow.
//   - GET  /me              : Returns the authenticated caller.
//   - GET/PUT /settings     : Client settings (non-persistent, see below).
//   - GET/PUT /profile      : Client profile (non-persistent, see below).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Get("/me", handler.me)
		authed.Get("/settings", handler.getSettings)
		authed.Put("/settings", handler.updateSettings)
		authed.Get("/profile", handler.getProfile)
		authed.Put("/profile", handler.updateProfile)
	})

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /users/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the public user.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, req *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, PasswordMinLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Register(req.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, user.Public())
}

// login handles POST /users/login requests.
//
// The payload is form-encoded with "username" and "password" fields — the
// OAuth2 password-grant shape the mobile clients send. The "username" field
// carries the account email.
//
// # Returns
//   - Writes HTTP 200 OK with {access_token, token_type}.
//   - Writes HTTP 401 Unauthorized for bad credentials, without leaking
//     whether the email or the password was wrong.
func (handler *Handler) login(writer http.ResponseWriter, req *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	if err := req.ParseForm(); err != nil {
		respond.Error(writer, req, validate.RequiredError("body", "must be form-encoded"))
		return
	}

	email := req.PostFormValue("username")
	password := req.PostFormValue("password")

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if email == "" || password == "" {
		respond.Error(writer, req, validate.RequiredError("username/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(req.Context(), LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"token_type":   session.TokenType,
	})
}

// me handles GET /users/me requests.
func (handler *Handler) me(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, err := handler.authService.Me(req.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, user.Public())
}

// forgotPasswordRequest is the JSON payload starting a password reset.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgotPassword handles POST /users/forgot-password requests.
//
// Always answers with the same generic message so the endpoint cannot be
// used to probe which emails have accounts.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, req *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	if input.Email == "" {
		respond.Error(writer, req, validate.RequiredError("email", "is required"))
		return
	}

	if err := handler.authService.RequestPasswordReset(req.Context(), input.Email); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "If an account with that email exists, a password reset link has been sent.",
	})
}

// resetPasswordRequest is the JSON payload completing a password reset.
type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// resetPassword handles POST /users/reset-password requests.
func (handler *Handler) resetPassword(writer http.ResponseWriter, req *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("token", input.Token).
		MinLen("new_password", input.NewPassword, PasswordMinLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.authService.ResetPassword(req.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Password has been successfully reset. You can now log in with your new password.",
	})
}

// ── Settings & Profile (non-persistent) ──────────────────────────────────────
//
// The mobile clients read and write a settings and a profile document, but
// nothing server-side consumes them yet. These endpoints keep the client
// contract alive without a storage model: GET returns defaults, PUT echoes
// the submitted document back with a success flag. Persistence lands when a
// server-side feature actually needs the data.

// getSettings handles GET /users/settings requests.
func (handler *Handler) getSettings(writer http.ResponseWriter, req *http.Request) {
	respond.OK(writer, defaultSettings())
}

// updateSettings handles PUT /users/settings requests.
func (handler *Handler) updateSettings(writer http.ResponseWriter, req *http.Request) {
	var input struct {
		Settings map[string]any `json:"settings"`
	}
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success":  true,
		"message":  "Settings updated successfully",
		"settings": input.Settings,
	})
}

// getProfile handles GET /users/profile requests.
func (handler *Handler) getProfile(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, defaultProfile(identity.Email))
}

// updateProfile handles PUT /users/profile requests.
func (handler *Handler) updateProfile(writer http.ResponseWriter, req *http.Request) {
	var input struct {
		Profile map[string]any `json:"profile"`
	}
	if err := requestutil.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"message": "Profile updated successfully",
		"profile": input.Profile,
	})
}

// defaultSettings is the settings document handed to clients that have never
// saved one.
func defaultSettings() map[string]any {
	return map[string]any{
		"notifications": map[string]any{
			"pushNotifications":  true,
			"emailNotifications": false,
			"partnerUpdates":     true,
			"weeklyInsights":     true,
			"soundEnabled":       true,
		},
		"privacy": map[string]any{
			"shareProgress":  true,
			"publicProfile":  false,
			"dataCollection": true,
			"analyticsOptIn": false,
		},
		"preferences": map[string]any{
			"darkMode":       false,
			"language":       "English",
			"hapticFeedback": true,
		},
		"security": map[string]any{
			"biometricAuth": false,
			"autoLock":      false,
			"twoFactorAuth": false,
		},
		"data": map[string]any{
			"autoBackup":      true,
			"backupFrequency": "weekly",
			"dataRetention":   "1year",
		},
		"accessibility": map[string]any{
			"screenReader": false,
			"highContrast": false,
			"largeText":    false,
		},
	}
}

// defaultProfile is the profile document for a caller with no saved profile.
func defaultProfile(email string) map[string]any {
	return map[string]any{
		"personal": map[string]any{
			"email":    email,
			"avatar":   "👤",
			"bio":      "Supporting healthy relationships",
			"location": "",
		},
		"relationship": map[string]any{
			"status":             "single",
			"partnerId":          nil,
			"communicationGoals": []string{},
			"relationshipType":   "romantic",
		},
		"stats": map[string]any{
			"conversationsAnalyzed": 0,
			"improvementScore":      0,
			"streakDays":            0,
			"partnersConnected":     0,
			"badgesEarned":          0,
			"totalPoints":           0,
		},
		"preferences": map[string]any{
			"favoriteTopics":     []string{},
			"learningStyle":      "visual",
			"communicationLevel": "beginner",
			"goals":              []string{},
			"interests":          []string{},
		},
		"social": map[string]any{
			"followers":    0,
			"following":    0,
			"posts":        0,
			"reputation":   0,
			"level":        1,
			"isVerified":   false,
			"privacyLevel": "private",
		},
	}
}
