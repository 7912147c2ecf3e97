// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/database"
	"github.com/tomtom215/beylog/internal/logging"
	"github.com/tomtom215/beylog/internal/models"
)

// invalidCredentials is the single message for every failed login so that
// unknown emails and wrong passwords are indistinguishable.
const invalidCredentials = "Invalid email or password"

// UserResponse wraps a user profile.
type UserResponse struct {
	User *models.User `json:"user"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register creates a regular account.
//
// @Summary Register
// @Description Creates a non-admin account. Username defaults to "Blader".
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Account"
// @Success 201 {object} APIResponse{data=UserResponse}
// @Failure 400 {object} APIResponse "Validation failed or email taken"
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.RegisterRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	h.createAccount(rw, r, req.Email, req.Password, req.Username, false)
}

// AdminRegister lets an administrator create any account, including admins.
//
// @Summary Register user (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AdminRegisterRequest true "Account"
// @Success 201 {object} APIResponse{data=UserResponse}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/admin/register [post]
func (h *Handler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.AdminRegisterRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	h.createAccount(rw, r, req.Email, req.Password, req.Username, req.IsAdmin)
}

func (h *Handler) createAccount(rw *ResponseWriter, r *http.Request, email, password, username string, isAdmin bool) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to hash password")
		rw.InternalError("Failed to create account")
		return
	}

	user, err := h.db.CreateUser(r.Context(), email, username, hash, isAdmin)
	if err != nil {
		respondDataError(rw, err, "User")
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("new_user_id", user.ID).
		Bool("is_admin", user.IsAdmin).
		Msg("Account created")
	rw.Created(UserResponse{User: user})
}

// Login verifies a password and starts a session.
//
// @Summary Login
// @Description Verifies credentials, issues a 7-day session token and sets it as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} APIResponse{data=UserResponse}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse "Invalid email or password"
// @Failure 429 {object} APIResponse "Too many failed attempts"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.LoginRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	email := database.NormalizeEmail(req.Email)
	userAgent := r.UserAgent()

	if !h.throttle.Allowed(email) {
		auth.RecordLogin("throttled")
		h.security.LogLoginFailure(email, r.RemoteAddr, userAgent, "throttled")
		rw.TooManyRequests("Too many failed login attempts, please try again later")
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		rw.DatabaseError(err)
		return
	}

	if user == nil {
		auth.EqualizeTiming(req.Password)
		h.loginFailed(rw, r, email, "unknown_email")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.loginFailed(rw, r, email, "bad_password")
		return
	}

	token, err := h.codec.Issue(user.ID, user.IsAdmin)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to issue session token")
		rw.InternalError("Failed to start session")
		return
	}

	h.throttle.Success(email)
	auth.RecordLogin("success")
	h.security.LogLoginSuccess(user.ID, email, r.RemoteAddr, userAgent)

	auth.SetSessionCookie(rw.w, token, h.secureCookies())
	rw.Success(UserResponse{User: user})
}

func (h *Handler) loginFailed(rw *ResponseWriter, r *http.Request, email, reason string) {
	h.throttle.Failure(email)
	auth.RecordLogin("failure")
	h.security.LogLoginFailure(email, r.RemoteAddr, r.UserAgent(), reason)
	rw.Unauthorized(invalidCredentials)
}

// Logout clears the session cookie. Tokens are stateless and stay valid
// until expiry; the client simply stops presenting it.
//
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse{data=MessageResponse}
// @Router /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.security.LogLogout(p.UserID, r.RemoteAddr)
	}

	auth.ClearSessionCookie(rw.w, h.secureCookies())
	rw.Success(MessageResponse{Message: "Logged out"})
}

// Me returns the profile of the authenticated user.
//
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse{data=UserResponse}
// @Failure 401 {object} APIResponse
// @Router /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	p, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(r.Context(), p.UserID)
	if errors.Is(err, database.ErrNotFound) {
		// Valid token for a user that no longer exists.
		rw.Unauthorized("Not authenticated")
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(UserResponse{User: user})
}
