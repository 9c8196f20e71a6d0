package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campusparties/internal/delivery/http/helpers"
	"campusparties/internal/delivery/http/middleware"
	"campusparties/internal/domain"
)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewAuthController(logger *slog.Logger, svc domain.ProfileService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *SignupRequest) Validate() []string {
	if strings.TrimSpace(r.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// Signup godoc
// @Summary Start signup with an institutional email
// @Description Sends a magic link to the given address via the identity provider. Only institutional-domain addresses are accepted.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.SignupRequest true "Email address"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /auth/signup [post]
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.Signup(r.Context(), req.Email); err != nil {
		// Identity provider failures surface as 400 with the provider's
		// message, same as validation errors.
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"message": "Magic link sent to your email",
	})
}

// SetUsernameRequest is the request body for POST /auth/set-username.
// Any other field, including an admin flag, is ignored by the decoder.
type SetUsernameRequest struct {
	Username string `json:"username"`
}

// SetUsername godoc
// @Summary Set the caller's username
// @Description Creates the profile on first use or updates the username of an existing one.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SetUsernameRequest true "Username (2-50 characters after trimming)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/set-username [post]
func (c *AuthController) SetUsername(w http.ResponseWriter, r *http.Request) {
	var req SetUsernameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
		return
	}

	username, err := c.Service.SetUsername(r.Context(), identity.ID, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"username": username})
}

// MeResponse is the profile payload for GET /auth/me. The email comes from the
// verified token, not from storage.
type MeResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Me godoc
// @Summary Get the caller's profile
// @Description Returns the caller's profile, or null when the identity has not set a username yet.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
		return
	}

	profile, err := c.Service.GetByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			// Authenticated with the provider but no profile yet.
			helpers.WriteJSONSuccess(w, http.StatusOK, nil)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, MeResponse{
		ID:        profile.ID,
		Email:     identity.Email,
		Username:  profile.Username,
		IsAdmin:   profile.IsAdmin,
		CreatedAt: profile.CreatedAt,
	})
}
