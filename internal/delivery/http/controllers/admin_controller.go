package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"campusparties/internal/delivery/http/helpers"
	"campusparties/internal/domain"
)

type AdminController struct {
	Logger  *slog.Logger
	Service domain.ModerationService
}

func NewAdminController(logger *slog.Logger, svc domain.ModerationService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPending godoc
// @Summary List parties awaiting approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/parties/pending [get]
func (c *AdminController) ListPending(w http.ResponseWriter, r *http.Request) {
	parties, err := c.Service.ListPending(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newPartyViews(parties))
}

// Approve godoc
// @Summary Approve a pending party
// @Description Moves a pending party to approved. Approved and rejected are terminal.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param partyID path string true "Party ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/parties/{partyID}/approve [post]
func (c *AdminController) Approve(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Approve, "Party approved")
}

// Reject godoc
// @Summary Reject a pending party
// @Description Moves a pending party to rejected. Approved and rejected are terminal.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param partyID path string true "Party ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/parties/{partyID}/reject [post]
func (c *AdminController) Reject(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Reject, "Party rejected")
}

func (c *AdminController) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) error, message string) {
	id, ok := partyIDFromPath(w, r)
	if !ok {
		return
	}
	if err := op(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "party not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidState, "party is not pending")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"message": message,
		"partyId": id,
	})
}
