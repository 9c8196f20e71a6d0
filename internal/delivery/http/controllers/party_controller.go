package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"campusparties/internal/delivery/http/helpers"
	"campusparties/internal/delivery/http/middleware"
	"campusparties/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type PartyController struct {
	Logger     *slog.Logger
	Parties    domain.PartyService
	Attendance domain.AttendanceService
}

func NewPartyController(logger *slog.Logger, parties domain.PartyService, attendance domain.AttendanceService) *PartyController {
	return &PartyController{
		Logger:     logger,
		Parties:    parties,
		Attendance: attendance,
	}
}

// PartyView is the external party payload. Multi-word fields use camelCase.
type PartyView struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Host       string  `json:"host"`
	Category   string  `json:"category"`
	Day        string  `json:"day"`
	DoorsOpen  string  `json:"doorsOpen"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	GoingCount int     `json:"goingCount"`
	Status     string  `json:"status"`
}

func newPartyView(p *domain.Party) PartyView {
	return PartyView{
		ID:         p.ID,
		Title:      p.Title,
		Host:       p.Host,
		Category:   p.Category,
		Day:        string(p.Day),
		DoorsOpen:  p.DoorsOpen,
		Address:    p.Address,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		GoingCount: p.GoingCount,
		Status:     string(p.Status),
	}
}

func newPartyViews(parties []*domain.Party) []PartyView {
	views := make([]PartyView, 0, len(parties))
	for _, p := range parties {
		views = append(views, newPartyView(p))
	}
	return views
}

// partyIDFromPath extracts and checks the partyID path segment. Malformed IDs
// cannot match any row, so they are reported as not found.
func partyIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("partyID")
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "party not found")
		return "", false
	}
	return id, true
}

// List godoc
// @Summary List this weekend's approved parties
// @Description Returns approved parties for the current weekend ordered by going count, optionally filtered by day (friday/saturday).
// @Tags parties
// @Produce json
// @Param day query string false "Filter by day (friday/saturday)"
// @Success 200 {object} helpers.APIResponse
// @Router /parties [get]
func (c *PartyController) List(w http.ResponseWriter, r *http.Request) {
	parties, err := c.Parties.List(r.Context(), r.URL.Query().Get("day"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newPartyViews(parties))
}

// Get godoc
// @Summary Get a single party by ID
// @Description Returns the party regardless of moderation status.
// @Tags parties
// @Produce json
// @Param partyID path string true "Party ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /parties/{partyID} [get]
func (c *PartyController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r)
	if !ok {
		return
	}
	party, err := c.Parties.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "party not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newPartyView(party))
}

// CreatePartyRequest is the request body for POST /parties. Identity, counter,
// status, and weekend fields are never read from the body.
type CreatePartyRequest struct {
	Title     string   `json:"title"`
	Host      string   `json:"host"`
	Category  string   `json:"category"`
	Day       string   `json:"day"`
	DoorsOpen string   `json:"doorsOpen"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Create godoc
// @Summary Create a party listing
// @Description Creates a new party with status pending until an admin approves it. Missing coordinates are generated inside the campus area.
// @Tags parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreatePartyRequest true "Party fields"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /parties [post]
func (c *PartyController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePartyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
		return
	}

	input := domain.CreatePartyInput{
		Title:     req.Title,
		Host:      req.Host,
		Category:  req.Category,
		Day:       domain.Day(req.Day),
		DoorsOpen: req.DoorsOpen,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	party, err := c.Parties.Create(r.Context(), input, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newPartyView(party))
}

// Delete godoc
// @Summary Delete a party
// @Description Deletes a party. Only the creator can delete their own party.
// @Tags parties
// @Produce json
// @Security BearerAuth
// @Param partyID path string true "Party ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /parties/{partyID} [delete]
func (c *PartyController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r)
	if !ok {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
		return
	}

	if err := c.Parties.Delete(r.Context(), id, identity.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "party not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "you can only delete your own parties")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "Party deleted"})
}

// GoingResponse is the payload returned by the going toggle.
type GoingResponse struct {
	Going      bool `json:"going"`
	GoingCount int  `json:"goingCount"`
}

// ToggleGoing godoc
// @Summary Toggle attendance for a party
// @Description Flips the caller's attendance and returns the new state with the recomputed count.
// @Tags parties
// @Produce json
// @Security BearerAuth
// @Param partyID path string true "Party ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /parties/{partyID}/going [post]
func (c *PartyController) ToggleGoing(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r)
	if !ok {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
		return
	}

	going, count, err := c.Attendance.Toggle(r.Context(), id, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "party not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GoingResponse{Going: going, GoingCount: count})
}

// AnonymousGoing godoc
// @Summary Bump attendance anonymously
// @Description Best-effort counter bump for unauthenticated callers. Heavily rate limited.
// @Tags parties
// @Produce json
// @Param partyID path string true "Party ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Router /parties/{partyID}/going/anonymous [post]
func (c *PartyController) AnonymousGoing(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r)
	if !ok {
		return
	}
	count, err := c.Attendance.AnonymousGoing(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "party not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]int{"goingCount": count})
}

// ListMyGoing godoc
// @Summary List party IDs the caller is going to
// @Tags parties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /parties/user/going [get]
func (c *PartyController) ListMyGoing(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
		return
	}

	ids, err := c.Attendance.ListPartyIDsByUser(r.Context(), identity.ID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ids)
}
