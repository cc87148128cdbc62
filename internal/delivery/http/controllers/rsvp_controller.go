package controllers

import (
	"log/slog"
	"net/http"

	"planpact/internal/delivery/http/helpers"
	"planpact/internal/delivery/http/middleware"
	"planpact/internal/domain"
)

// RSVPRequest is the request body for POST /pacts/{pactID}/rsvp.
type RSVPRequest struct {
	Status   string  `json:"status" validate:"required,oneof=confirmed declined"`
	PlusOnes int     `json:"plus_ones" validate:"gte=0"`
	Message  *string `json:"message" validate:"omitempty,max=500"`
}

// RSVPSuccessResponse is the success response envelope for POST /pacts/{pactID}/rsvp (200).
type RSVPSuccessResponse struct {
	Data  *domain.RSVP      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RSVPListResponse is the response body for GET /pacts/{pactID}/rsvps.
type RSVPListResponse struct {
	Items      []*domain.RSVPWithGuest `json:"items"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// RSVPListSuccessResponse is the success response envelope for GET /pacts/{pactID}/rsvps (200).
type RSVPListSuccessResponse struct {
	Data  RSVPListResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StatsSuccessResponse is the success response envelope for GET /pacts/{pactID}/stats (200).
type StatsSuccessResponse struct {
	Data  domain.RSVPStats  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RSVPController handles guest responses.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

// NewRSVPController creates an RSVPController with the given logger and service.
func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// RecordRSVP godoc
// @Summary Respond to a pact
// @Description Records the authenticated guest's response, replacing any earlier one. plus_ones must be 0 unless the pact allows plus-ones.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Param body body RSVPRequest true "Response"
// @Success 200 {object} controllers.RSVPSuccessResponse "data contains the recorded response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (absent pact or not invited)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (pact is full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/rsvp [post]
func (c *RSVPController) RecordRSVP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	var req RSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.RecordResponse(r.Context(), r.PathValue("pactID"), userID, domain.RSVPResponse{
		Status:   domain.RSVPStatus(req.Status),
		PlusOnes: req.PlusOnes,
		Message:  req.Message,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// ListRSVPs godoc
// @Summary List responses
// @Description Host-only. Guests' responses, most recent first. Supports page and page_size (default 20, max 100).
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} controllers.RSVPListSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not host)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/rsvps [get]
func (c *RSVPController) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	items, total, err := c.Service.ListResponses(r.Context(), r.PathValue("pactID"), userID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	if items == nil {
		items = []*domain.RSVPWithGuest{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RSVPListResponse{
		Items:      items,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetStats godoc
// @Summary Response counts
// @Description Counts of invited, confirmed, declined and pending guests (host excluded) and the expected head count (host included).
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Success 200 {object} controllers.StatsSuccessResponse "data contains the counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/stats [get]
func (c *RSVPController) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.GetStats(r.Context(), r.PathValue("pactID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
