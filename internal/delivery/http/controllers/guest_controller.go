package controllers

import (
	"log/slog"
	"net/http"

	"planpact/internal/delivery/http/helpers"
	"planpact/internal/delivery/http/middleware"
	"planpact/internal/domain"
)

// AddGuestsRequest is the request body for POST /pacts/{pactID}/guests.
type AddGuestsRequest struct {
	Guests []GuestInviteRequest `json:"guests" validate:"required,min=1,dive"`
}

// GuestListSuccessResponse is the success response envelope for POST /pacts/{pactID}/guests (200).
type GuestListSuccessResponse struct {
	Data  []*domain.Guest   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GuestRSVPListSuccessResponse is the success response envelope for GET /pacts/{pactID}/guests (200).
type GuestRSVPListSuccessResponse struct {
	Data  []*domain.GuestWithRSVP `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// GuestController handles the guest list of a pact.
type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

// NewGuestController creates a GuestController with the given logger and service.
func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// AddGuests godoc
// @Summary Invite guests
// @Description Host-only. Invites each e-mail; an e-mail already on the list keeps its row and response and gets the new name. New guests receive an invitation e-mail.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Param body body AddGuestsRequest true "Guests to invite"
// @Success 200 {object} controllers.GuestListSuccessResponse "data contains the invited guests"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not host)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/guests [post]
func (c *GuestController) AddGuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	var req AddGuestsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guests, err := c.Service.AddGuests(r.Context(), r.PathValue("pactID"), userID, toInvites(req.Guests))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}

// ListGuests godoc
// @Summary List guests
// @Description Guests of the pact with their responses, ordered by name. Visible to the host and invited guests.
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Success 200 {object} controllers.GuestRSVPListSuccessResponse "data contains the guests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	guests, err := c.Service.ListGuests(r.Context(), r.PathValue("pactID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	if guests == nil {
		guests = []*domain.GuestWithRSVP{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}
