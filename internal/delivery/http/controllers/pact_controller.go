package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"planpact/internal/delivery/http/helpers"
	"planpact/internal/delivery/http/middleware"
	"planpact/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	pactNotFound = "pact not found"
)

// GuestInviteRequest is one invitation in a guest list.
type GuestInviteRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"required,email"`
}

func toInvites(in []GuestInviteRequest) []domain.GuestInvite {
	out := make([]domain.GuestInvite, len(in))
	for i, g := range in {
		out[i] = domain.GuestInvite{Name: g.Name, Email: g.Email}
	}
	return out
}

// CreatePactRequest is the request body for POST /pacts. Dates use YYYY-MM-DD and time HH:MM.
type CreatePactRequest struct {
	Title         string               `json:"title" validate:"notblank,max=200"`
	Description   string               `json:"description" validate:"max=2000"`
	Date          string               `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string               `json:"time" validate:"omitempty,datetime=15:04"`
	Location      string               `json:"location" validate:"max=200"`
	Address       string               `json:"address" validate:"max=500"`
	RSVPDeadline  string               `json:"rsvp_deadline" validate:"omitempty,datetime=2006-01-02"`
	SendReminders *bool                `json:"send_reminders"`
	AllowPlusOnes bool                 `json:"allow_plus_ones"`
	MaxAttendees  *int                 `json:"max_attendees" validate:"omitempty,gte=1"`
	Guests        []GuestInviteRequest `json:"guests" validate:"required,min=1,dive"`
}

func (req CreatePactRequest) toInput() (domain.PactInput, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return domain.PactInput{}, err
	}
	in := domain.PactInput{
		Title:         req.Title,
		Description:   req.Description,
		EventDate:     date,
		EventTime:     req.Time,
		Location:      req.Location,
		Address:       req.Address,
		SendReminders: true,
		AllowPlusOnes: req.AllowPlusOnes,
		MaxAttendees:  req.MaxAttendees,
	}
	if req.SendReminders != nil {
		in.SendReminders = *req.SendReminders
	}
	if req.RSVPDeadline != "" {
		d, err := parseDate("rsvp_deadline", req.RSVPDeadline)
		if err != nil {
			return domain.PactInput{}, err
		}
		in.RSVPDeadline = &d
	}
	return in, nil
}

// UpdatePactRequest is the request body for PUT /pacts/{pactID}. Omitted fields are unchanged.
type UpdatePactRequest struct {
	Title         *string `json:"title" validate:"omitempty,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time          *string `json:"time" validate:"omitempty,datetime=15:04"`
	Location      *string `json:"location" validate:"omitempty,max=200"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	RSVPDeadline  *string `json:"rsvp_deadline" validate:"omitempty,datetime=2006-01-02"`
	SendReminders *bool   `json:"send_reminders"`
	AllowPlusOnes *bool   `json:"allow_plus_ones"`
	MaxAttendees  *int    `json:"max_attendees" validate:"omitempty,gte=1"`
	Status        *string `json:"status" validate:"omitempty,oneof=active cancelled"`

	// ClearRSVPDeadline and ClearMaxAttendees remove the deadline or the cap.
	ClearRSVPDeadline bool `json:"clear_rsvp_deadline"`
	ClearMaxAttendees bool `json:"clear_max_attendees"`
}

func (req UpdatePactRequest) toPatch() (domain.PactPatch, error) {
	patch := domain.PactPatch{
		Title:         req.Title,
		Description:   req.Description,
		EventTime:     req.Time,
		Location:      req.Location,
		Address:       req.Address,
		SendReminders: req.SendReminders,
		AllowPlusOnes: req.AllowPlusOnes,
		MaxAttendees:  req.MaxAttendees,

		ClearRSVPDeadline: req.ClearRSVPDeadline,
		ClearMaxAttendees: req.ClearMaxAttendees,
	}
	if req.Date != nil {
		d, err := parseDate("date", *req.Date)
		if err != nil {
			return domain.PactPatch{}, err
		}
		patch.EventDate = &d
	}
	if req.RSVPDeadline != nil {
		d, err := parseDate("rsvp_deadline", *req.RSVPDeadline)
		if err != nil {
			return domain.PactPatch{}, err
		}
		patch.RSVPDeadline = &d
	}
	if req.Status != nil {
		s := domain.PactStatus(*req.Status)
		patch.Status = &s
	}
	return patch, nil
}

func parseDate(field, s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a date formatted YYYY-MM-DD")
	}
	return d, nil
}

// PactDetailsSuccessResponse is the success response envelope for POST /pacts (201) and GET /pacts/{pactID} (200).
type PactDetailsSuccessResponse struct {
	Data  *domain.PactDetails `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// PactSuccessResponse is the success response envelope for endpoints returning a single pact.
type PactSuccessResponse struct {
	Data  *domain.Pact      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PactListSuccessResponse is the success response envelope for GET /pacts (200).
type PactListSuccessResponse struct {
	Data  []*domain.Pact    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RemindersResponse reports how many reminders were queued.
type RemindersResponse struct {
	Queued int `json:"queued"`
}

// PactController handles pact lifecycle endpoints.
type PactController struct {
	Logger  *slog.Logger
	Service domain.PactService
}

// NewPactController creates a PactController with the given logger and service.
func NewPactController(logger *slog.Logger, svc domain.PactService) *PactController {
	return &PactController{
		Logger:  logger,
		Service: svc,
	}
}

// CreatePact godoc
// @Summary Create a pact
// @Description Create a pact hosted by the authenticated user and invite at least one guest. The host is enrolled as an attending guest and invitation e-mails are sent to new guests.
// @Tags pacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePactRequest true "Pact data and guest list"
// @Success 201 {object} controllers.PactDetailsSuccessResponse "data contains pact, guests and stats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts [post]
func (c *PactController) CreatePact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	var req CreatePactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	details, err := c.Service.CreatePact(r.Context(), userID, in, toInvites(req.Guests))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "host not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, details)
}

// ListPacts godoc
// @Summary List my pacts
// @Description Pacts the authenticated user hosts or is invited to, oldest first.
// @Tags pacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PactListSuccessResponse "data contains the pacts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts [get]
func (c *PactController) ListPacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	pacts, err := c.Service.ListPactsForUser(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	if pacts == nil {
		pacts = []*domain.Pact{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pacts)
}

// GetPact godoc
// @Summary Get a pact
// @Description Returns the pact with its guest list and response counts. Only the host and invited guests may view it; anyone else gets 404.
// @Tags pacts
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Success 200 {object} controllers.PactDetailsSuccessResponse "data contains pact, guests and stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID} [get]
func (c *PactController) GetPact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	details, err := c.Service.GetPact(r.Context(), r.PathValue("pactID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// UpdatePact godoc
// @Summary Update a pact
// @Description Host-only. Changes any of title, description, date, time, location, address, rsvp_deadline, send_reminders, allow_plus_ones, max_attendees and status. A cancelled pact cannot be reactivated.
// @Tags pacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Param body body UpdatePactRequest true "Fields to update"
// @Success 200 {object} controllers.PactSuccessResponse "data contains the updated pact"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not host)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID} [put]
func (c *PactController) UpdatePact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	var req UpdatePactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	pact, err := c.Service.UpdatePact(r.Context(), r.PathValue("pactID"), userID, patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pact)
}

// CancelPact godoc
// @Summary Cancel a pact
// @Description Host-only. Marks the pact cancelled; cancelling twice is not an error.
// @Tags pacts
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Success 200 {object} controllers.PactSuccessResponse "data contains the cancelled pact"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not host)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/cancel [post]
func (c *PactController) CancelPact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	pact, err := c.Service.CancelPact(r.Context(), r.PathValue("pactID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pact)
}

// DeletePact godoc
// @Summary Delete a pact
// @Description Host-only. Removes the pact with its guests and responses.
// @Tags pacts
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Success 200 {object} helpers.APIResponse "data.message confirms the deletion"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not host)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID} [delete]
func (c *PactController) DeletePact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeletePact(r.Context(), r.PathValue("pactID"), userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "pact deleted"})
}

// SendReminders godoc
// @Summary Send reminders
// @Description Host-only. Queues a reminder e-mail to every confirmed guest of an active pact with reminders enabled.
// @Tags pacts
// @Produce json
// @Security BearerAuth
// @Param pactID path string true "Pact ID"
// @Success 200 {object} helpers.APIResponse "data.queued is the number of reminders queued"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (cancelled or reminders disabled)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not host)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pacts/{pactID}/reminders [post]
func (c *PactController) SendReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}
	n, err := c.Service.SendReminders(r.Context(), r.PathValue("pactID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, pactNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RemindersResponse{Queued: n})
}
