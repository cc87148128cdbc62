package domain

import (
	"context"
	"strings"
	"time"
)

// PactStatus is the lifecycle state of a pact. Active pacts may be cancelled; cancelled is terminal.
type PactStatus string

const (
	PactStatusActive    PactStatus = "active"
	PactStatusCancelled PactStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s PactStatus) Valid() bool {
	return s == PactStatusActive || s == PactStatusCancelled
}

// Pact represents a hosted event with a guest list.
// swagger:model Pact
type Pact struct {
	ID            string     `json:"id"`
	HostID        string     `json:"host_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	EventDate     time.Time  `json:"event_date"`
	EventTime     string     `json:"event_time"`
	Location      string     `json:"location"`
	Address       string     `json:"address"`
	RSVPDeadline  *time.Time `json:"rsvp_deadline,omitempty"`
	SendReminders bool       `json:"send_reminders"`
	AllowPlusOnes bool       `json:"allow_plus_ones"`
	MaxAttendees  *int       `json:"max_attendees,omitempty"`
	Status        PactStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsCancelled reports whether the pact has been cancelled.
func (p *Pact) IsCancelled() bool {
	return p.Status == PactStatusCancelled
}

// PactInput holds the host-supplied fields of a new pact.
type PactInput struct {
	Title         string
	Description   string
	EventDate     time.Time
	EventTime     string
	Location      string
	Address       string
	RSVPDeadline  *time.Time
	SendReminders bool
	AllowPlusOnes bool
	MaxAttendees  *int
}

// Validate checks the required fields of a new pact.
func (in PactInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("title", "is required")
	}
	if in.EventDate.IsZero() {
		return NewValidationError("date", "is required")
	}
	if in.MaxAttendees != nil && *in.MaxAttendees < 1 {
		return NewValidationError("max_attendees", "must be at least 1")
	}
	return nil
}

// NewPact returns an active Pact for hostID built from in. ID is typically set by the repository on create.
func NewPact(hostID string, in PactInput, createdAt, updatedAt time.Time) *Pact {
	return &Pact{
		HostID:        hostID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		EventDate:     in.EventDate,
		EventTime:     in.EventTime,
		Location:      in.Location,
		Address:       in.Address,
		RSVPDeadline:  in.RSVPDeadline,
		SendReminders: in.SendReminders,
		AllowPlusOnes: in.AllowPlusOnes,
		MaxAttendees:  in.MaxAttendees,
		Status:        PactStatusActive,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// PactPatch lists the fields a host may change. Nil fields are left unchanged. The Clear flags
// remove an optional deadline or attendee cap.
type PactPatch struct {
	Title         *string
	Description   *string
	EventDate     *time.Time
	EventTime     *string
	Location      *string
	Address       *string
	RSVPDeadline  *time.Time
	SendReminders *bool
	AllowPlusOnes *bool
	MaxAttendees  *int
	Status        *PactStatus

	ClearRSVPDeadline bool
	ClearMaxAttendees bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PactPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.EventDate == nil && p.EventTime == nil &&
		p.Location == nil && p.Address == nil && p.RSVPDeadline == nil && p.SendReminders == nil &&
		p.AllowPlusOnes == nil && p.MaxAttendees == nil && p.Status == nil &&
		!p.ClearRSVPDeadline && !p.ClearMaxAttendees
}

// Validate checks the values carried by the patch.
func (p PactPatch) Validate() error {
	if p.IsEmpty() {
		return NewValidationError("", "no valid fields to update")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	if p.EventDate != nil && p.EventDate.IsZero() {
		return NewValidationError("date", "must not be empty")
	}
	if p.ClearRSVPDeadline && p.RSVPDeadline != nil {
		return NewValidationError("rsvp_deadline", "cannot be set and cleared at once")
	}
	if p.ClearMaxAttendees && p.MaxAttendees != nil {
		return NewValidationError("max_attendees", "cannot be set and cleared at once")
	}
	if p.MaxAttendees != nil && *p.MaxAttendees < 1 {
		return NewValidationError("max_attendees", "must be at least 1")
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", "must be \"active\" or \"cancelled\"")
	}
	return nil
}

// Apply copies the non-nil fields of the patch onto pact.
func (p PactPatch) Apply(pact *Pact) {
	if p.Title != nil {
		pact.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		pact.Description = *p.Description
	}
	if p.EventDate != nil {
		pact.EventDate = *p.EventDate
	}
	if p.EventTime != nil {
		pact.EventTime = *p.EventTime
	}
	if p.Location != nil {
		pact.Location = *p.Location
	}
	if p.Address != nil {
		pact.Address = *p.Address
	}
	if p.RSVPDeadline != nil {
		d := *p.RSVPDeadline
		pact.RSVPDeadline = &d
	}
	if p.ClearRSVPDeadline {
		pact.RSVPDeadline = nil
	}
	if p.SendReminders != nil {
		pact.SendReminders = *p.SendReminders
	}
	if p.AllowPlusOnes != nil {
		pact.AllowPlusOnes = *p.AllowPlusOnes
	}
	if p.MaxAttendees != nil {
		n := *p.MaxAttendees
		pact.MaxAttendees = &n
	}
	if p.ClearMaxAttendees {
		pact.MaxAttendees = nil
	}
	if p.Status != nil {
		pact.Status = *p.Status
	}
}

// PactDetails bundles a pact with its guest list and response counts.
// swagger:model PactDetails
type PactDetails struct {
	Pact   *Pact            `json:"pact"`
	Guests []*GuestWithRSVP `json:"guests"`
	Stats  RSVPStats        `json:"stats"`
}

// PactRepository defines the interface for pact storage.
type PactRepository interface {
	Create(ctx context.Context, pact *Pact) error
	GetByID(ctx context.Context, id string) (*Pact, error)
	// GetByIDForUpdate loads the pact and holds it for the rest of the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Pact, error)
	// ListForUser returns pacts hosted by userID or with a guest bound to userID or invited as email, oldest first.
	ListForUser(ctx context.Context, userID, email string) ([]*Pact, error)
	Update(ctx context.Context, pact *Pact) error
	// Delete removes the pact together with its guests and RSVPs.
	Delete(ctx context.Context, id string) error
}

// PactService is the event registry: pact lifecycle operations guarded by host and guest access rules.
type PactService interface {
	CreatePact(ctx context.Context, hostID string, in PactInput, invites []GuestInvite) (*PactDetails, error)
	GetPact(ctx context.Context, pactID, callerID string) (*PactDetails, error)
	ListPactsForUser(ctx context.Context, userID string) ([]*Pact, error)
	UpdatePact(ctx context.Context, pactID, callerID string, patch PactPatch) (*Pact, error)
	CancelPact(ctx context.Context, pactID, callerID string) (*Pact, error)
	DeletePact(ctx context.Context, pactID, callerID string) error
	SendReminders(ctx context.Context, pactID, callerID string) (int, error)
}
