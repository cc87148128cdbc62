package domain

import (
	"context"
	"time"
)

// RSVPStatus is a guest's response to a pact.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusDeclined  RSVPStatus = "declined"
	// RSVPStatusAttending is reserved for the host's own guest row.
	RSVPStatusAttending RSVPStatus = "attending"
)

// Settable reports whether a guest may set s through a response.
func (s RSVPStatus) Settable() bool {
	return s == RSVPStatusConfirmed || s == RSVPStatusDeclined
}

// RSVP is the single response record of a guest.
// swagger:model RSVP
type RSVP struct {
	ID          string     `json:"id"`
	GuestID     string     `json:"guest_id"`
	PactID      string     `json:"pact_id"`
	Status      RSVPStatus `json:"status"`
	PlusOnes    int        `json:"plus_ones"`
	Message     *string    `json:"message,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// Attendees returns how many people this RSVP brings: 1 for the host, 1 for a confirmed guest plus
// their plus-ones when the pact allows them.
func (r *RSVP) Attendees(allowPlusOnes bool) int {
	switch r.Status {
	case RSVPStatusConfirmed:
		if !allowPlusOnes {
			return 1
		}
		return 1 + r.PlusOnes
	case RSVPStatusAttending:
		return 1
	default:
		return 0
	}
}

// RSVPResponse is what a guest submits.
type RSVPResponse struct {
	Status   RSVPStatus
	PlusOnes int
	Message  *string
}

// RSVPStats summarizes the responses of a pact. Counts exclude the host; TotalAttendees includes them.
// swagger:model RSVPStats
type RSVPStats struct {
	TotalInvited   int `json:"total_invited"`
	Confirmed      int `json:"confirmed"`
	Declined       int `json:"declined"`
	Pending        int `json:"pending"`
	TotalAttendees int `json:"total_attendees"`
}

// RSVPWithGuest bundles a response with the guest it belongs to.
// swagger:model RSVPWithGuest
type RSVPWithGuest struct {
	RSVP       *RSVP  `json:"rsvp"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
}

// RSVPRepository defines the interface for RSVP storage.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	GetByGuestID(ctx context.Context, guestID string) (*RSVP, error)
	Update(ctx context.Context, rsvp *RSVP) error
	// ListByPactID returns the pact's RSVPs with guest name and e-mail, most recent response first.
	ListByPactID(ctx context.Context, pactID string) ([]*RSVPWithGuest, error)
}

// RSVPService is the RSVP tracker.
type RSVPService interface {
	RecordResponse(ctx context.Context, pactID, callerID string, resp RSVPResponse) (*RSVP, error)
	GetStats(ctx context.Context, pactID, callerID string) (RSVPStats, error)
	ListResponses(ctx context.Context, pactID, callerID string, params PaginationParams) ([]*RSVPWithGuest, int, error)
}
