package domain

import (
	"context"
	"strings"
	"time"
)

// Guest is an invited party of a pact, optionally bound to a registered user.
// swagger:model Guest
type Guest struct {
	ID        string    `json:"id"`
	PactID    string    `json:"pact_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserID    *string   `json:"user_id,omitempty"`
	IsHost    bool      `json:"is_host"`
	InvitedAt time.Time `json:"invited_at"`
}

// GuestInvite is one entry of an invitation list.
type GuestInvite struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NormalizeEmail lower-cases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the part of email before the @, used as a fallback display name.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// GuestWithRSVP bundles a guest with its RSVP.
// swagger:model GuestWithRSVP
type GuestWithRSVP struct {
	Guest *Guest `json:"guest"`
	RSVP  *RSVP  `json:"rsvp"`
}

// GuestRepository defines the interface for guest storage.
type GuestRepository interface {
	// Upsert inserts the guest or, when (pact_id, email) exists, updates its name and invited_at.
	// On return guest holds the stored row; inserted reports whether a new row was created.
	Upsert(ctx context.Context, guest *Guest) (inserted bool, err error)
	GetByPactAndUser(ctx context.Context, pactID, userID string) (*Guest, error)
	GetByPactAndEmail(ctx context.Context, pactID, email string) (*Guest, error)
	// ListByPactID returns the pact's guests joined with their RSVP, ordered by name.
	ListByPactID(ctx context.Context, pactID string) ([]*GuestWithRSVP, error)
}

// GuestService is the guest ledger.
type GuestService interface {
	AddGuests(ctx context.Context, pactID, callerID string, invites []GuestInvite) ([]*Guest, error)
	ListGuests(ctx context.Context, pactID, callerID string) ([]*GuestWithRSVP, error)
}

// AccessEvaluator decides whether a user may view or act on a pact as host or invited guest.
type AccessEvaluator interface {
	CanAccess(ctx context.Context, pactID, userID, email string) (bool, error)
}
