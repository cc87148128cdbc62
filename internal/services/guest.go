package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"planpact/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewGuestService creates a GuestService over store. dispatcher may be nil to disable e-mail.
func NewGuestService(store domain.Store, dispatcher domain.NotificationDispatcher, timeout time.Duration) domain.GuestService {
	return newPactService(store, dispatcher, timeout)
}

func (s *pactService) AddGuests(ctx context.Context, pactID, callerID string, invites []domain.GuestInvite) ([]*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(invites) == 0 {
		return nil, domain.NewValidationError("guests", "at least one guest is required")
	}
	invites, err := validateInvites(invites)
	if err != nil {
		return nil, err
	}
	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return nil, err
	}

	var pact *domain.Pact
	var all, fresh []*domain.Guest
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		p, err := lockHostedPact(ctx, tx, pactID, caller)
		if err != nil {
			return err
		}
		if p.IsCancelled() {
			return domain.NewValidationError("status", "pact is cancelled")
		}
		pact = p
		all, fresh, err = addGuests(ctx, tx, p, caller, invites, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.NotificationInvitation, pact, caller.Name, fresh)
	return all, nil
}

func (s *pactService) ListGuests(ctx context.Context, pactID, callerID string) ([]*domain.GuestWithRSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return nil, err
	}
	pact, err := s.store.Pacts().GetByID(ctx, pactID)
	if err != nil {
		return nil, fmt.Errorf("get pact: %w", err)
	}
	if err := requireAccess(ctx, s.store, pact, caller); err != nil {
		return nil, err
	}
	guests, err := s.store.Guests().ListByPactID(ctx, pact.ID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

// validateInvites checks every address and folds repeated addresses into one invite that keeps the
// first position and the last non-empty name.
func validateInvites(invites []domain.GuestInvite) ([]domain.GuestInvite, error) {
	unique := make([]domain.GuestInvite, 0, len(invites))
	index := make(map[string]int, len(invites))
	for _, inv := range invites {
		email := domain.NormalizeEmail(inv.Email)
		if email == "" {
			return nil, domain.NewValidationError("guests", "email is required")
		}
		if !emailRegexp.MatchString(email) {
			return nil, domain.NewValidationError("guests", fmt.Sprintf("invalid email %q", inv.Email))
		}
		if i, ok := index[email]; ok {
			if strings.TrimSpace(inv.Name) != "" {
				unique[i].Name = inv.Name
			}
			continue
		}
		index[email] = len(unique)
		unique = append(unique, inv)
	}
	return unique, nil
}

// addGuests upserts every invite on (pact, email). Rows created by this call get a pending RSVP and
// are returned in fresh as well as in all. Invites for the host's own address are skipped.
func addGuests(ctx context.Context, tx domain.Repositories, pact *domain.Pact, host *domain.User, invites []domain.GuestInvite, now time.Time) (all, fresh []*domain.Guest, err error) {
	hostEmail := domain.NormalizeEmail(host.Email)
	all = make([]*domain.Guest, 0, len(invites))
	for _, inv := range invites {
		email := domain.NormalizeEmail(inv.Email)
		if email == hostEmail {
			continue
		}

		var bound *domain.User
		u, err := tx.Users().GetByEmail(ctx, email)
		switch {
		case err == nil:
			bound = u
		case !errors.Is(err, domain.ErrNotFound):
			return nil, nil, fmt.Errorf("lookup invitee: %w", err)
		}

		g := &domain.Guest{
			PactID:    pact.ID,
			Email:     email,
			Name:      guestName(inv.Name, bound, email),
			InvitedAt: now,
		}
		if bound != nil {
			id := bound.ID
			g.UserID = &id
		}
		inserted, err := tx.Guests().Upsert(ctx, g)
		if err != nil {
			return nil, nil, fmt.Errorf("upsert guest: %w", err)
		}
		if inserted {
			rsvp := &domain.RSVP{GuestID: g.ID, PactID: pact.ID, Status: domain.RSVPStatusPending}
			if err := tx.RSVPs().Create(ctx, rsvp); err != nil {
				return nil, nil, fmt.Errorf("create rsvp: %w", err)
			}
			fresh = append(fresh, g)
		}
		all = append(all, g)
	}
	return all, fresh, nil
}

// guestName picks the supplied name, else the registered user's name, else the e-mail local part.
func guestName(supplied string, bound *domain.User, email string) string {
	if name := strings.TrimSpace(supplied); name != "" {
		return name
	}
	if bound != nil && strings.TrimSpace(bound.Name) != "" {
		return bound.Name
	}
	return domain.EmailLocalPart(email)
}
