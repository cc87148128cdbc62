package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planpact/internal/domain"
)

// pactService implements the event registry, guest ledger, RSVP tracker and access evaluator
// over a single domain.Store, so every rule lives in one place whatever the storage.
type pactService struct {
	store          domain.Store
	dispatcher     domain.NotificationDispatcher
	contextTimeout time.Duration
}

func newPactService(store domain.Store, dispatcher domain.NotificationDispatcher, timeout time.Duration) *pactService {
	return &pactService{
		store:          store,
		dispatcher:     dispatcher,
		contextTimeout: timeout,
	}
}

// NewPactService creates a PactService over store. dispatcher may be nil to disable e-mail.
func NewPactService(store domain.Store, dispatcher domain.NotificationDispatcher, timeout time.Duration) domain.PactService {
	return newPactService(store, dispatcher, timeout)
}

func (s *pactService) CreatePact(ctx context.Context, hostID string, in domain.PactInput, invites []domain.GuestInvite) (*domain.PactDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if len(invites) == 0 {
		return nil, domain.NewValidationError("guests", "at least one guest is required")
	}
	invites, err := validateInvites(invites)
	if err != nil {
		return nil, err
	}

	host, err := s.store.Users().GetByID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("get host: %w", err)
	}
	if !host.IsActive {
		return nil, domain.ErrUnauthorized
	}

	var details *domain.PactDetails
	var invited []*domain.Guest
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		now := time.Now()
		pact := domain.NewPact(host.ID, in, now, now)
		if err := tx.Pacts().Create(ctx, pact); err != nil {
			return fmt.Errorf("create pact: %w", err)
		}
		if err := enrollHost(ctx, tx, pact, host, now); err != nil {
			return err
		}
		_, fresh, err := addGuests(ctx, tx, pact, host, invites, now)
		if err != nil {
			return err
		}
		invited = fresh
		details, err = loadDetails(ctx, tx, pact)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.NotificationInvitation, details.Pact, host.Name, invited)
	return details, nil
}

func (s *pactService) GetPact(ctx context.Context, pactID, callerID string) (*domain.PactDetails, error) {
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
	return loadDetails(ctx, s.store, pact)
}

func (s *pactService) ListPactsForUser(ctx context.Context, userID string) ([]*domain.Pact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	pacts, err := s.store.Pacts().ListForUser(ctx, caller.ID, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("list pacts: %w", err)
	}
	return pacts, nil
}

func (s *pactService) UpdatePact(ctx context.Context, pactID, callerID string, patch domain.PactPatch) (*domain.Pact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Pact
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		pact, err := lockHostedPact(ctx, tx, pactID, caller)
		if err != nil {
			return err
		}
		if pact.IsCancelled() && patch.Status != nil && *patch.Status == domain.PactStatusActive {
			return domain.NewValidationError("status", "a cancelled pact cannot be reactivated")
		}
		patch.Apply(pact)
		if patch.MaxAttendees != nil {
			guests, err := tx.Guests().ListByPactID(ctx, pact.ID)
			if err != nil {
				return fmt.Errorf("list guests: %w", err)
			}
			if attending := computeStats(pact, guests).TotalAttendees; *pact.MaxAttendees < attending {
				return domain.NewValidationError("max_attendees", fmt.Sprintf("must be at least %d, the number already attending", attending))
			}
		}
		pact.UpdatedAt = time.Now()
		if err := tx.Pacts().Update(ctx, pact); err != nil {
			return fmt.Errorf("update pact: %w", err)
		}
		updated = pact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *pactService) CancelPact(ctx context.Context, pactID, callerID string) (*domain.Pact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return nil, err
	}

	var cancelled *domain.Pact
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		pact, err := lockHostedPact(ctx, tx, pactID, caller)
		if err != nil {
			return err
		}
		cancelled = pact
		if pact.IsCancelled() {
			return nil
		}
		pact.Status = domain.PactStatusCancelled
		pact.UpdatedAt = time.Now()
		if err := tx.Pacts().Update(ctx, pact); err != nil {
			return fmt.Errorf("cancel pact: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *pactService) DeletePact(ctx context.Context, pactID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return err
	}
	return s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		if _, err := lockHostedPact(ctx, tx, pactID, caller); err != nil {
			return err
		}
		if err := tx.Pacts().Delete(ctx, pactID); err != nil {
			return fmt.Errorf("delete pact: %w", err)
		}
		return nil
	})
}

// SendReminders queues a reminder for every confirmed guest and returns how many were queued.
func (s *pactService) SendReminders(ctx context.Context, pactID, callerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return 0, err
	}
	pact, err := s.store.Pacts().GetByID(ctx, pactID)
	if err != nil {
		return 0, fmt.Errorf("get pact: %w", err)
	}
	if err := requireHost(ctx, s.store, pact, caller); err != nil {
		return 0, err
	}
	if pact.IsCancelled() {
		return 0, domain.NewValidationError("status", "pact is cancelled")
	}
	if !pact.SendReminders {
		return 0, domain.NewValidationError("send_reminders", "reminders are disabled for this pact")
	}

	guests, err := s.store.Guests().ListByPactID(ctx, pact.ID)
	if err != nil {
		return 0, fmt.Errorf("list guests: %w", err)
	}
	confirmed := make([]*domain.Guest, 0, len(guests))
	for _, g := range guests {
		if !g.Guest.IsHost && g.RSVP != nil && g.RSVP.Status == domain.RSVPStatusConfirmed {
			confirmed = append(confirmed, g.Guest)
		}
	}
	s.notify(ctx, domain.NotificationReminder, pact, caller.Name, confirmed)
	return len(confirmed), nil
}

func (s *pactService) notify(ctx context.Context, kind domain.NotificationKind, pact *domain.Pact, hostName string, guests []*domain.Guest) {
	if s.dispatcher == nil || len(guests) == 0 {
		return
	}
	notes := make([]*domain.Notification, len(guests))
	for i, g := range guests {
		notes[i] = domain.NewPactNotification(kind, pact, hostName, g)
	}
	s.dispatcher.Dispatch(ctx, notes...)
}

// loadCaller resolves the authenticated user. A missing or deactivated user is unauthorized.
func loadCaller(ctx context.Context, repos domain.Repositories, userID string) (*domain.User, error) {
	user, err := repos.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get caller: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// lockHostedPact loads the pact for update and checks that caller hosts it.
func lockHostedPact(ctx context.Context, tx domain.Repositories, pactID string, caller *domain.User) (*domain.Pact, error) {
	pact, err := tx.Pacts().GetByIDForUpdate(ctx, pactID)
	if err != nil {
		return nil, fmt.Errorf("get pact: %w", err)
	}
	if err := requireHost(ctx, tx, pact, caller); err != nil {
		return nil, err
	}
	return pact, nil
}

func enrollHost(ctx context.Context, tx domain.Repositories, pact *domain.Pact, host *domain.User, now time.Time) error {
	hostID := host.ID
	g := &domain.Guest{
		PactID:    pact.ID,
		Email:     host.Email,
		Name:      host.Name,
		UserID:    &hostID,
		IsHost:    true,
		InvitedAt: now,
	}
	if _, err := tx.Guests().Upsert(ctx, g); err != nil {
		return fmt.Errorf("enroll host: %w", err)
	}
	respondedAt := now
	rsvp := &domain.RSVP{
		GuestID:     g.ID,
		PactID:      pact.ID,
		Status:      domain.RSVPStatusAttending,
		RespondedAt: &respondedAt,
	}
	if err := tx.RSVPs().Create(ctx, rsvp); err != nil {
		return fmt.Errorf("create host rsvp: %w", err)
	}
	return nil
}

func loadDetails(ctx context.Context, repos domain.Repositories, pact *domain.Pact) (*domain.PactDetails, error) {
	guests, err := repos.Guests().ListByPactID(ctx, pact.ID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return &domain.PactDetails{
		Pact:   pact,
		Guests: guests,
		Stats:  computeStats(pact, guests),
	}, nil
}

// computeStats counts responses of invited guests. The host is left out of the counts
// but, attending, adds to the total. Plus-ones count only while the pact allows them.
func computeStats(pact *domain.Pact, guests []*domain.GuestWithRSVP) domain.RSVPStats {
	var st domain.RSVPStats
	for _, g := range guests {
		if g.RSVP != nil {
			st.TotalAttendees += g.RSVP.Attendees(pact.AllowPlusOnes)
		}
		if g.Guest.IsHost {
			continue
		}
		st.TotalInvited++
		if g.RSVP == nil {
			continue
		}
		switch g.RSVP.Status {
		case domain.RSVPStatusConfirmed:
			st.Confirmed++
		case domain.RSVPStatusDeclined:
			st.Declined++
		}
	}
	st.Pending = st.TotalInvited - st.Confirmed - st.Declined
	return st
}
