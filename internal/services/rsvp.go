package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planpact/internal/domain"
)

// NewRSVPService creates an RSVPService over store.
func NewRSVPService(store domain.Store, timeout time.Duration) domain.RSVPService {
	return newPactService(store, nil, timeout)
}

func (s *pactService) RecordResponse(ctx context.Context, pactID, callerID string, resp domain.RSVPResponse) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !resp.Status.Settable() {
		return nil, domain.NewValidationError("status", `must be "confirmed" or "declined"`)
	}
	if resp.PlusOnes < 0 {
		return nil, domain.NewValidationError("plus_ones", "must not be negative")
	}
	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return nil, err
	}

	var recorded *domain.RSVP
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Repositories) error {
		pact, err := tx.Pacts().GetByIDForUpdate(ctx, pactID)
		if err != nil {
			return fmt.Errorf("get pact: %w", err)
		}
		if pact.HostID == caller.ID {
			return domain.NewValidationError("status", "the host does not respond to their own pact")
		}
		guest, err := findGuest(ctx, tx, pact.ID, caller.ID, caller.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNoAccess
			}
			return err
		}
		if guest.IsHost {
			return domain.NewValidationError("status", "the host does not respond to their own pact")
		}
		if pact.IsCancelled() {
			return domain.NewValidationError("status", "pact is cancelled")
		}
		if resp.PlusOnes > 0 && !pact.AllowPlusOnes {
			return domain.NewValidationError("plus_ones", "this pact does not allow plus-ones")
		}

		plusOnes := resp.PlusOnes
		if resp.Status == domain.RSVPStatusDeclined {
			plusOnes = 0
		}

		rsvp, err := tx.RSVPs().GetByGuestID(ctx, guest.ID)
		isNew := false
		switch {
		case errors.Is(err, domain.ErrNotFound):
			rsvp = &domain.RSVP{GuestID: guest.ID, PactID: pact.ID, Status: domain.RSVPStatusPending}
			isNew = true
		case err != nil:
			return fmt.Errorf("get rsvp: %w", err)
		}

		if pact.MaxAttendees != nil && resp.Status == domain.RSVPStatusConfirmed {
			guests, err := tx.Guests().ListByPactID(ctx, pact.ID)
			if err != nil {
				return fmt.Errorf("list guests: %w", err)
			}
			total := computeStats(pact, guests).TotalAttendees - rsvp.Attendees(pact.AllowPlusOnes) + 1 + plusOnes
			if total > *pact.MaxAttendees {
				return domain.ErrPactFull
			}
		}

		now := time.Now()
		rsvp.Status = resp.Status
		rsvp.PlusOnes = plusOnes
		rsvp.Message = resp.Message
		rsvp.RespondedAt = &now
		if isNew {
			err = tx.RSVPs().Create(ctx, rsvp)
		} else {
			err = tx.RSVPs().Update(ctx, rsvp)
		}
		if err != nil {
			return fmt.Errorf("save rsvp: %w", err)
		}
		recorded = rsvp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func (s *pactService) GetStats(ctx context.Context, pactID, callerID string) (domain.RSVPStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return domain.RSVPStats{}, err
	}
	pact, err := s.store.Pacts().GetByID(ctx, pactID)
	if err != nil {
		return domain.RSVPStats{}, fmt.Errorf("get pact: %w", err)
	}
	if err := requireAccess(ctx, s.store, pact, caller); err != nil {
		return domain.RSVPStats{}, err
	}
	guests, err := s.store.Guests().ListByPactID(ctx, pact.ID)
	if err != nil {
		return domain.RSVPStats{}, fmt.Errorf("list guests: %w", err)
	}
	return computeStats(pact, guests), nil
}

// ListResponses returns one page of the guests' responses, newest first, and the total count.
// The host's own attending row is not a response and is left out.
func (s *pactService) ListResponses(ctx context.Context, pactID, callerID string, params domain.PaginationParams) ([]*domain.RSVPWithGuest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	caller, err := loadCaller(ctx, s.store, callerID)
	if err != nil {
		return nil, 0, err
	}
	pact, err := s.store.Pacts().GetByID(ctx, pactID)
	if err != nil {
		return nil, 0, fmt.Errorf("get pact: %w", err)
	}
	if err := requireHost(ctx, s.store, pact, caller); err != nil {
		return nil, 0, err
	}
	rsvps, err := s.store.RSVPs().ListByPactID(ctx, pact.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("list rsvps: %w", err)
	}
	responses := make([]*domain.RSVPWithGuest, 0, len(rsvps))
	for _, r := range rsvps {
		if r.RSVP.Status != domain.RSVPStatusAttending {
			responses = append(responses, r)
		}
	}
	return domain.Paginate(responses, params), len(responses), nil
}
