package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planpact/internal/domain"
)

// NewAccessEvaluator creates an AccessEvaluator over store.
func NewAccessEvaluator(store domain.Store, timeout time.Duration) domain.AccessEvaluator {
	return newPactService(store, nil, timeout)
}

func (s *pactService) CanAccess(ctx context.Context, pactID, userID, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pact, err := s.store.Pacts().GetByID(ctx, pactID)
	if err != nil {
		return false, fmt.Errorf("get pact: %w", err)
	}
	return canAccess(ctx, s.store, pact, userID, email)
}

// canAccess is true for the host and for any guest row matching the user's id or e-mail.
func canAccess(ctx context.Context, repos domain.Repositories, pact *domain.Pact, userID, email string) (bool, error) {
	if pact.HostID == userID {
		return true, nil
	}
	if _, err := findGuest(ctx, repos, pact.ID, userID, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func requireAccess(ctx context.Context, repos domain.Repositories, pact *domain.Pact, caller *domain.User) error {
	ok, err := canAccess(ctx, repos, pact, caller.ID, caller.Email)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNoAccess
	}
	return nil
}

// findGuest resolves a guest row of the pact by bound user id first, then by e-mail.
func findGuest(ctx context.Context, repos domain.Repositories, pactID, userID, email string) (*domain.Guest, error) {
	if userID != "" {
		g, err := repos.Guests().GetByPactAndUser(ctx, pactID, userID)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get guest: %w", err)
		}
	}
	if email == "" {
		return nil, domain.ErrGuestNotFound
	}
	g, err := repos.Guests().GetByPactAndEmail(ctx, pactID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrGuestNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

// requireHost allows only the host. Invited guests get ErrForbidden; anyone else gets ErrNoAccess
// so the pact stays hidden.
func requireHost(ctx context.Context, repos domain.Repositories, pact *domain.Pact, caller *domain.User) error {
	if pact.HostID == caller.ID {
		return nil
	}
	if err := requireAccess(ctx, repos, pact, caller); err != nil {
		return err
	}
	return domain.ErrForbidden
}
