package memory

import (
	"context"
	"slices"
	"strings"

	"planpact/internal/domain"
)

type guestRepository struct {
	v view
}

func (r *guestRepository) Upsert(ctx context.Context, g *domain.Guest) (bool, error) {
	inserted := false
	err := r.v.write(ctx, func(d *data) error {
		g.Email = domain.NormalizeEmail(g.Email)
		for _, existing := range d.guests {
			if existing.PactID == g.PactID && existing.Email == g.Email {
				existing.Name = g.Name
				existing.InvitedAt = g.InvitedAt
				*g = *copyGuest(existing)
				return nil
			}
		}
		g.ID = newID()
		d.guests = append(d.guests, copyGuest(g))
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *guestRepository) GetByPactAndUser(ctx context.Context, pactID, userID string) (*domain.Guest, error) {
	var out *domain.Guest
	err := r.v.read(ctx, func(d *data) error {
		for _, g := range d.guests {
			if g.PactID == pactID && g.UserID != nil && *g.UserID == userID {
				out = copyGuest(g)
				return nil
			}
		}
		return domain.ErrGuestNotFound
	})
	return out, err
}

func (r *guestRepository) GetByPactAndEmail(ctx context.Context, pactID, email string) (*domain.Guest, error) {
	email = domain.NormalizeEmail(email)
	var out *domain.Guest
	err := r.v.read(ctx, func(d *data) error {
		for _, g := range d.guests {
			if g.PactID == pactID && g.Email == email {
				out = copyGuest(g)
				return nil
			}
		}
		return domain.ErrGuestNotFound
	})
	return out, err
}

func (r *guestRepository) ListByPactID(ctx context.Context, pactID string) ([]*domain.GuestWithRSVP, error) {
	out := make([]*domain.GuestWithRSVP, 0)
	err := r.v.read(ctx, func(d *data) error {
		for _, g := range d.guests {
			if g.PactID != pactID {
				continue
			}
			gw := &domain.GuestWithRSVP{Guest: copyGuest(g)}
			for _, rs := range d.rsvps {
				if rs.GuestID == g.ID {
					gw.RSVP = copyRSVP(rs)
					break
				}
			}
			out = append(out, gw)
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *domain.GuestWithRSVP) int {
		return strings.Compare(a.Guest.Name, b.Guest.Name)
	})
	return out, err
}
