package memory

import (
	"context"
	"slices"

	"planpact/internal/domain"
)

type rsvpRepository struct {
	v view
}

func (r *rsvpRepository) Create(ctx context.Context, rs *domain.RSVP) error {
	return r.v.write(ctx, func(d *data) error {
		for _, existing := range d.rsvps {
			if existing.GuestID == rs.GuestID {
				return domain.ErrConflict
			}
		}
		rs.ID = newID()
		d.rsvps = append(d.rsvps, copyRSVP(rs))
		return nil
	})
}

func (r *rsvpRepository) GetByGuestID(ctx context.Context, guestID string) (*domain.RSVP, error) {
	var out *domain.RSVP
	err := r.v.read(ctx, func(d *data) error {
		for _, rs := range d.rsvps {
			if rs.GuestID == guestID {
				out = copyRSVP(rs)
				return nil
			}
		}
		return domain.ErrRSVPNotFound
	})
	return out, err
}

func (r *rsvpRepository) Update(ctx context.Context, rs *domain.RSVP) error {
	return r.v.write(ctx, func(d *data) error {
		for i, existing := range d.rsvps {
			if existing.ID == rs.ID {
				d.rsvps[i] = copyRSVP(rs)
				return nil
			}
		}
		return domain.ErrRSVPNotFound
	})
}

func (r *rsvpRepository) ListByPactID(ctx context.Context, pactID string) ([]*domain.RSVPWithGuest, error) {
	out := make([]*domain.RSVPWithGuest, 0)
	err := r.v.read(ctx, func(d *data) error {
		for _, rs := range d.rsvps {
			if rs.PactID != pactID {
				continue
			}
			item := &domain.RSVPWithGuest{RSVP: copyRSVP(rs)}
			for _, g := range d.guests {
				if g.ID == rs.GuestID {
					item.GuestName = g.Name
					item.GuestEmail = g.Email
					break
				}
			}
			out = append(out, item)
		}
		return nil
	})
	// Most recent response first; unanswered rows last.
	slices.SortStableFunc(out, func(a, b *domain.RSVPWithGuest) int {
		at, bt := a.RSVP.RespondedAt, b.RSVP.RespondedAt
		switch {
		case at == nil && bt == nil:
			return 0
		case at == nil:
			return 1
		case bt == nil:
			return -1
		default:
			return bt.Compare(*at)
		}
	})
	return out, err
}
