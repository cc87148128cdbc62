package memory

import (
	"context"

	"planpact/internal/domain"
)

type pactRepository struct {
	v view
}

func (r *pactRepository) Create(ctx context.Context, p *domain.Pact) error {
	return r.v.write(ctx, func(d *data) error {
		p.ID = newID()
		d.pacts = append(d.pacts, copyPact(p))
		return nil
	})
}

func (r *pactRepository) GetByID(ctx context.Context, id string) (*domain.Pact, error) {
	var out *domain.Pact
	err := r.v.read(ctx, func(d *data) error {
		if i := indexPact(d, id); i >= 0 {
			out = copyPact(d.pacts[i])
			return nil
		}
		return domain.ErrPactNotFound
	})
	return out, err
}

// GetByIDForUpdate is GetByID: a transaction already holds the whole store.
func (r *pactRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Pact, error) {
	return r.GetByID(ctx, id)
}

func (r *pactRepository) ListForUser(ctx context.Context, userID, email string) ([]*domain.Pact, error) {
	email = domain.NormalizeEmail(email)
	out := make([]*domain.Pact, 0)
	err := r.v.read(ctx, func(d *data) error {
		for _, p := range d.pacts {
			if p.HostID == userID || isGuestOf(d, p.ID, userID, email) {
				out = append(out, copyPact(p))
			}
		}
		return nil
	})
	return out, err
}

func (r *pactRepository) Update(ctx context.Context, p *domain.Pact) error {
	return r.v.write(ctx, func(d *data) error {
		i := indexPact(d, p.ID)
		if i < 0 {
			return domain.ErrPactNotFound
		}
		d.pacts[i] = copyPact(p)
		return nil
	})
}

func (r *pactRepository) Delete(ctx context.Context, id string) error {
	return r.v.write(ctx, func(d *data) error {
		i := indexPact(d, id)
		if i < 0 {
			return domain.ErrPactNotFound
		}
		d.pacts = append(d.pacts[:i], d.pacts[i+1:]...)

		guests := d.guests[:0]
		for _, g := range d.guests {
			if g.PactID != id {
				guests = append(guests, g)
			}
		}
		d.guests = guests

		rsvps := d.rsvps[:0]
		for _, rs := range d.rsvps {
			if rs.PactID != id {
				rsvps = append(rsvps, rs)
			}
		}
		d.rsvps = rsvps
		return nil
	})
}

func indexPact(d *data, id string) int {
	for i, p := range d.pacts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func isGuestOf(d *data, pactID, userID, email string) bool {
	for _, g := range d.guests {
		if g.PactID != pactID {
			continue
		}
		if g.UserID != nil && *g.UserID == userID {
			return true
		}
		if email != "" && g.Email == email {
			return true
		}
	}
	return false
}
