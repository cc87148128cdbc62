// Package memory implements domain.Store on process memory. Rows live in slices scanned linearly,
// which keeps insertion order and is plenty for tests and single-node demos.
package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"planpact/internal/domain"
)

// maxReaders bounds concurrent readers; a writer acquires all of it.
const maxReaders = 1 << 20

type data struct {
	users  []*domain.User
	pacts  []*domain.Pact
	guests []*domain.Guest
	rsvps  []*domain.RSVP
}

func (d *data) clone() *data {
	c := &data{
		users:  make([]*domain.User, len(d.users)),
		pacts:  make([]*domain.Pact, len(d.pacts)),
		guests: make([]*domain.Guest, len(d.guests)),
		rsvps:  make([]*domain.RSVP, len(d.rsvps)),
	}
	for i, u := range d.users {
		c.users[i] = copyUser(u)
	}
	for i, p := range d.pacts {
		c.pacts[i] = copyPact(p)
	}
	for i, g := range d.guests {
		c.guests[i] = copyGuest(g)
	}
	for i, r := range d.rsvps {
		c.rsvps[i] = copyRSVP(r)
	}
	return c
}

// Store is an in-memory domain.Store. The zero value is not usable; call New.
type Store struct {
	gate *semaphore.Weighted
	data *data
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		gate: semaphore.NewWeighted(maxReaders),
		data: &data{},
	}
}

// Users returns a repository that locks the store per call.
func (s *Store) Users() domain.UserRepository { return &userRepository{v: view{store: s}} }

// Pacts returns a repository that locks the store per call.
func (s *Store) Pacts() domain.PactRepository { return &pactRepository{v: view{store: s}} }

// Guests returns a repository that locks the store per call.
func (s *Store) Guests() domain.GuestRepository { return &guestRepository{v: view{store: s}} }

// RSVPs returns a repository that locks the store per call.
func (s *Store) RSVPs() domain.RSVPRepository { return &rsvpRepository{v: view{store: s}} }

// WithinTx holds the store exclusively while fn runs against a private copy of the data.
// The copy replaces the live data only if fn succeeds. Waiting for the store honours ctx.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	if err := s.gate.Acquire(ctx, maxReaders); err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer s.gate.Release(maxReaders)

	work := s.data.clone()
	if err := fn(ctx, txRepositories{v: view{tx: work}}); err != nil {
		return err
	}
	s.data = work
	return nil
}

type txRepositories struct {
	v view
}

func (t txRepositories) Users() domain.UserRepository   { return &userRepository{v: t.v} }
func (t txRepositories) Pacts() domain.PactRepository   { return &pactRepository{v: t.v} }
func (t txRepositories) Guests() domain.GuestRepository { return &guestRepository{v: t.v} }
func (t txRepositories) RSVPs() domain.RSVPRepository   { return &rsvpRepository{v: t.v} }

// view gives repositories access to either the live data (store set) or a transaction's copy (tx set).
type view struct {
	store *Store
	tx    *data
}

func (v view) read(ctx context.Context, fn func(d *data) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	if err := v.store.gate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer v.store.gate.Release(1)
	return fn(v.store.data)
}

func (v view) write(ctx context.Context, fn func(d *data) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	if err := v.store.gate.Acquire(ctx, maxReaders); err != nil {
		return err
	}
	defer v.store.gate.Release(maxReaders)
	return fn(v.store.data)
}

func newID() string {
	return uuid.NewString()
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

func copyPact(p *domain.Pact) *domain.Pact {
	c := *p
	if p.RSVPDeadline != nil {
		t := *p.RSVPDeadline
		c.RSVPDeadline = &t
	}
	if p.MaxAttendees != nil {
		n := *p.MaxAttendees
		c.MaxAttendees = &n
	}
	return &c
}

func copyGuest(g *domain.Guest) *domain.Guest {
	c := *g
	if g.UserID != nil {
		id := *g.UserID
		c.UserID = &id
	}
	return &c
}

func copyRSVP(r *domain.RSVP) *domain.RSVP {
	c := *r
	if r.Message != nil {
		m := *r.Message
		c.Message = &m
	}
	if r.RespondedAt != nil {
		t := *r.RespondedAt
		c.RespondedAt = &t
	}
	return &c
}
