package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planpact/internal/domain"
	"planpact/internal/repository/memory"
)

const testTimeout = 5 * time.Second

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	hashErr error
}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

// recordingDispatcher implements domain.NotificationDispatcher and keeps every notification.
type recordingDispatcher struct {
	mu    sync.Mutex
	notes []*domain.Notification
}

func (d *recordingDispatcher) Dispatch(_ context.Context, notes ...*domain.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append(d.notes, notes...)
}

func (d *recordingDispatcher) sent(kind domain.NotificationKind) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var to []string
	for _, n := range d.notes {
		if n.Kind == kind {
			to = append(to, n.To)
		}
	}
	return to
}

type fixture struct {
	store  *memory.Store
	disp   *recordingDispatcher
	pacts  domain.PactService
	guests domain.GuestService
	rsvps  domain.RSVPService
	access domain.AccessEvaluator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	disp := &recordingDispatcher{}
	return &fixture{
		store:  store,
		disp:   disp,
		pacts:  NewPactService(store, disp, testTimeout),
		guests: NewGuestService(store, disp, testTimeout),
		rsvps:  NewRSVPService(store, testTimeout),
		access: NewAccessEvaluator(store, testTimeout),
	}
}

func (f *fixture) user(t *testing.T, name, email string) *domain.User {
	t.Helper()
	now := time.Now()
	u := domain.NewUser(name, email, "hash-password", now, now)
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) pact(t *testing.T, host *domain.User, in domain.PactInput, invites ...domain.GuestInvite) *domain.PactDetails {
	t.Helper()
	if in.Title == "" {
		in.Title = "Picnic"
	}
	if in.EventDate.IsZero() {
		in.EventDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	d, err := f.pacts.CreatePact(context.Background(), host.ID, in, invites)
	require.NoError(t, err)
	return d
}

func findGuestByEmail(list []*domain.GuestWithRSVP, email string) *domain.GuestWithRSVP {
	for _, g := range list {
		if g.Guest.Email == email {
			return g
		}
	}
	return nil
}
