package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planpact/internal/domain"
)

func TestPactService_PicnicScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")

	details := f.pact(t, alice, domain.PactInput{Title: "Picnic"}, domain.GuestInvite{Name: "Bob", Email: "bob@x.com"})
	require.Len(t, details.Guests, 2)

	host := findGuestByEmail(details.Guests, "alice@x.com")
	require.NotNil(t, host)
	assert.True(t, host.Guest.IsHost)
	assert.Equal(t, domain.RSVPStatusAttending, host.RSVP.Status)

	bobGuest := findGuestByEmail(details.Guests, "bob@x.com")
	require.NotNil(t, bobGuest)
	assert.Nil(t, bobGuest.Guest.UserID, "bob was not registered at invite time")
	assert.Equal(t, domain.RSVPStatusPending, bobGuest.RSVP.Status)
	assert.Equal(t, []string{"bob@x.com"}, f.disp.sent(domain.NotificationInvitation))

	// Bob registers afterwards and responds; the guest row is found by e-mail.
	bob := f.user(t, "Bob", "bob@x.com")
	rsvp, err := f.rsvps.RecordResponse(ctx, details.Pact.ID, bob.ID, domain.RSVPResponse{Status: domain.RSVPStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, domain.RSVPStatusConfirmed, rsvp.Status)
	require.NotNil(t, rsvp.RespondedAt)

	stats, err := f.rsvps.GetStats(ctx, details.Pact.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RSVPStats{TotalInvited: 1, Confirmed: 1, Declined: 0, Pending: 0, TotalAttendees: 2}, stats)
}

func TestPactService_CreatePact_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	guests := []domain.GuestInvite{{Name: "Bob", Email: "bob@x.com"}}
	zero := 0

	tests := []struct {
		name    string
		hostID  string
		in      domain.PactInput
		invites []domain.GuestInvite
		wantErr error
	}{
		{name: "missing title", hostID: alice.ID, in: domain.PactInput{EventDate: date}, invites: guests, wantErr: domain.ErrInvalidInput},
		{name: "blank title", hostID: alice.ID, in: domain.PactInput{Title: "  ", EventDate: date}, invites: guests, wantErr: domain.ErrInvalidInput},
		{name: "missing date", hostID: alice.ID, in: domain.PactInput{Title: "Picnic"}, invites: guests, wantErr: domain.ErrInvalidInput},
		{name: "no guests", hostID: alice.ID, in: domain.PactInput{Title: "Picnic", EventDate: date}, wantErr: domain.ErrInvalidInput},
		{name: "bad guest email", hostID: alice.ID, in: domain.PactInput{Title: "Picnic", EventDate: date}, invites: []domain.GuestInvite{{Email: "nope"}}, wantErr: domain.ErrInvalidInput},
		{name: "zero cap", hostID: alice.ID, in: domain.PactInput{Title: "Picnic", EventDate: date, MaxAttendees: &zero}, invites: guests, wantErr: domain.ErrInvalidInput},
		{name: "unknown host", hostID: "ghost", in: domain.PactInput{Title: "Picnic", EventDate: date}, invites: guests, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.pacts.CreatePact(ctx, tt.hostID, tt.in, tt.invites)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := f.pacts.ListPactsForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected creations must leave no trace")
	assert.Empty(t, f.disp.sent(domain.NotificationInvitation))
}

func TestPactService_CreatePact_BindsRegisteredGuestsAndSkipsHost(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Robert", "bob@x.com")

	details := f.pact(t, alice, domain.PactInput{},
		domain.GuestInvite{Email: "BOB@x.com"},
		domain.GuestInvite{Email: "carol@x.com"},
		domain.GuestInvite{Name: "Me", Email: "alice@x.com"},
	)
	require.Len(t, details.Guests, 3)

	b := findGuestByEmail(details.Guests, "bob@x.com")
	require.NotNil(t, b)
	require.NotNil(t, b.Guest.UserID)
	assert.Equal(t, bob.ID, *b.Guest.UserID)
	assert.Equal(t, "Robert", b.Guest.Name, "falls back to the registered name")

	c := findGuestByEmail(details.Guests, "carol@x.com")
	require.NotNil(t, c)
	assert.Equal(t, "carol", c.Guest.Name, "falls back to the e-mail local part")

	a := findGuestByEmail(details.Guests, "alice@x.com")
	require.NotNil(t, a)
	assert.True(t, a.Guest.IsHost)
	assert.Equal(t, "Alice", a.Guest.Name)
	assert.Equal(t, 2, details.Stats.TotalInvited)
	assert.ElementsMatch(t, []string{"bob@x.com", "carol@x.com"}, f.disp.sent(domain.NotificationInvitation))
}

func TestPactService_GetPact_Access(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	mallory := f.user(t, "Mallory", "mallory@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "bob@x.com"})

	got, err := f.pacts.GetPact(ctx, details.Pact.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, details.Pact.ID, got.Pact.ID)

	got, err = f.pacts.GetPact(ctx, details.Pact.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, got.Guests, 2)

	_, err = f.pacts.GetPact(ctx, details.Pact.ID, mallory.ID)
	require.ErrorIs(t, err, domain.ErrNoAccess)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.pacts.GetPact(ctx, "missing", alice.ID)
	require.ErrorIs(t, err, domain.ErrPactNotFound)
}

func TestPactService_ListPactsForUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	carol := f.user(t, "Carol", "carol@x.com")

	first := f.pact(t, alice, domain.PactInput{Title: "First"}, domain.GuestInvite{Email: "bob@x.com"})
	second := f.pact(t, bob, domain.PactInput{Title: "Second"}, domain.GuestInvite{Email: "carol@x.com"})
	_ = f.pact(t, carol, domain.PactInput{Title: "Third"}, domain.GuestInvite{Email: "dave@x.com"})

	list, err := f.pacts.ListPactsForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.Pact.ID, list[0].ID)
	assert.Equal(t, second.Pact.ID, list[1].ID)

	list, err = f.pacts.ListPactsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestPactService_UpdatePact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	carol := f.user(t, "Carol", "carol@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "carol@x.com"})
	pactID := details.Pact.ID

	title := "Beach Picnic"
	allow := true
	active := domain.PactStatusActive
	cancelled := domain.PactStatusCancelled
	empty := ""

	tests := []struct {
		name     string
		callerID string
		patch    domain.PactPatch
		wantErr  error
		check    func(t *testing.T, p *domain.Pact)
	}{
		{name: "empty patch", callerID: alice.ID, patch: domain.PactPatch{}, wantErr: domain.ErrInvalidInput},
		{name: "blank title", callerID: alice.ID, patch: domain.PactPatch{Title: &empty}, wantErr: domain.ErrInvalidInput},
		{name: "non-host guest", callerID: carol.ID, patch: domain.PactPatch{Title: &title}, wantErr: domain.ErrForbidden},
		{
			name:     "host updates allowed fields",
			callerID: alice.ID,
			patch:    domain.PactPatch{Title: &title, AllowPlusOnes: &allow},
			check: func(t *testing.T, p *domain.Pact) {
				assert.Equal(t, "Beach Picnic", p.Title)
				assert.True(t, p.AllowPlusOnes)
				assert.True(t, p.UpdatedAt.After(details.Pact.UpdatedAt) || p.UpdatedAt.Equal(details.Pact.UpdatedAt))
			},
		},
		{
			name:     "host cancels through status",
			callerID: alice.ID,
			patch:    domain.PactPatch{Status: &cancelled},
			check: func(t *testing.T, p *domain.Pact) {
				assert.True(t, p.IsCancelled())
			},
		},
		{name: "cancelled cannot be reactivated", callerID: alice.ID, patch: domain.PactPatch{Status: &active}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.pacts.UpdatePact(ctx, pactID, tt.callerID, tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}

	got, err := f.pacts.GetPact(ctx, pactID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beach Picnic", got.Pact.Title)
	assert.True(t, got.Pact.IsCancelled())
}

func TestPactService_UpdatePact_NonHostForbiddenScenario(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	carol := f.user(t, "Carol", "carol@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "bob@x.com"})

	title := "Hijacked"
	_, err := f.pacts.UpdatePact(context.Background(), details.Pact.ID, carol.ID, domain.PactPatch{Title: &title})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, err, domain.ErrNoAccess, "carol is not invited, so the pact stays hidden")

	got, err := f.pacts.GetPact(context.Background(), details.Pact.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Picnic", got.Pact.Title)
}

func TestPactService_CancelPact_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "bob@x.com"})

	for i := 0; i < 2; i++ {
		p, err := f.pacts.CancelPact(ctx, details.Pact.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PactStatusCancelled, p.Status)
	}

	_, err := f.pacts.CancelPact(ctx, details.Pact.ID, bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.pacts.CancelPact(ctx, "missing", alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPactService_DeletePact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "bob@x.com"})

	require.ErrorIs(t, f.pacts.DeletePact(ctx, details.Pact.ID, bob.ID), domain.ErrForbidden)
	require.NoError(t, f.pacts.DeletePact(ctx, details.Pact.ID, alice.ID))

	_, err := f.pacts.GetPact(ctx, details.Pact.ID, alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.Guests().GetByPactAndEmail(ctx, details.Pact.ID, "bob@x.com")
	require.ErrorIs(t, err, domain.ErrGuestNotFound)

	list, err := f.pacts.ListPactsForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPactService_SendReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	carol := f.user(t, "Carol", "carol@x.com")
	details := f.pact(t, alice, domain.PactInput{SendReminders: true},
		domain.GuestInvite{Email: "bob@x.com"},
		domain.GuestInvite{Email: "carol@x.com"},
		domain.GuestInvite{Email: "dave@x.com"},
	)
	pactID := details.Pact.ID

	_, err := f.rsvps.RecordResponse(ctx, pactID, bob.ID, domain.RSVPResponse{Status: domain.RSVPStatusConfirmed})
	require.NoError(t, err)
	_, err = f.rsvps.RecordResponse(ctx, pactID, carol.ID, domain.RSVPResponse{Status: domain.RSVPStatusDeclined})
	require.NoError(t, err)

	_, err = f.pacts.SendReminders(ctx, pactID, bob.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	n, err := f.pacts.SendReminders(ctx, pactID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"bob@x.com"}, f.disp.sent(domain.NotificationReminder))

	off := false
	_, err = f.pacts.UpdatePact(ctx, pactID, alice.ID, domain.PactPatch{SendReminders: &off})
	require.NoError(t, err)
	_, err = f.pacts.SendReminders(ctx, pactID, alice.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPactService_DeactivatedCallerIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "bob@x.com"})

	alice.IsActive = false
	require.NoError(t, f.store.Users().Update(ctx, alice))

	_, err := f.pacts.GetPact(ctx, details.Pact.ID, alice.ID)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.pacts.ListPactsForUser(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestComputeStats(t *testing.T) {
	host := &domain.GuestWithRSVP{Guest: &domain.Guest{IsHost: true}, RSVP: &domain.RSVP{Status: domain.RSVPStatusAttending}}
	confirmed := &domain.GuestWithRSVP{Guest: &domain.Guest{}, RSVP: &domain.RSVP{Status: domain.RSVPStatusConfirmed, PlusOnes: 2}}
	declined := &domain.GuestWithRSVP{Guest: &domain.Guest{}, RSVP: &domain.RSVP{Status: domain.RSVPStatusDeclined}}
	pending := &domain.GuestWithRSVP{Guest: &domain.Guest{}, RSVP: &domain.RSVP{Status: domain.RSVPStatusPending}}
	missing := &domain.GuestWithRSVP{Guest: &domain.Guest{}}

	tests := []struct {
		name          string
		allowPlusOnes bool
		guests        []*domain.GuestWithRSVP
		want          domain.RSVPStats
	}{
		{name: "empty", want: domain.RSVPStats{}},
		{name: "host only", guests: []*domain.GuestWithRSVP{host}, want: domain.RSVPStats{TotalAttendees: 1}},
		{
			name:          "mixed",
			allowPlusOnes: true,
			guests:        []*domain.GuestWithRSVP{host, confirmed, declined, pending, missing},
			want:          domain.RSVPStats{TotalInvited: 4, Confirmed: 1, Declined: 1, Pending: 2, TotalAttendees: 4},
		},
		{
			name:   "plus-ones ignored when not allowed",
			guests: []*domain.GuestWithRSVP{host, confirmed, declined},
			want:   domain.RSVPStats{TotalInvited: 2, Confirmed: 1, Declined: 1, TotalAttendees: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeStats(&domain.Pact{AllowPlusOnes: tt.allowPlusOnes}, tt.guests)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.TotalInvited, got.Pending+got.Confirmed+got.Declined)
		})
	}
}

func TestPactService_HostOnlyOperations_HideFromOutsiders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	mallory := f.user(t, "Mallory", "mallory@x.com")
	details := f.pact(t, alice, domain.PactInput{SendReminders: true}, domain.GuestInvite{Email: "bob@x.com"})
	pactID := details.Pact.ID
	title := "Mine now"

	ops := map[string]func(callerID string) error{
		"update": func(id string) error {
			_, err := f.pacts.UpdatePact(ctx, pactID, id, domain.PactPatch{Title: &title})
			return err
		},
		"cancel": func(id string) error {
			_, err := f.pacts.CancelPact(ctx, pactID, id)
			return err
		},
		"delete": func(id string) error {
			return f.pacts.DeletePact(ctx, pactID, id)
		},
		"reminders": func(id string) error {
			_, err := f.pacts.SendReminders(ctx, pactID, id)
			return err
		},
		"add guests": func(id string) error {
			_, err := f.guests.AddGuests(ctx, pactID, id, []domain.GuestInvite{{Email: "eve@x.com"}})
			return err
		},
		"list responses": func(id string) error {
			_, _, err := f.rsvps.ListResponses(ctx, pactID, id, domain.PaginationParams{})
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op(mallory.ID)
			require.ErrorIs(t, err, domain.ErrNoAccess)

			err = op(bob.ID)
			require.ErrorIs(t, err, domain.ErrForbidden)
			assert.NotErrorIs(t, err, domain.ErrNoAccess)
		})
	}

	got, err := f.pacts.GetPact(ctx, pactID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Picnic", got.Pact.Title)
	assert.False(t, got.Pact.IsCancelled())
}

func TestPactService_UpdatePact_MaxAttendeesBelowHeadcount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	bob := f.user(t, "Bob", "bob@x.com")
	details := f.pact(t, alice, domain.PactInput{}, domain.GuestInvite{Email: "bob@x.com"}, domain.GuestInvite{Email: "carol@x.com"})
	pactID := details.Pact.ID

	_, err := f.rsvps.RecordResponse(ctx, pactID, bob.ID, domain.RSVPResponse{Status: domain.RSVPStatusConfirmed})
	require.NoError(t, err)

	one, two := 1, 2
	_, err = f.pacts.UpdatePact(ctx, pactID, alice.ID, domain.PactPatch{MaxAttendees: &one})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.pacts.GetPact(ctx, pactID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Pact.MaxAttendees)

	p, err := f.pacts.UpdatePact(ctx, pactID, alice.ID, domain.PactPatch{MaxAttendees: &two})
	require.NoError(t, err)
	require.NotNil(t, p.MaxAttendees)
	assert.Equal(t, 2, *p.MaxAttendees)
}

func TestPactService_UpdatePact_ClearOptionalFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice", "alice@x.com")
	deadline := time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC)
	limit := 10
	details := f.pact(t, alice, domain.PactInput{RSVPDeadline: &deadline, MaxAttendees: &limit}, domain.GuestInvite{Email: "bob@x.com"})

	_, err := f.pacts.UpdatePact(ctx, details.Pact.ID, alice.ID, domain.PactPatch{MaxAttendees: &limit, ClearMaxAttendees: true})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := f.pacts.UpdatePact(ctx, details.Pact.ID, alice.ID, domain.PactPatch{ClearRSVPDeadline: true, ClearMaxAttendees: true})
	require.NoError(t, err)
	assert.Nil(t, p.RSVPDeadline)
	assert.Nil(t, p.MaxAttendees)

	got, err := f.pacts.GetPact(ctx, details.Pact.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Pact.RSVPDeadline)
	assert.Nil(t, got.Pact.MaxAttendees)
}
