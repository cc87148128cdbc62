package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"planpact/internal/delivery/http/helpers"
	"planpact/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRSVPService struct {
	rsvp  *domain.RSVP
	stats domain.RSVPStats
	items []*domain.RSVPWithGuest
	total int
	err   error

	gotResp   domain.RSVPResponse
	gotParams domain.PaginationParams
}

func (f *fakeRSVPService) RecordResponse(ctx context.Context, pactID, callerID string, resp domain.RSVPResponse) (*domain.RSVP, error) {
	f.gotResp = resp
	if f.err != nil {
		return nil, f.err
	}
	return f.rsvp, nil
}

func (f *fakeRSVPService) GetStats(ctx context.Context, pactID, callerID string) (domain.RSVPStats, error) {
	return f.stats, f.err
}

func (f *fakeRSVPService) ListResponses(ctx context.Context, pactID, callerID string, params domain.PaginationParams) ([]*domain.RSVPWithGuest, int, error) {
	f.gotParams = params
	return f.items, f.total, f.err
}

type fakeGuestService struct {
	guests     []*domain.Guest
	list       []*domain.GuestWithRSVP
	err        error
	gotInvites []domain.GuestInvite
}

func (f *fakeGuestService) AddGuests(ctx context.Context, pactID, callerID string, invites []domain.GuestInvite) ([]*domain.Guest, error) {
	f.gotInvites = invites
	if f.err != nil {
		return nil, f.err
	}
	return f.guests, nil
}

func (f *fakeGuestService) ListGuests(ctx context.Context, pactID, callerID string) ([]*domain.GuestWithRSVP, error) {
	return f.list, f.err
}

func pactRequest(method, target, body, userID string) *http.Request {
	req := newRequest(method, target, body, userID)
	req.SetPathValue("pactID", "p1")
	return req
}

func TestRSVPController_RecordRSVP(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
		wantMessage  string
	}{
		{name: "confirm", body: `{"status":"confirmed","plus_ones":2,"message":"see you"}`, wantStatus: http.StatusOK},
		{name: "decline", body: `{"status":"declined"}`, wantStatus: http.StatusOK},
		{name: "pending is not settable", body: `{"status":"pending"}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "missing status", body: `{"plus_ones":1}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "negative plus ones", body: `{"status":"confirmed","plus_ones":-1}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "not invited", body: `{"status":"confirmed"}`, fakeErr: domain.ErrNoAccess, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound, wantMessage: "pact not found"},
		{name: "full", body: `{"status":"confirmed"}`, fakeErr: domain.ErrPactFull, wantStatus: http.StatusConflict, wantBodyCode: helpers.ErrCodeConflict, wantMessage: "pact is full"},
		{name: "plus ones disallowed", body: `{"status":"confirmed","plus_ones":1}`, fakeErr: domain.NewValidationError("plus_ones", "this pact does not allow plus-ones"), wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest, wantMessage: "plus_ones: this pact does not allow plus-ones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRSVPService{rsvp: &domain.RSVP{ID: "r1", Status: domain.RSVPStatusConfirmed}, err: tt.fakeErr}
			ctrl := NewRSVPController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.RecordRSVP(rr, pactRequest(http.MethodPost, "/pacts/p1/rsvp", tt.body, "u2"))

			require.Equal(t, tt.wantStatus, rr.Code)
			apiErr := decodeEnvelope(t, rr, nil)
			if tt.wantBodyCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantBodyCode, apiErr.Code)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, apiErr.Message)
				}
				return
			}
			require.Nil(t, apiErr)
		})
	}
}

func TestRSVPController_RecordRSVP_MapsBody(t *testing.T) {
	fake := &fakeRSVPService{rsvp: &domain.RSVP{ID: "r1"}}
	ctrl := NewRSVPController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.RecordRSVP(rr, pactRequest(http.MethodPost, "/pacts/p1/rsvp", `{"status":"confirmed","plus_ones":2,"message":"see you"}`, "u2"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.RSVPStatusConfirmed, fake.gotResp.Status)
	assert.Equal(t, 2, fake.gotResp.PlusOnes)
	require.NotNil(t, fake.gotResp.Message)
	assert.Equal(t, "see you", *fake.gotResp.Message)
}

func TestRSVPController_ListRSVPs(t *testing.T) {
	fake := &fakeRSVPService{
		items: []*domain.RSVPWithGuest{{RSVP: &domain.RSVP{ID: "r3"}, GuestName: "Carol", GuestEmail: "carol@x.com"}},
		total: 3,
	}
	ctrl := NewRSVPController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.ListRSVPs(rr, pactRequest(http.MethodGet, "/pacts/p1/rsvps?page=2&page_size=2", "", "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 2}, fake.gotParams)
	var got RSVPListResponse
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Carol", got.Items[0].GuestName)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 2, Total: 3, TotalPages: 2}, got.Pagination)
}

func TestRSVPController_ListRSVPs_Errors(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{name: "guest is not host", fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "stranger", fakeErr: domain.ErrNoAccess, wantStatus: http.StatusNotFound},
		{name: "missing", fakeErr: domain.ErrPactNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRSVPController(testLogger, &fakeRSVPService{err: tt.fakeErr})
			rr := httptest.NewRecorder()

			ctrl.ListRSVPs(rr, pactRequest(http.MethodGet, "/pacts/p1/rsvps", "", "u2"))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRSVPController_GetStats(t *testing.T) {
	want := domain.RSVPStats{TotalInvited: 2, Confirmed: 1, Pending: 1, TotalAttendees: 4}
	ctrl := NewRSVPController(testLogger, &fakeRSVPService{stats: want})
	rr := httptest.NewRecorder()

	ctrl.GetStats(rr, pactRequest(http.MethodGet, "/pacts/p1/stats", "", "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.RSVPStats
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, want, got)
}

func TestGuestController_AddGuests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "added", body: `{"guests":[{"name":"Dan","email":"dan@x.com"}]}`, wantStatus: http.StatusOK},
		{name: "empty list", body: `{"guests":[]}`, wantStatus: http.StatusBadRequest},
		{name: "bad email", body: `{"guests":[{"email":"dan"}]}`, wantStatus: http.StatusBadRequest},
		{name: "not host", body: `{"guests":[{"email":"dan@x.com"}]}`, fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "cancelled pact", body: `{"guests":[{"email":"dan@x.com"}]}`, fakeErr: domain.NewValidationError("status", "pact is cancelled"), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGuestService{guests: []*domain.Guest{{ID: "g1", Email: "dan@x.com", Name: "Dan"}}, err: tt.fakeErr}
			ctrl := NewGuestController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.AddGuests(rr, pactRequest(http.MethodPost, "/pacts/p1/guests", tt.body, "u1"))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var got []*domain.Guest
				require.Nil(t, decodeEnvelope(t, rr, &got))
				require.Len(t, got, 1)
				assert.Equal(t, []domain.GuestInvite{{Name: "Dan", Email: "dan@x.com"}}, fake.gotInvites)
			}
		})
	}
}

func TestGuestController_ListGuests(t *testing.T) {
	ctrl := NewGuestController(testLogger, &fakeGuestService{})
	rr := httptest.NewRecorder()

	ctrl.ListGuests(rr, pactRequest(http.MethodGet, "/pacts/p1/guests", "", "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"error":null}`, rr.Body.String())

	ctrl = NewGuestController(testLogger, &fakeGuestService{err: domain.ErrNoAccess})
	rr = httptest.NewRecorder()
	ctrl.ListGuests(rr, pactRequest(http.MethodGet, "/pacts/p1/guests", "", "u9"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
