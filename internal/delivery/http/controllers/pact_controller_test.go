package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planpact/internal/delivery/http/helpers"
	"planpact/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePactService implements domain.PactService and records its inputs.
type fakePactService struct {
	details *domain.PactDetails
	pact    *domain.Pact
	pacts   []*domain.Pact
	queued  int
	err     error

	gotHostID  string
	gotPactID  string
	gotCaller  string
	gotInput   domain.PactInput
	gotInvites []domain.GuestInvite
	gotPatch   domain.PactPatch
}

func (f *fakePactService) CreatePact(ctx context.Context, hostID string, in domain.PactInput, invites []domain.GuestInvite) (*domain.PactDetails, error) {
	f.gotHostID, f.gotInput, f.gotInvites = hostID, in, invites
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakePactService) GetPact(ctx context.Context, pactID, callerID string) (*domain.PactDetails, error) {
	f.gotPactID, f.gotCaller = pactID, callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakePactService) ListPactsForUser(ctx context.Context, userID string) ([]*domain.Pact, error) {
	f.gotCaller = userID
	return f.pacts, f.err
}

func (f *fakePactService) UpdatePact(ctx context.Context, pactID, callerID string, patch domain.PactPatch) (*domain.Pact, error) {
	f.gotPactID, f.gotCaller, f.gotPatch = pactID, callerID, patch
	if f.err != nil {
		return nil, f.err
	}
	return f.pact, nil
}

func (f *fakePactService) CancelPact(ctx context.Context, pactID, callerID string) (*domain.Pact, error) {
	f.gotPactID, f.gotCaller = pactID, callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.pact, nil
}

func (f *fakePactService) DeletePact(ctx context.Context, pactID, callerID string) error {
	f.gotPactID, f.gotCaller = pactID, callerID
	return f.err
}

func (f *fakePactService) SendReminders(ctx context.Context, pactID, callerID string) (int, error) {
	f.gotPactID, f.gotCaller = pactID, callerID
	return f.queued, f.err
}

func samplePact() *domain.Pact {
	return &domain.Pact{
		ID:            "p1",
		Title:         "Picnic",
		HostID:        "u1",
		EventDate:     time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		SendReminders: true,
		Status:        domain.PactStatusActive,
	}
}

func TestPactController_CreatePact(t *testing.T) {
	validBody := `{"title":"Picnic","date":"2030-06-01","time":"12:30","rsvp_deadline":"2030-05-25","max_attendees":10,"guests":[{"name":"Bob","email":"bob@x.com"}]}`

	tests := []struct {
		name         string
		userID       string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "created", userID: "u1", body: validBody, wantStatus: http.StatusCreated},
		{name: "unauthenticated", body: validBody, wantStatus: http.StatusUnauthorized, wantBodyCode: helpers.ErrCodeUnauthorized},
		{name: "missing title", userID: "u1", body: `{"date":"2030-06-01","guests":[{"email":"bob@x.com"}]}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "bad date", userID: "u1", body: `{"title":"Picnic","date":"01/06/2030","guests":[{"email":"bob@x.com"}]}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "bad time", userID: "u1", body: `{"title":"Picnic","date":"2030-06-01","time":"noon","guests":[{"email":"bob@x.com"}]}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "no guests", userID: "u1", body: `{"title":"Picnic","date":"2030-06-01","guests":[]}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "bad guest email", userID: "u1", body: `{"title":"Picnic","date":"2030-06-01","guests":[{"email":"bob"}]}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "zero cap", userID: "u1", body: `{"title":"Picnic","date":"2030-06-01","max_attendees":0,"guests":[{"email":"bob@x.com"}]}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "host not found", userID: "u1", body: validBody, fakeErr: domain.ErrUserNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "service failure", userID: "u1", body: validBody, fakeErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantBodyCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePactService{details: &domain.PactDetails{Pact: samplePact()}, err: tt.fakeErr}
			ctrl := NewPactController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.CreatePact(rr, newRequest(http.MethodPost, "/pacts", tt.body, tt.userID))

			require.Equal(t, tt.wantStatus, rr.Code)
			apiErr := decodeEnvelope(t, rr, nil)
			if tt.wantBodyCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantBodyCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
		})
	}
}

func TestPactController_CreatePact_MapsRequest(t *testing.T) {
	fake := &fakePactService{details: &domain.PactDetails{Pact: samplePact()}}
	ctrl := NewPactController(testLogger, fake)
	rr := httptest.NewRecorder()
	body := `{"title":"Picnic","date":"2030-06-01","time":"12:30","rsvp_deadline":"2030-05-25","allow_plus_ones":true,"max_attendees":10,"guests":[{"name":"Bob","email":"bob@x.com"},{"email":"carol@x.com"}]}`

	ctrl.CreatePact(rr, newRequest(http.MethodPost, "/pacts", body, "u1"))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "u1", fake.gotHostID)
	in := fake.gotInput
	assert.Equal(t, "Picnic", in.Title)
	assert.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), in.EventDate)
	assert.Equal(t, "12:30", in.EventTime)
	require.NotNil(t, in.RSVPDeadline)
	assert.Equal(t, time.Date(2030, 5, 25, 0, 0, 0, 0, time.UTC), *in.RSVPDeadline)
	assert.True(t, in.SendReminders, "reminders default to on")
	assert.True(t, in.AllowPlusOnes)
	require.NotNil(t, in.MaxAttendees)
	assert.Equal(t, 10, *in.MaxAttendees)
	assert.Equal(t, []domain.GuestInvite{{Name: "Bob", Email: "bob@x.com"}, {Email: "carol@x.com"}}, fake.gotInvites)
}

func TestPactController_CreatePact_RemindersOff(t *testing.T) {
	fake := &fakePactService{details: &domain.PactDetails{Pact: samplePact()}}
	ctrl := NewPactController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.CreatePact(rr, newRequest(http.MethodPost, "/pacts", `{"title":"Picnic","date":"2030-06-01","send_reminders":false,"guests":[{"email":"bob@x.com"}]}`, "u1"))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.False(t, fake.gotInput.SendReminders)
	assert.Nil(t, fake.gotInput.RSVPDeadline)
}

func TestPactController_GetPact(t *testing.T) {
	tests := []struct {
		name        string
		fakeErr     error
		wantStatus  int
		wantMessage string
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "missing", fakeErr: domain.ErrPactNotFound, wantStatus: http.StatusNotFound, wantMessage: "pact not found"},
		{name: "no access looks missing", fakeErr: domain.ErrNoAccess, wantStatus: http.StatusNotFound, wantMessage: "pact not found"},
		{name: "deactivated caller", fakeErr: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantMessage: "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePactService{details: &domain.PactDetails{Pact: samplePact(), Stats: domain.RSVPStats{TotalInvited: 1, Pending: 1, TotalAttendees: 1}}, err: tt.fakeErr}
			ctrl := NewPactController(testLogger, fake)
			req := newRequest(http.MethodGet, "/pacts/p1", "", "u2")
			req.SetPathValue("pactID", "p1")
			rr := httptest.NewRecorder()

			ctrl.GetPact(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "p1", fake.gotPactID)
			assert.Equal(t, "u2", fake.gotCaller)
			var got domain.PactDetails
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantMessage != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantMessage, apiErr.Message)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "Picnic", got.Pact.Title)
			assert.Equal(t, 1, got.Stats.TotalAttendees)
		})
	}
}

func TestPactController_ListPacts_EmptyIsArray(t *testing.T) {
	ctrl := NewPactController(testLogger, &fakePactService{})
	rr := httptest.NewRecorder()

	ctrl.ListPacts(rr, newRequest(http.MethodGet, "/pacts", "", "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"error":null}`, rr.Body.String())
}

func TestPactController_UpdatePact(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
		checkPatch   func(t *testing.T, p domain.PactPatch)
	}{
		{
			name:       "title and date",
			body:       `{"title":"Picnic 2","date":"2030-07-01"}`,
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.PactPatch) {
				require.NotNil(t, p.Title)
				assert.Equal(t, "Picnic 2", *p.Title)
				require.NotNil(t, p.EventDate)
				assert.Equal(t, time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC), *p.EventDate)
				assert.Nil(t, p.Status)
			},
		},
		{
			name:       "cancel via status",
			body:       `{"status":"cancelled"}`,
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.PactPatch) {
				require.NotNil(t, p.Status)
				assert.Equal(t, domain.PactStatusCancelled, *p.Status)
			},
		},
		{
			name:       "clear deadline and cap",
			body:       `{"clear_rsvp_deadline":true,"clear_max_attendees":true}`,
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.PactPatch) {
				assert.True(t, p.ClearRSVPDeadline)
				assert.True(t, p.ClearMaxAttendees)
				assert.Nil(t, p.RSVPDeadline)
				assert.Nil(t, p.MaxAttendees)
			},
		},
		{name: "unknown status", body: `{"status":"paused"}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "bad deadline", body: `{"rsvp_deadline":"soon"}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "empty patch", body: `{}`, fakeErr: domain.NewValidationError("", "no valid fields to update"), wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "not host", body: `{"title":"Mine now"}`, fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantBodyCode: helpers.ErrCodeForbidden},
		{name: "missing pact", body: `{"title":"Mine now"}`, fakeErr: domain.ErrPactNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePactService{pact: samplePact(), err: tt.fakeErr}
			ctrl := NewPactController(testLogger, fake)
			req := newRequest(http.MethodPut, "/pacts/p1", tt.body, "u1")
			req.SetPathValue("pactID", "p1")
			rr := httptest.NewRecorder()

			ctrl.UpdatePact(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			apiErr := decodeEnvelope(t, rr, nil)
			if tt.wantBodyCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantBodyCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			if tt.checkPatch != nil {
				tt.checkPatch(t, fake.gotPatch)
			}
		})
	}
}

func TestPactController_CancelAndDelete(t *testing.T) {
	cancelled := samplePact()
	cancelled.Status = domain.PactStatusCancelled
	fake := &fakePactService{pact: cancelled}
	ctrl := NewPactController(testLogger, fake)

	req := newRequest(http.MethodPost, "/pacts/p1/cancel", "", "u1")
	req.SetPathValue("pactID", "p1")
	rr := httptest.NewRecorder()
	ctrl.CancelPact(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Pact
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, domain.PactStatusCancelled, got.Status)

	req = newRequest(http.MethodDelete, "/pacts/p1", "", "u1")
	req.SetPathValue("pactID", "p1")
	rr = httptest.NewRecorder()
	ctrl.DeletePact(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "p1", fake.gotPactID)

	fake.err = domain.ErrForbidden
	rr = httptest.NewRecorder()
	ctrl.DeletePact(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestPactController_SendReminders(t *testing.T) {
	tests := []struct {
		name       string
		queued     int
		fakeErr    error
		wantStatus int
	}{
		{name: "queued", queued: 2, wantStatus: http.StatusOK},
		{name: "reminders disabled", fakeErr: domain.NewValidationError("send_reminders", "reminders are disabled for this pact"), wantStatus: http.StatusBadRequest},
		{name: "not host", fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPactController(testLogger, &fakePactService{queued: tt.queued, err: tt.fakeErr})
			req := newRequest(http.MethodPost, "/pacts/p1/reminders", "", "u1")
			req.SetPathValue("pactID", "p1")
			rr := httptest.NewRecorder()

			ctrl.SendReminders(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var got RemindersResponse
				require.Nil(t, decodeEnvelope(t, rr, &got))
				assert.Equal(t, tt.queued, got.Queued)
			}
		})
	}
}
