package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	pickupsvc "github.com/wastewise/wastewise-backend/internal/pickups"
	"github.com/wastewise/wastewise-backend/pkg/db/models"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

type testPickupsService struct {
	draftFn       func(ctx context.Context, sessionID uuid.UUID) (*pickupsvc.DraftView, error)
	setDetailsFn  func(ctx context.Context, sessionID uuid.UUID, input pickupsvc.DetailsInput) (*pickupsvc.DraftView, error)
	setScheduleFn func(ctx context.Context, sessionID uuid.UUID, input pickupsvc.ScheduleInput) (*pickupsvc.DraftView, error)
	retreatFn     func(ctx context.Context, sessionID uuid.UUID) (*pickupsvc.DraftView, error)
	submitFn      func(ctx context.Context, sessionID uuid.UUID, contact types.Contact) (*models.PickupRequest, error)
	cancelFn      func(ctx context.Context, sessionID uuid.UUID) error
	historyFn     func(ctx context.Context, sessionID uuid.UUID) ([]models.PickupRequest, error)
	trackFn       func(ctx context.Context, trackingID string) (*models.PickupRequest, error)
}

func (s *testPickupsService) Draft(ctx context.Context, sessionID uuid.UUID) (*pickupsvc.DraftView, error) {
	if s.draftFn != nil {
		return s.draftFn(ctx, sessionID)
	}
	return &pickupsvc.DraftView{Draft: &pickupsvc.Draft{Step: 1}}, nil
}

func (s *testPickupsService) SetDetails(ctx context.Context, sessionID uuid.UUID, input pickupsvc.DetailsInput) (*pickupsvc.DraftView, error) {
	if s.setDetailsFn != nil {
		return s.setDetailsFn(ctx, sessionID, input)
	}
	return &pickupsvc.DraftView{Draft: &pickupsvc.Draft{Step: 2}}, nil
}

func (s *testPickupsService) SetSchedule(ctx context.Context, sessionID uuid.UUID, input pickupsvc.ScheduleInput) (*pickupsvc.DraftView, error) {
	if s.setScheduleFn != nil {
		return s.setScheduleFn(ctx, sessionID, input)
	}
	return &pickupsvc.DraftView{Draft: &pickupsvc.Draft{Step: 3}}, nil
}

func (s *testPickupsService) Retreat(ctx context.Context, sessionID uuid.UUID) (*pickupsvc.DraftView, error) {
	if s.retreatFn != nil {
		return s.retreatFn(ctx, sessionID)
	}
	return &pickupsvc.DraftView{Draft: &pickupsvc.Draft{Step: 1}}, nil
}

func (s *testPickupsService) Submit(ctx context.Context, sessionID uuid.UUID, contact types.Contact) (*models.PickupRequest, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, sessionID, contact)
	}
	return &models.PickupRequest{}, nil
}

func (s *testPickupsService) CancelDraft(ctx context.Context, sessionID uuid.UUID) error {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, sessionID)
	}
	return nil
}

func (s *testPickupsService) History(ctx context.Context, sessionID uuid.UUID) ([]models.PickupRequest, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, sessionID)
	}
	return nil, nil
}

func (s *testPickupsService) Track(ctx context.Context, trackingID string) (*models.PickupRequest, error) {
	if s.trackFn != nil {
		return s.trackFn(ctx, trackingID)
	}
	return &models.PickupRequest{}, nil
}

func TestPickupSetDetailsSuccess(t *testing.T) {
	sessionID := uuid.New()
	var got pickupsvc.DetailsInput
	svc := &testPickupsService{
		setDetailsFn: func(ctx context.Context, sid uuid.UUID, input pickupsvc.DetailsInput) (*pickupsvc.DraftView, error) {
			got = input
			return &pickupsvc.DraftView{Draft: &pickupsvc.Draft{Step: 2, Category: input.Category, Bucket: input.Bucket}}, nil
		},
	}

	req := sessionRequest(http.MethodPost, "/api/v1/pickups/draft/details", sessionID,
		`{"category":"plastics","quantity":"medium"}`)
	resp := httptest.NewRecorder()
	PickupSetDetails(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Category != enums.CollectionCategoryPlastics {
		t.Fatalf("unexpected category %s", got.Category)
	}
	if got.Bucket != enums.QuantityBucketMedium {
		t.Fatalf("unexpected bucket %s", got.Bucket)
	}
}

func TestPickupSetDetailsRejectsUnknownCategory(t *testing.T) {
	req := sessionRequest(http.MethodPost, "/api/v1/pickups/draft/details", uuid.New(),
		`{"category":"uranium","quantity":"medium"}`)
	resp := httptest.NewRecorder()
	PickupSetDetails(&testPickupsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPickupSetScheduleRejectsShortDate(t *testing.T) {
	req := sessionRequest(http.MethodPost, "/api/v1/pickups/draft/schedule", uuid.New(),
		`{"date":"2026-9-1","slot":"morning"}`)
	resp := httptest.NewRecorder()
	PickupSetSchedule(&testPickupsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPickupSetScheduleOutOfWindow(t *testing.T) {
	svc := &testPickupsService{
		setScheduleFn: func(ctx context.Context, sid uuid.UUID, input pickupsvc.ScheduleInput) (*pickupsvc.DraftView, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date outside booking window")
		},
	}

	req := sessionRequest(http.MethodPost, "/api/v1/pickups/draft/schedule", uuid.New(),
		`{"date":"2020-01-01","slot":"morning"}`)
	resp := httptest.NewRecorder()
	PickupSetSchedule(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPickupSubmitSuccess(t *testing.T) {
	sessionID := uuid.New()
	var gotContact types.Contact
	svc := &testPickupsService{
		submitFn: func(ctx context.Context, sid uuid.UUID, contact types.Contact) (*models.PickupRequest, error) {
			gotContact = contact
			return &models.PickupRequest{TrackingID: "WWM1ABCD2EF3"}, nil
		},
	}

	body := `{"contact":{"name":"Ravi","email":"ravi@example.com","phone":"9876543210","address":"4 Lake View","city":"Bengaluru","pincode":"560034"}}`
	req := sessionRequest(http.MethodPost, "/api/v1/pickups", sessionID, body)
	resp := httptest.NewRecorder()
	PickupSubmit(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if gotContact.Name != "Ravi" || gotContact.City != "Bengaluru" {
		t.Fatalf("unexpected contact %+v", gotContact)
	}
}

func TestPickupSubmitIncompleteDraft(t *testing.T) {
	svc := &testPickupsService{
		submitFn: func(ctx context.Context, sid uuid.UUID, contact types.Contact) (*models.PickupRequest, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "draft missing schedule")
		},
	}

	body := `{"contact":{"name":"Ravi","email":"ravi@example.com","phone":"9876543210","address":"4 Lake View"}}`
	req := sessionRequest(http.MethodPost, "/api/v1/pickups", uuid.New(), body)
	resp := httptest.NewRecorder()
	PickupSubmit(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestPickupSubmitRejectsBadContactFormats(t *testing.T) {
	svc := &testPickupsService{
		submitFn: func(ctx context.Context, sid uuid.UUID, contact types.Contact) (*models.PickupRequest, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	cases := []string{
		`{"contact":{"name":"Ravi","email":"ravi@example.com","phone":"not-a-phone!!","address":"4 Lake View"}}`,
		`{"contact":{"name":"Ravi","email":"ravi at example","phone":"9876543210","address":"4 Lake View"}}`,
		`{"contact":{"name":"Ravi","phone":"9876543210","address":"4 Lake View"}}`,
	}

	for i, body := range cases {
		req := sessionRequest(http.MethodPost, "/api/v1/pickups", uuid.New(), body)
		resp := httptest.NewRecorder()
		PickupSubmit(svc, testLogger())(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400 got %d: %s", i, resp.Code, resp.Body.String())
		}
	}
}

func TestPickupTrackPassesID(t *testing.T) {
	var got string
	svc := &testPickupsService{
		trackFn: func(ctx context.Context, trackingID string) (*models.PickupRequest, error) {
			got = trackingID
			return &models.PickupRequest{TrackingID: trackingID}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pickups/WWM1ABCD2EF3", nil)
	req = addRouteParam(req, "trackingId", "WWM1ABCD2EF3")
	resp := httptest.NewRecorder()
	PickupTrack(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got != "WWM1ABCD2EF3" {
		t.Fatalf("unexpected tracking id %q", got)
	}
}
