package pickups

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	wwredis "github.com/wastewise/wastewise-backend/pkg/redis"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

type memoryDraftStore struct {
	values map[string][]byte
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{values: map[string][]byte{}}
}

func (m *memoryDraftStore) GetJSON(ctx context.Context, key string, out any) error {
	raw, ok := m.values[key]
	if !ok {
		return wwredis.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (m *memoryDraftStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryDraftStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryDraftStore) DraftKey(sessionID string) string {
	return "ww:wizard_draft:" + sessionID
}

type stubPickupRepo struct {
	created []*models.PickupRequest
	trimmed bool
}

func (s *stubPickupRepo) Create(ctx context.Context, pickup *models.PickupRequest) error {
	s.created = append(s.created, pickup)
	return nil
}

func (s *stubPickupRepo) FindByTrackingID(ctx context.Context, trackingID string) (*models.PickupRequest, error) {
	for _, pickup := range s.created {
		if pickup.TrackingID == trackingID {
			return pickup, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPickupRepo) FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.PickupRequest, error) {
	var out []models.PickupRequest
	for _, pickup := range s.created {
		if pickup.SessionID == sessionID {
			out = append(out, *pickup)
		}
	}
	return out, nil
}

func (s *stubPickupRepo) TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error {
	s.trimmed = true
	return nil
}

type stubLedger struct {
	sessionID uuid.UUID
	points    int
}

func (s *stubLedger) Award(ctx context.Context, sessionID uuid.UUID, points int) (*models.RewardAccount, error) {
	s.sessionID = sessionID
	s.points += points
	return &models.RewardAccount{SessionID: sessionID, Points: points}, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
}

func validContact() types.Contact {
	return types.Contact{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 Green Lane",
		City:    "Pune",
		Pincode: "411001",
	}
}

func newWizard(t *testing.T, repo Repository) (Service, *memoryDraftStore) {
	t.Helper()
	store := newMemoryDraftStore()
	svc, err := NewService(repo, store, 30*time.Minute, &stubLedger{}, false)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = fixedNow
	return svc, store
}

func TestWizardHappyPath(t *testing.T) {
	t.Parallel()

	repo := &stubPickupRepo{}
	svc, store := newWizard(t, repo)
	sessionID := uuid.New()
	ctx := context.Background()

	draft, err := svc.Draft(ctx, sessionID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if draft.Step != stepDetails {
		t.Fatalf("step = %d, want %d", draft.Step, stepDetails)
	}

	draft, err = svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryEWaste,
		Bucket:   enums.QuantityBucketMedium,
	})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if draft.Step != stepSchedule {
		t.Fatalf("step = %d, want %d", draft.Step, stepSchedule)
	}

	draft, err = svc.SetSchedule(ctx, sessionID, ScheduleInput{
		Date: "2025-09-15",
		Slot: enums.TimeSlotMorning,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if draft.Step != stepContact {
		t.Fatalf("step = %d, want %d", draft.Step, stepContact)
	}

	pickup, err := svc.Submit(ctx, sessionID, validContact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !strings.HasPrefix(pickup.TrackingID, "WW") {
		t.Fatalf("tracking id %q missing prefix", pickup.TrackingID)
	}
	if pickup.Status != enums.PickupStatusScheduled {
		t.Fatalf("status = %s, want scheduled", pickup.Status)
	}
	if !repo.trimmed {
		t.Fatal("expected history trim")
	}
	if len(store.values) != 0 {
		t.Fatal("expected draft cleared after submit")
	}
}

func TestWizardSubmitAwardsGreenPoints(t *testing.T) {
	t.Parallel()

	ledger := &stubLedger{}
	store := newMemoryDraftStore()
	svc, err := NewService(&stubPickupRepo{}, store, 30*time.Minute, ledger, false)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = fixedNow
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryOrganic,
		Bucket:   enums.QuantityBucketSmall,
	}); err != nil {
		t.Fatalf("details: %v", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, ScheduleInput{
		Date: "2025-09-15",
		Slot: enums.TimeSlotMorning,
	}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := svc.Submit(ctx, sessionID, validContact()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if ledger.sessionID != sessionID {
		t.Fatalf("awarded session = %s, want %s", ledger.sessionID, sessionID)
	}
	if ledger.points != pickupRewardPoints {
		t.Fatalf("awarded points = %d, want %d", ledger.points, pickupRewardPoints)
	}
}

func TestWizardDraftSummaryLabels(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})
	sessionID := uuid.New()
	ctx := context.Background()

	draft, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryPlastics,
		Bucket:   enums.QuantityBucketSmall,
	})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if draft.Summary.Category != "Plastics & Glass" {
		t.Fatalf("category label = %q", draft.Summary.Category)
	}
	if draft.Summary.Bucket != "Small (1-2 bags)" {
		t.Fatalf("bucket label = %q", draft.Summary.Bucket)
	}
	if draft.Summary.Date != "" || draft.Summary.Slot != "" {
		t.Fatalf("unscheduled draft should have empty date and slot labels, got %+v", draft.Summary)
	}

	draft, err = svc.SetSchedule(ctx, sessionID, ScheduleInput{
		Date: "2025-09-20",
		Slot: enums.TimeSlotAfternoon,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if draft.Summary.Date != "Sat, Sep 20, 2025" {
		t.Fatalf("date label = %q", draft.Summary.Date)
	}
	if draft.Summary.Slot != "Afternoon (12 PM - 4 PM)" {
		t.Fatalf("slot label = %q", draft.Summary.Slot)
	}
}

func TestWizardScheduleRequiresDetails(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})

	_, err := svc.SetSchedule(context.Background(), uuid.New(), ScheduleInput{
		Date: "2025-09-15",
		Slot: enums.TimeSlotEvening,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWizardDateWindow(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryPlastics,
		Bucket:   enums.QuantityBucketSmall,
	}); err != nil {
		t.Fatalf("details: %v", err)
	}

	cases := []struct {
		date string
		ok   bool
	}{
		{"2025-09-10", false}, // today
		{"2025-09-11", true},  // tomorrow
		{"2025-10-11", true},  // window edge
		{"2025-10-12", false}, // beyond window
		{"15-09-2025", false}, // bad format
	}

	for _, tc := range cases {
		_, err := svc.SetSchedule(ctx, sessionID, ScheduleInput{Date: tc.date, Slot: enums.TimeSlotAfternoon})
		if tc.ok && err != nil {
			t.Fatalf("date %s: unexpected error %v", tc.date, err)
		}
		if !tc.ok {
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("date %s: expected validation error, got %v", tc.date, err)
			}
		}
	}
}

func TestWizardSubmitIncompleteDraft(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryOrganic,
		Bucket:   enums.QuantityBucketBulk,
	}); err != nil {
		t.Fatalf("details: %v", err)
	}

	_, err := svc.Submit(ctx, sessionID, validContact())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWizardSubmitRejectsIncompleteContact(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryHousehold,
		Bucket:   enums.QuantityBucketLarge,
	}); err != nil {
		t.Fatalf("details: %v", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, ScheduleInput{
		Date: "2025-09-20",
		Slot: enums.TimeSlotEvening,
	}); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	contact := validContact()
	contact.Phone = "   "
	_, err := svc.Submit(ctx, sessionID, contact)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWizardSubmitRejectsMalformedContact(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryHousehold,
		Bucket:   enums.QuantityBucketLarge,
	}); err != nil {
		t.Fatalf("details: %v", err)
	}
	if _, err := svc.SetSchedule(ctx, sessionID, ScheduleInput{
		Date: "2025-09-20",
		Slot: enums.TimeSlotEvening,
	}); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	junkPhone := validContact()
	junkPhone.Phone = "not-a-phone-number!!"
	_, err := svc.Submit(ctx, sessionID, junkPhone)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("junk phone: unexpected error: %v", err)
	}

	badEmail := validContact()
	badEmail.Email = "asha at example"
	_, err = svc.Submit(ctx, sessionID, badEmail)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("bad email: unexpected error: %v", err)
	}
}

func TestWizardRetreatStepsBack(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SetDetails(ctx, sessionID, DetailsInput{
		Category: enums.CollectionCategoryEWaste,
		Bucket:   enums.QuantityBucketSmall,
	}); err != nil {
		t.Fatalf("details: %v", err)
	}

	draft, err := svc.Retreat(ctx, sessionID)
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if draft.Step != stepDetails {
		t.Fatalf("step = %d, want %d", draft.Step, stepDetails)
	}

	// Retreating from the first step stays on the first step.
	draft, err = svc.Retreat(ctx, sessionID)
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if draft.Step != stepDetails {
		t.Fatalf("step = %d, want %d", draft.Step, stepDetails)
	}
}

func TestTrackNormalizesCase(t *testing.T) {
	t.Parallel()

	repo := &stubPickupRepo{created: []*models.PickupRequest{{
		TrackingID: "WWABC123XYZ0",
		SessionID:  uuid.New(),
	}}}
	svc, _ := newWizard(t, repo)

	pickup, err := svc.Track(context.Background(), "  wwabc123xyz0 ")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if pickup.TrackingID != "WWABC123XYZ0" {
		t.Fatalf("tracking id = %q", pickup.TrackingID)
	}
}

func TestTrackUnknownID(t *testing.T) {
	t.Parallel()

	svc, _ := newWizard(t, &stubPickupRepo{})

	_, err := svc.Track(context.Background(), "WWNOPE")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTrackDemoModeSynthesizesPickup(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubPickupRepo{}, newMemoryDraftStore(), 30*time.Minute, &stubLedger{}, true)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = fixedNow

	pickup, trackErr := svc.Track(context.Background(), "WWM1ABCD2EF3")
	if trackErr != nil {
		t.Fatalf("track: %v", trackErr)
	}
	if pickup.TrackingID != "WWM1ABCD2EF3" {
		t.Fatalf("tracking id = %q", pickup.TrackingID)
	}
	if pickup.Status != enums.PickupStatusInTransit {
		t.Fatalf("status = %q, want %q", pickup.Status, enums.PickupStatusInTransit)
	}
	if !pickup.PickupDate.Equal(fixedNow().Truncate(24 * time.Hour)) {
		t.Fatalf("pickup date = %s", pickup.PickupDate)
	}
}
