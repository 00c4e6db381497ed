package pickups

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/pagination"
	wwredis "github.com/wastewise/wastewise-backend/pkg/redis"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

const (
	// historyKeep bounds how many pickups a session retains.
	historyKeep = pagination.DefaultLimit

	// bookingWindowDays is how far ahead a pickup can be scheduled,
	// counted from tomorrow.
	bookingWindowDays = 30

	// pickupRewardPoints is the green points grant for booking a pickup.
	pickupRewardPoints = 50

	dateLayout = "2006-01-02"
)

// pointsLedger grants green points when a pickup is booked.
type pointsLedger interface {
	Award(ctx context.Context, sessionID uuid.UUID, points int) (*models.RewardAccount, error)
}

// draftStore is the slice of the Redis client the wizard needs.
type draftStore interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DraftKey(sessionID string) string
}

// Service drives the three-step scheduling wizard and the resulting
// pickup bookings.
type Service interface {
	Draft(ctx context.Context, sessionID uuid.UUID) (*DraftView, error)
	SetDetails(ctx context.Context, sessionID uuid.UUID, input DetailsInput) (*DraftView, error)
	SetSchedule(ctx context.Context, sessionID uuid.UUID, input ScheduleInput) (*DraftView, error)
	Retreat(ctx context.Context, sessionID uuid.UUID) (*DraftView, error)
	Submit(ctx context.Context, sessionID uuid.UUID, contact types.Contact) (*models.PickupRequest, error)
	CancelDraft(ctx context.Context, sessionID uuid.UUID) error
	History(ctx context.Context, sessionID uuid.UUID) ([]models.PickupRequest, error)
	Track(ctx context.Context, trackingID string) (*models.PickupRequest, error)
}

// DetailsInput is step one of the wizard.
type DetailsInput struct {
	Category enums.CollectionCategory
	Bucket   enums.QuantityBucket
}

// ScheduleInput is step two of the wizard.
type ScheduleInput struct {
	Date string
	Slot enums.TimeSlot
}

type service struct {
	repo         Repository
	drafts       draftStore
	draftTTL     time.Duration
	ledger       pointsLedger
	demoTracking bool
	now          func() time.Time
}

// NewService builds a pickups service with the required dependencies.
// demoTracking swaps the strict not-found on unknown tracking IDs for a
// synthesized in-transit pickup.
func NewService(repo Repository, drafts draftStore, draftTTL time.Duration, ledger pointsLedger, demoTracking bool) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pickups repository required")
	}
	if drafts == nil {
		return nil, fmt.Errorf("draft store required")
	}
	if draftTTL <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive")
	}
	if ledger == nil {
		return nil, fmt.Errorf("points ledger required")
	}
	return &service{
		repo:         repo,
		drafts:       drafts,
		draftTTL:     draftTTL,
		ledger:       ledger,
		demoTracking: demoTracking,
		now:          time.Now,
	}, nil
}

func (s *service) Draft(ctx context.Context, sessionID uuid.UUID) (*DraftView, error) {
	draft, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return draft.view(), nil
}

func (s *service) SetDetails(ctx context.Context, sessionID uuid.UUID, input DetailsInput) (*DraftView, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown collection category")
	}
	if !input.Bucket.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown quantity bucket")
	}

	draft, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft.Category = input.Category
	draft.Bucket = input.Bucket
	if draft.Step < stepSchedule {
		draft.Step = stepSchedule
	}

	if err := s.save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft.view(), nil
}

func (s *service) SetSchedule(ctx context.Context, sessionID uuid.UUID, input ScheduleInput) (*DraftView, error) {
	draft, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !draft.hasDetails() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "pickup details must be set first")
	}

	if err := s.validateDate(input.Date); err != nil {
		return nil, err
	}
	if !input.Slot.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown time slot")
	}

	draft.Date = input.Date
	draft.Slot = input.Slot
	if draft.Step < stepContact {
		draft.Step = stepContact
	}

	if err := s.save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft.view(), nil
}

func (s *service) Retreat(ctx context.Context, sessionID uuid.UUID) (*DraftView, error) {
	draft, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step > stepDetails {
		draft.Step--
	}
	if err := s.save(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft.view(), nil
}

func (s *service) Submit(ctx context.Context, sessionID uuid.UUID, contact types.Contact) (*models.PickupRequest, error) {
	draft, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !draft.hasDetails() || !draft.hasSchedule() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "wizard steps incomplete")
	}

	draft.Contact = trimContact(contact)
	if !draft.hasContact() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact details incomplete")
	}
	if !types.ValidEmail(draft.Contact.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact email is invalid")
	}
	if !types.ValidPhone(draft.Contact.Phone) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact phone is invalid")
	}

	pickupDate, err := time.ParseInLocation(dateLayout, draft.Date, time.UTC)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pickup date")
	}

	pickup := &models.PickupRequest{
		ID:         uuid.New(),
		SessionID:  sessionID,
		TrackingID: s.newTrackingID(),
		Category:   draft.Category,
		Bucket:     draft.Bucket,
		PickupDate: pickupDate,
		Slot:       draft.Slot,
		Contact:    draft.Contact,
		Status:     enums.PickupStatusScheduled,
	}

	if err := s.repo.Create(ctx, pickup); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving pickup request")
	}
	if err := s.repo.TrimHistory(ctx, sessionID, historyKeep); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "trimming pickup history")
	}

	// The wizard is done; a failed delete only means the draft lingers
	// until its TTL.
	_ = s.drafts.Del(ctx, s.drafts.DraftKey(sessionID.String()))

	// Points are a cosmetic demo perk; a failed grant never voids the
	// booking.
	_, _ = s.ledger.Award(ctx, sessionID, pickupRewardPoints)

	return pickup, nil
}

func (s *service) CancelDraft(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.drafts.Del(ctx, s.drafts.DraftKey(sessionID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "discarding wizard draft")
	}
	return nil
}

func (s *service) History(ctx context.Context, sessionID uuid.UUID) ([]models.PickupRequest, error) {
	pickups, err := s.repo.FindBySession(ctx, sessionID, historyKeep)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading pickup history")
	}
	return pickups, nil
}

func (s *service) Track(ctx context.Context, trackingID string) (*models.PickupRequest, error) {
	trackingID = strings.TrimSpace(strings.ToUpper(trackingID))
	if trackingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking id is required")
	}

	pickup, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.demoTracking {
				return s.demoPickup(trackingID), nil
			}
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pickup not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading pickup")
	}
	return pickup, nil
}

// demoPickup fabricates an in-transit household pickup due today so
// storefront demos always show a tracking result.
func (s *service) demoPickup(trackingID string) *models.PickupRequest {
	return &models.PickupRequest{
		TrackingID: trackingID,
		Category:   enums.CollectionCategoryHousehold,
		Bucket:     enums.QuantityBucketMedium,
		PickupDate: s.now().UTC().Truncate(24 * time.Hour),
		Slot:       enums.TimeSlotMorning,
		Status:     enums.PickupStatusInTransit,
	}
}

func (s *service) loadOrStart(ctx context.Context, sessionID uuid.UUID) (*Draft, error) {
	var draft Draft
	err := s.drafts.GetJSON(ctx, s.drafts.DraftKey(sessionID.String()), &draft)
	switch {
	case err == nil:
		return &draft, nil
	case errors.Is(err, wwredis.ErrNotFound):
		fresh := newDraft()
		if err := s.save(ctx, sessionID, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading wizard draft")
	}
}

func (s *service) save(ctx context.Context, sessionID uuid.UUID, draft *Draft) error {
	key := s.drafts.DraftKey(sessionID.String())
	if err := s.drafts.SetJSON(ctx, key, draft, s.draftTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving wizard draft")
	}
	return nil
}

// validateDate accepts dates from tomorrow through the booking window.
func (s *service) validateDate(raw string) error {
	parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "pickup date must be formatted YYYY-MM-DD")
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	earliest := today.Add(24 * time.Hour)
	latest := earliest.Add(bookingWindowDays * 24 * time.Hour)

	if parsed.Before(earliest) {
		return pkgerrors.New(pkgerrors.CodeValidation, "pickup date must be at least tomorrow")
	}
	if parsed.After(latest) {
		return pkgerrors.New(pkgerrors.CodeValidation, "pickup date is beyond the booking window")
	}
	return nil
}

// newTrackingID produces IDs like WWMF3K2J9QX4ZT: a WW prefix, the boot
// millisecond clock in base36, then four random base36 characters.
func (s *service) newTrackingID() string {
	stamp := strings.ToUpper(strconv.FormatInt(s.now().UnixMilli(), 36))

	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			n = big.NewInt(int64(i))
		}
		suffix[i] = alphabet[n.Int64()]
	}

	return "WW" + stamp + string(suffix)
}

func trimContact(contact types.Contact) types.Contact {
	return types.Contact{
		Name:    strings.TrimSpace(contact.Name),
		Email:   strings.TrimSpace(contact.Email),
		Phone:   strings.TrimSpace(contact.Phone),
		Address: strings.TrimSpace(contact.Address),
		City:    strings.TrimSpace(contact.City),
		Pincode: strings.TrimSpace(contact.Pincode),
		Notes:   strings.TrimSpace(contact.Notes),
	}
}
