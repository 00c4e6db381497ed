package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/internal/cart"
	"github.com/wastewise/wastewise-backend/pkg/db"
	"github.com/wastewise/wastewise-backend/pkg/db/models"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/pagination"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

const (
	// historyKeep bounds how many orders a session retains.
	historyKeep = pagination.DefaultLimit

	// orderRewardPoints is the green points grant for placing an order.
	orderRewardPoints = 25

	publicIDAttempts = 5
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// cartReader is the slice of the cart service checkout needs.
type cartReader interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*cart.Snapshot, error)
}

// pointsLedger grants green points when an order is placed.
type pointsLedger interface {
	Award(ctx context.Context, sessionID uuid.UUID, points int) (*models.RewardAccount, error)
}

// Service defines checkout and tracking operations.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*models.StoreOrder, error)
	Track(ctx context.Context, publicID string) (*TrackingView, error)
	History(ctx context.Context, sessionID uuid.UUID) ([]OrderView, error)
}

// CheckoutInput captures the data required to place an order.
type CheckoutInput struct {
	SessionID     uuid.UUID
	PaymentMethod enums.PaymentMethod
	Contact       types.Contact
}

// OrderView is an order with its age-derived delivery stage.
type OrderView struct {
	Order       models.StoreOrder `json:"order"`
	Status      enums.OrderStatus `json:"status"`
	StatusLabel string            `json:"status_label"`
}

// TrackingStage is one step of the delivery timeline.
type TrackingStage struct {
	Status  enums.OrderStatus `json:"status"`
	Label   string            `json:"label"`
	Reached bool              `json:"reached"`
	At      *time.Time        `json:"at,omitempty"`
}

// TrackingView is the full tracking answer for one order.
type TrackingView struct {
	Order       models.StoreOrder `json:"order"`
	Status      enums.OrderStatus `json:"status"`
	StatusLabel string            `json:"status_label"`
	Timeline    []TrackingStage   `json:"timeline"`
	Demo        bool              `json:"demo,omitempty"`
}

type service struct {
	repo         Repository
	cartSvc      cartReader
	cartRepo     cart.Repository
	tx           txRunner
	ledger       pointsLedger
	demoTracking bool
	now          func() time.Time
}

// NewService builds an orders service with the required dependencies.
// demoTracking makes unknown tracking IDs resolve to a synthetic order
// instead of a not-found error.
func NewService(repo Repository, cartSvc cartReader, cartRepo cart.Repository, tx txRunner, ledger pointsLedger, demoTracking bool) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("points ledger required")
	}
	return &service{
		repo:         repo,
		cartSvc:      cartSvc,
		cartRepo:     cartRepo,
		tx:           tx,
		ledger:       ledger,
		demoTracking: demoTracking,
		now:          time.Now,
	}, nil
}

func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*models.StoreOrder, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	snapshot, err := s.cartSvc.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	items := make(types.OrderItems, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, types.OrderItem{
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			ImageURL:  line.ImageURL,
		})
	}

	placedAt := s.now().UTC()
	order := &models.StoreOrder{
		ID:            uuid.New(),
		SessionID:     input.SessionID,
		Items:         items,
		Subtotal:      snapshot.Totals.Subtotal,
		Shipping:      snapshot.Totals.Shipping,
		Tax:           snapshot.Totals.Tax,
		Total:         snapshot.Totals.Total,
		PaymentMethod: input.PaymentMethod,
		Contact:       input.Contact,
		PlacedAt:      placedAt,
	}

	// Retry on the rare public ID collision.
	var txErr error
	for attempt := 0; attempt < publicIDAttempts; attempt++ {
		order.PublicID = newPublicID()
		txErr = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			if err := txRepo.Create(ctx, order); err != nil {
				return err
			}
			if err := txRepo.TrimHistory(ctx, input.SessionID, historyKeep); err != nil {
				return err
			}
			return s.cartRepo.WithTx(tx).DeleteBySession(ctx, input.SessionID)
		})
		if txErr == nil {
			// Points are a cosmetic demo perk; a failed grant never
			// voids the placed order.
			_, _ = s.ledger.Award(ctx, input.SessionID, orderRewardPoints)
			return order, nil
		}
		if !db.IsUniqueViolation(txErr, "uq_store_orders_public_id") {
			break
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "placing order")
}

func (s *service) Track(ctx context.Context, publicID string) (*TrackingView, error) {
	if publicID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking id is required")
	}

	order, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.demoTracking {
				return s.demoView(publicID), nil
			}
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	view := s.buildView(*order)
	return &view, nil
}

func (s *service) History(ctx context.Context, sessionID uuid.UUID) ([]OrderView, error) {
	records, err := s.repo.FindBySession(ctx, sessionID, historyKeep)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order history")
	}

	views := make([]OrderView, 0, len(records))
	for _, record := range records {
		status := s.statusFor(record.PlacedAt)
		views = append(views, OrderView{
			Order:       record,
			Status:      status,
			StatusLabel: status.Label(),
		})
	}
	return views, nil
}

func (s *service) statusFor(placedAt time.Time) enums.OrderStatus {
	days := int(s.now().UTC().Sub(placedAt.UTC()).Hours() / 24)
	return enums.OrderStatusForAge(days)
}

func (s *service) buildView(order models.StoreOrder) TrackingView {
	status := s.statusFor(order.PlacedAt)
	return TrackingView{
		Order:       order,
		Status:      status,
		StatusLabel: status.Label(),
		Timeline:    s.timeline(order.PlacedAt, status),
	}
}

func (s *service) timeline(placedAt time.Time, current enums.OrderStatus) []TrackingStage {
	stages := []enums.OrderStatus{
		enums.OrderStatusProcessing,
		enums.OrderStatusShipped,
		enums.OrderStatusOutForDelivery,
		enums.OrderStatusDelivered,
	}

	timeline := make([]TrackingStage, 0, len(stages))
	reached := true
	for offset, stage := range stages {
		stageTime := placedAt.UTC().Add(time.Duration(offset) * 24 * time.Hour)
		entry := TrackingStage{
			Status:  stage,
			Label:   stage.Label(),
			Reached: reached,
		}
		if reached {
			at := stageTime
			entry.At = &at
		}
		if stage == current {
			reached = false
		}
		timeline = append(timeline, entry)
	}
	return timeline
}

// demoView fabricates an in-transit order so storefront demos always show
// a tracking result.
func (s *service) demoView(publicID string) *TrackingView {
	placedAt := s.now().UTC().Add(-36 * time.Hour)
	order := models.StoreOrder{
		PublicID: publicID,
		Items:    types.OrderItems{},
		PlacedAt: placedAt,
	}
	view := s.buildView(order)
	view.Demo = true
	return &view
}

func newPublicID() string {
	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			n = big.NewInt(int64(i))
		}
		digits[i] = byte('0' + n.Int64())
	}
	return "WW" + string(digits)
}
