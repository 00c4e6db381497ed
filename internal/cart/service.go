package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
)

const maxLineQuantity = 99

// Service defines cart operations for a shopping session.
type Service interface {
	AddItem(ctx context.Context, input AddItemInput) (*Snapshot, error)
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, name string, quantity int) (*Snapshot, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, name string) (*Snapshot, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// AddItemInput carries a product being added to the cart. RawPrice is the
// display price as the storefront shows it, e.g. "₹1,299".
type AddItemInput struct {
	SessionID uuid.UUID
	Name      string
	RawPrice  string
	ImageURL  string
	Quantity  int
}

// Snapshot is the cart contents plus derived totals.
type Snapshot struct {
	Items  []models.CartItem `json:"items"`
	Totals Totals            `json:"totals"`
	Count  int               `json:"count"`
}

type service struct {
	repo Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*Snapshot, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	existing, err := s.repo.FindLine(ctx, input.SessionID, name)
	switch {
	case err == nil:
		existing.Quantity = clampQuantity(existing.Quantity + quantity)
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line := &models.CartItem{
			ID:        uuid.New(),
			SessionID: input.SessionID,
			Name:      name,
			UnitPrice: ParsePrice(input.RawPrice),
			Quantity:  clampQuantity(quantity),
			ImageURL:  strings.TrimSpace(input.ImageURL),
		}
		if err := s.repo.Create(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart line")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}

	return s.Get(ctx, input.SessionID)
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, name string, quantity int) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	// A zero or negative quantity removes the line outright.
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, name)
	}

	line, err := s.repo.FindLine(ctx, sessionID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}

	line.Quantity = clampQuantity(quantity)
	if err := s.repo.Update(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
	}

	return s.Get(ctx, sessionID)
}

func (s *service) RemoveItem(ctx context.Context, sessionID uuid.UUID, name string) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if err := s.repo.DeleteLine(ctx, sessionID, name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	return s.Get(ctx, sessionID)
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error) {
	items, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return &Snapshot{
		Items:  items,
		Totals: ComputeTotals(items),
		Count:  count,
	}, nil
}

func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

func clampQuantity(quantity int) int {
	if quantity > maxLineQuantity {
		return maxLineQuantity
	}
	return quantity
}
