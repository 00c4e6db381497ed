package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

// Repository isolates cart persistence from the service logic.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]models.CartItem, error)
	FindLine(ctx context.Context, sessionID uuid.UUID, name string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Update(ctx context.Context, item *models.CartItem) error
	DeleteLine(ctx context.Context, sessionID uuid.UUID, name string) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindLine(ctx context.Context, sessionID uuid.UUID, name string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND name = ?", sessionID, name).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteLine(ctx context.Context, sessionID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND name = ?", sessionID, name).
		Delete(&models.CartItem{}).Error
}

func (r *repository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).Error
}
