package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

// Repository isolates order persistence from the service logic.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.StoreOrder) error
	FindByPublicID(ctx context.Context, publicID string) (*models.StoreOrder, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.StoreOrder, error)
	TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.StoreOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByPublicID(ctx context.Context, publicID string) (*models.StoreOrder, error) {
	var order models.StoreOrder
	err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.StoreOrder, error) {
	var orders []models.StoreOrder
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("placed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TrimHistory deletes everything older than the newest keep rows so demo
// sessions never accumulate unbounded order history.
func (r *repository) TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error {
	if keep <= 0 {
		return nil
	}
	subquery := r.db.WithContext(ctx).
		Model(&models.StoreOrder{}).
		Select("id").
		Where("session_id = ?", sessionID).
		Order("placed_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("session_id = ? AND id NOT IN (?)", sessionID, subquery).
		Delete(&models.StoreOrder{}).Error
}
