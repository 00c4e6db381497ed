package pickups

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

// Repository isolates pickup persistence from the service logic.
type Repository interface {
	Create(ctx context.Context, pickup *models.PickupRequest) error
	FindByTrackingID(ctx context.Context, trackingID string) (*models.PickupRequest, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.PickupRequest, error)
	TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pickups repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, pickup *models.PickupRequest) error {
	return r.db.WithContext(ctx).Create(pickup).Error
}

func (r *repository) FindByTrackingID(ctx context.Context, trackingID string) (*models.PickupRequest, error) {
	var pickup models.PickupRequest
	err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		First(&pickup).Error
	if err != nil {
		return nil, err
	}
	return &pickup, nil
}

func (r *repository) FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.PickupRequest, error) {
	var pickups []models.PickupRequest
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

func (r *repository) TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error {
	if keep <= 0 {
		return nil
	}
	subquery := r.db.WithContext(ctx).
		Model(&models.PickupRequest{}).
		Select("id").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("session_id = ? AND id NOT IN (?)", sessionID, subquery).
		Delete(&models.PickupRequest{}).Error
}
