package estimator

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

// Repository isolates estimate persistence from the service logic.
type Repository interface {
	Create(ctx context.Context, estimate *models.Estimate) error
	FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.Estimate, error)
	TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an estimates repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, estimate *models.Estimate) error {
	return r.db.WithContext(ctx).Create(estimate).Error
}

func (r *repository) FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.Estimate, error) {
	var estimates []models.Estimate
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&estimates).Error; err != nil {
		return nil, err
	}
	return estimates, nil
}

func (r *repository) TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error {
	if keep <= 0 {
		return nil
	}
	subquery := r.db.WithContext(ctx).
		Model(&models.Estimate{}).
		Select("id").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("session_id = ? AND id NOT IN (?)", sessionID, subquery).
		Delete(&models.Estimate{}).Error
}
